package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"live-monitor/internal/extractor"
	"live-monitor/internal/extractor/bilibili"
	"live-monitor/internal/extractor/hls"
	"live-monitor/internal/extractor/twitch"
	"live-monitor/internal/monitor"
	"live-monitor/internal/platform/config"
	"live-monitor/internal/platform/httpclient"
	"live-monitor/internal/platform/logger"
	"live-monitor/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	interval := config.GetEnvDuration("POLL_INTERVAL", monitor.DefaultInterval)

	log := logger.New(logLevel, logFormat)

	client, err := httpclient.New(httpclient.Options{
		Timeout:   config.GetEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		UserAgent: config.GetEnv("USER_AGENT", ""),
	})
	if err != nil {
		log.Error("http client", "error", err)
		os.Exit(1)
	}

	streamers, err := loadStreamers()
	if err != nil {
		log.Error("load streamers", "error", err)
		os.Exit(1)
	}

	registry := extractor.NewRegistry(
		bilibili.New(config.GetEnv("BILIBILI_API_BASE", "")),
		twitch.New(config.GetEnv("TWITCH_BASE", "")),
		hls.New(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	met := metrics.New()
	mon := monitor.New(ctx, streamers, registry, client, monitor.Options{
		Interval: interval,
		Logger:   log,
		Metrics:  met,
	})
	h := monitor.NewHandler(mon, log, met)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Get("/healthz", h.Health)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetStreamers(mon.Len()) }).ServeHTTP(w, r)
	})
	r.Route("/streamers", func(r chi.Router) {
		r.Get("/", h.ListStreamers)
		r.Post("/", h.AddStreamer)
		r.Delete("/", h.RemoveStreamer)
		r.Put("/status", h.SetStatus)
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}

	log.Info("server starting",
		"port", port,
		"poll_interval", interval.String(),
		"platforms", registry.Platforms(),
		"log_level", logLevel,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, draining connections")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		mon.Close()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// loadStreamers returns STREAMERS_FILE entries followed by STREAMERS entries.
func loadStreamers() ([]monitor.LiveStreamer, error) {
	var out []monitor.LiveStreamer
	if path := config.GetEnv("STREAMERS_FILE", ""); path != "" {
		entries, err := config.LoadStreamers(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			out = append(out, monitor.LiveStreamer{URL: e.URL, Remark: e.Remark})
		}
	}
	for _, url := range config.GetEnvList("STREAMERS") {
		out = append(out, monitor.LiveStreamer{URL: url})
	}
	return out, nil
}
