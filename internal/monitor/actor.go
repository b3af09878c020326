package monitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"live-monitor/internal/extractor"
	"live-monitor/internal/platform/httpclient"
	"live-monitor/internal/platform/metrics"
)

// DefaultInterval is the pause between two inspector calls of one platform.
const DefaultInterval = 30 * time.Second

// group is one platform's share of the monitor: its URLs and the goroutine
// polling them.
type group struct {
	platform extractor.PlatformID
	taskID   string
	cycle    *Cycle
	cancel   context.CancelFunc
	done     chan struct{}
}

// actor owns the polling behaviour shared by every platform monitor.
type actor struct {
	client   *httpclient.Client
	interval time.Duration
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// run seeds h with the initial list.
func (a *actor) run(h *Handle, list []LiveStreamer) {
	for _, s := range list {
		if !h.Add(s.URL) {
			a.log.Warn("no extractor for streamer, skipping",
				slog.String("url", s.URL),
				slog.String("remark", s.Remark))
		}
	}
	a.log.Info("monitor bootstrapped",
		slog.Int("streamers", h.Len()),
		slog.Int("platforms", h.Monitors()))
}

// startMonitor polls g's URLs one at a time until ctx is cancelled.
func (a *actor) startMonitor(ctx context.Context, g *group, ext extractor.Extractor) {
	defer close(g.done)
	if a.metrics != nil {
		a.metrics.MonitorStarted()
		defer a.metrics.MonitorStopped()
	}

	timer := time.NewTimer(a.interval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		// An empty cycle only exists between the last Remove and the cancel
		// that follows it under the same lock.
		if url, status, ok := g.cycle.Next(); ok {
			a.poll(ctx, g, ext, url, status)
		}

		timer.Reset(a.interval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// poll inspects one URL and applies the result to its status. The cycle is
// not locked while the inspector runs.
func (a *actor) poll(ctx context.Context, g *group, ext extractor.Extractor, url string, status Status) {
	log := a.log.With(
		slog.String("platform", string(g.platform)),
		slog.String("url", url))

	site, err := ext.GetSite(ctx, url, a.client)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.observePoll(g.platform, metrics.OutcomeError)
		if errors.Is(err, extractor.ErrOffline) {
			log.Debug("stream offline", slog.String("status", status.String()))
		} else {
			log.Debug("inspection failed", slog.String("error", err.Error()))
		}
		return
	}
	a.observePoll(g.platform, metrics.OutcomeLive)

	switch status {
	case Idle:
		if !g.cycle.CompareAndSwap(url, Idle, Downloading) {
			log.Debug("status changed during inspection, update dropped")
			return
		}
		if a.metrics != nil {
			a.metrics.ObserveTransition(string(g.platform), Idle.String(), Downloading.String())
		}
		log.Info("stream is live",
			slog.String("title", site.Title),
			slog.String("streamer", site.Streamer),
			slog.String("status", Downloading.String()))
	case Downloading:
		log.Debug("still downloading", slog.String("site", site.String()))
	case Pending, Uploading:
		log.Debug("stream live, pipeline busy", slog.String("status", status.String()))
	}
}

func (a *actor) observePoll(platform extractor.PlatformID, outcome string) {
	if a.metrics != nil {
		a.metrics.ObservePoll(string(platform), outcome)
	}
}
