package monitor

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"live-monitor/internal/extractor"
	"live-monitor/internal/platform/httpclient"
	"live-monitor/internal/platform/logger"
	"live-monitor/internal/platform/metrics"
)

// Resolver picks the extractor for a URL, or returns nil when no platform
// recognises it. *extractor.Registry implements it.
type Resolver interface {
	Find(url string) extractor.Extractor
}

// Options tunes New. Zero values select defaults; Metrics may be nil.
type Options struct {
	Interval time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Handle is the caller-facing side of the monitor. It is safe for concurrent
// use. Each platform with at least one URL has exactly one polling goroutine.
type Handle struct {
	// mu guards groups. Cycle membership only changes while mu is held for
	// writing, so "last URL removed" and "first URL added" cannot interleave.
	mu     sync.RWMutex
	groups map[extractor.PlatformID]*group
	closed bool

	resolver Resolver
	actor    *actor
	ctx      context.Context
	wg       sync.WaitGroup
}

// New starts monitoring list and returns the handle for later changes.
// Monitors stop when ctx is cancelled or Close is called.
func New(ctx context.Context, list []LiveStreamer, resolver Resolver, client *httpclient.Client, opts Options) *Handle {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	a := &actor{
		client:   client,
		interval: opts.Interval,
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}
	h := &Handle{
		groups:   make(map[extractor.PlatformID]*group),
		resolver: resolver,
		actor:    a,
		ctx:      ctx,
	}
	a.run(h, list)
	return h
}

// Add starts monitoring url with status Idle. Adding a URL that is already
// monitored resets it to Idle. It returns false when no platform recognises
// url or the handle is closed.
func (h *Handle) Add(url string) bool {
	ext := h.resolver.Find(url)
	if ext == nil {
		return false
	}
	id := ext.ID()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	if g, ok := h.groups[id]; ok {
		g.cycle.Upsert(url,
			func(s *Status) { *s = Idle },
			func() Status { return Idle })
		return true
	}
	h.groups[id] = h.spawnLocked(ext, url)
	return true
}

// spawnLocked creates the group for ext's platform and starts its monitor.
// Caller must hold h.mu in write mode.
func (h *Handle) spawnLocked(ext extractor.Extractor, url string) *group {
	ctx, cancel := context.WithCancel(h.ctx)
	g := &group{
		platform: ext.ID(),
		taskID:   uuid.NewString(),
		cycle:    NewCycle(Entry{URL: url, Status: Idle}),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.actor.startMonitor(ctx, g, ext)
	}()

	h.actor.log.Info("monitor started",
		slog.String("platform", string(g.platform)),
		slog.String("task_id", g.taskID))
	return g
}

// Remove stops monitoring url. When url was the platform's last one, the
// platform's monitor is cancelled and its group dropped. It reports whether
// url was monitored.
func (h *Handle) Remove(url string) bool {
	ext := h.resolver.Find(url)
	if ext == nil {
		return false
	}
	id := ext.ID()

	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.groups[id]
	if !ok {
		return false
	}
	if _, ok := g.cycle.Get(url); !ok {
		return false
	}
	if g.cycle.Len() <= 1 {
		g.cancel()
		delete(h.groups, id)
		h.actor.log.Info("monitor stopped",
			slog.String("platform", string(g.platform)),
			slog.String("task_id", g.taskID))
	}
	g.cycle.Remove(url)
	return true
}

// Status returns the current status of url.
func (h *Handle) Status(url string) (Status, bool) {
	g := h.lookup(url)
	if g == nil {
		return Idle, false
	}
	return g.cycle.Get(url)
}

// SetStatus lets the download pipeline report progress, e.g. Downloading ->
// Uploading -> Idle once a recording is finished. URLs that are not
// monitored are left alone.
func (h *Handle) SetStatus(url string, status Status) bool {
	g := h.lookup(url)
	if g == nil {
		return false
	}
	var from Status
	ok := g.cycle.Modify(url, func(s *Status) {
		from = *s
		*s = status
	})
	if ok && from != status {
		if h.actor.metrics != nil {
			h.actor.metrics.ObserveTransition(string(g.platform), from.String(), status.String())
		}
		h.actor.log.Info("status updated",
			slog.String("platform", string(g.platform)),
			slog.String("url", url),
			slog.String("from", from.String()),
			slog.String("to", status.String()))
	}
	return ok
}

func (h *Handle) lookup(url string) *group {
	ext := h.resolver.Find(url)
	if ext == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.groups[ext.ID()]
}

// Streamers returns every monitored URL grouped by platform name, each
// platform in round-robin order.
func (h *Handle) Streamers() []StreamerView {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]extractor.PlatformID, 0, len(h.groups))
	for id := range h.groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var out []StreamerView
	for _, id := range ids {
		g := h.groups[id]
		for _, e := range g.cycle.Snapshot() {
			out = append(out, StreamerView{
				URL:      e.URL,
				Platform: id,
				Status:   e.Status,
				TaskID:   g.taskID,
			})
		}
	}
	return out
}

// Len returns the number of monitored URLs.
func (h *Handle) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, g := range h.groups {
		n += g.cycle.Len()
	}
	return n
}

// Monitors returns the number of platforms being polled.
func (h *Handle) Monitors() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups)
}

// Close cancels every monitor and waits for them to return. Add fails after Close.
func (h *Handle) Close() {
	h.mu.Lock()
	h.closed = true
	for id, g := range h.groups {
		g.cancel()
		delete(h.groups, id)
	}
	h.mu.Unlock()

	h.wg.Wait()
}
