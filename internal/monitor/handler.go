package monitor

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"live-monitor/internal/platform/metrics"
)

// Handler exposes the monitor handle over HTTP using go-chi.
type Handler struct {
	monitor *Handle
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler for m. Metrics may be nil to disable metric
// recording (e.g. in tests).
func NewHandler(m *Handle, log *slog.Logger, met *metrics.Metrics) *Handler {
	return &Handler{monitor: m, log: log, metrics: met}
}

type streamerRequest struct {
	URL    string  `json:"url"`
	Status *Status `json:"status,omitempty"`
}

// ListStreamers handles GET /streamers.
func (h *Handler) ListStreamers(w http.ResponseWriter, r *http.Request) {
	views := h.monitor.Streamers()
	if views == nil {
		views = []StreamerView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// AddStreamer handles POST /streamers.
// Body: { "url": "https://live.bilibili.com/21452505" }.
func (h *Handler) AddStreamer(w http.ResponseWriter, r *http.Request) {
	var req streamerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		h.log.Debug("invalid streamer body", slog.Any("error", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !h.monitor.Add(req.URL) {
		h.log.Info("streamer rejected, no platform matches", slog.String("url", req.URL))
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	h.log.Info("streamer added", slog.String("url", req.URL))
	h.refreshStreamers()
	status, _ := h.monitor.Status(req.URL)
	writeJSON(w, http.StatusAccepted, map[string]any{"url": req.URL, "status": status})
}

// RemoveStreamer handles DELETE /streamers?url=....
func (h *Handler) RemoveStreamer(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !h.monitor.Remove(url) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.log.Info("streamer removed", slog.String("url", url))
	h.refreshStreamers()
	w.WriteHeader(http.StatusNoContent)
}

// SetStatus handles PUT /streamers/status, used by the download pipeline.
// Body: { "url": "...", "status": "uploading" }.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req streamerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" || req.Status == nil {
		h.log.Debug("invalid status body", slog.Any("error", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !h.monitor.SetStatus(req.URL, *req.Status) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"monitors":  h.monitor.Monitors(),
		"streamers": h.monitor.Len(),
	})
}

func (h *Handler) refreshStreamers() {
	if h.metrics != nil {
		h.metrics.SetStreamers(h.monitor.Len())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
