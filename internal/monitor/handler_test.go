package monitor

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

func newTestHandler(t *testing.T) (*Handler, *Handle) {
	t.Helper()
	m := newTestHandle(t, time.Hour, nil, newFake("a"), newFake("b"))
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewHandler(m, log, nil), m
}

func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Route("/streamers", func(r chi.Router) {
		r.Get("/", h.ListStreamers)
		r.Post("/", h.AddStreamer)
		r.Delete("/", h.RemoveStreamer)
		r.Put("/status", h.SetStatus)
	})
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_AddStreamer(t *testing.T) {
	h, m := newTestHandler(t)
	r := newTestRouter(h)

	rec := do(r, http.MethodPost, "/streamers", `{"url":"https://a/1"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"idle"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if m.Len() != 1 || m.Monitors() != 1 {
		t.Errorf("len=%d monitors=%d", m.Len(), m.Monitors())
	}
}

func TestHandler_AddStreamer_bad_request(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	for _, body := range []string{"not json", `{}`, `{"url":""}`} {
		rec := do(r, http.MethodPost, "/streamers", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestHandler_AddStreamer_unknown_platform(t *testing.T) {
	h, m := newTestHandler(t)
	r := newTestRouter(h)

	rec := do(r, http.MethodPost, "/streamers", `{"url":"https://nowhere/1"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	if m.Monitors() != 0 {
		t.Errorf("monitors = %d, want 0", m.Monitors())
	}
}

func TestHandler_ListStreamers(t *testing.T) {
	h, m := newTestHandler(t)
	r := newTestRouter(h)

	rec := do(r, http.MethodGet, "/streamers", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list: code=%d body=%s", rec.Code, rec.Body.String())
	}

	m.Add("https://b/1")
	m.Add("https://a/1")

	rec = do(r, http.MethodGet, "/streamers", "")
	var views []StreamerView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 2 || views[0].Platform != "a" || views[1].URL != "https://b/1" {
		t.Errorf("unexpected views: %+v", views)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHandler_RemoveStreamer(t *testing.T) {
	h, m := newTestHandler(t)
	r := newTestRouter(h)
	m.Add("https://a/1")

	t.Run("missing_query", func(t *testing.T) {
		if rec := do(r, http.MethodDelete, "/streamers", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("removes", func(t *testing.T) {
		rec := do(r, http.MethodDelete, "/streamers?url=https://a/1", "")
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
		if m.Monitors() != 0 {
			t.Errorf("monitors = %d after removing last url", m.Monitors())
		}
	})

	t.Run("not_found", func(t *testing.T) {
		if rec := do(r, http.MethodDelete, "/streamers?url=https://a/1", ""); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandler_SetStatus(t *testing.T) {
	h, m := newTestHandler(t)
	r := newTestRouter(h)
	m.Add("https://a/1")

	rec := do(r, http.MethodPut, "/streamers/status", `{"url":"https://a/1","status":"uploading"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if s, _ := m.Status("https://a/1"); s != Uploading {
		t.Errorf("status = %v, want uploading", s)
	}

	cases := []struct {
		body string
		code int
	}{
		{`{"url":"https://a/1","status":"finished"}`, http.StatusBadRequest},
		{`{"url":"https://a/1"}`, http.StatusBadRequest},
		{`{"url":"https://a/9","status":"idle"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		if rec := do(r, http.MethodPut, "/streamers/status", tc.body); rec.Code != tc.code {
			t.Errorf("body %s: expected %d, got %d", tc.body, tc.code, rec.Code)
		}
	}
}

func TestHandler_Health(t *testing.T) {
	h, m := newTestHandler(t)
	r := newTestRouter(h)
	m.Add("https://a/1")
	m.Add("https://a/2")

	rec := do(r, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status    string `json:"status"`
		Monitors  int    `json:"monitors"`
		Streamers int    `json:"streamers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Monitors != 1 || body.Streamers != 2 {
		t.Errorf("unexpected health: %+v", body)
	}
}
