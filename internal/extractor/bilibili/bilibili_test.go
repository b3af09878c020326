package bilibili

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"live-monitor/internal/extractor"
	"live-monitor/internal/platform/httpclient"
)

func TestExtractor_CanHandle(t *testing.T) {
	e := New("")
	cases := map[string]bool{
		"https://live.bilibili.com/21452505":    true,
		"https://live.bilibili.com/h5/21452505": true,
		"http://live.bilibili.com/1?from=x":     true,
		"https://live.bilibili.com/":            false,
		"https://www.bilibili.com/video/BV1":    false,
		"https://www.twitch.tv/someone":         false,
	}
	for url, want := range cases {
		if got := e.CanHandle(url); got != want {
			t.Errorf("CanHandle(%q) = %v, want %v", url, got, want)
		}
	}
}

func newRoomServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/room/v1/Room/get_info" || r.URL.Query().Get("room_id") != "42" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractor_GetSite(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		srv := newRoomServer(t, `{"code":0,"msg":"ok","data":{"room_id":42,"uid":7,"live_status":1,"title":"late night","user_cover":"https://i0/cover.jpg"}}`)
		e := New(srv.URL)

		site, err := e.GetSite(context.Background(), "https://live.bilibili.com/42", httpclient.Wrap(srv.Client()))
		if err != nil {
			t.Fatalf("GetSite: %v", err)
		}
		if site.Platform != ID || site.Title != "late night" || site.Cover != "https://i0/cover.jpg" {
			t.Errorf("unexpected site: %+v", site)
		}
	})

	t.Run("offline", func(t *testing.T) {
		srv := newRoomServer(t, `{"code":0,"msg":"ok","data":{"room_id":42,"live_status":0}}`)
		_, err := New(srv.URL).GetSite(context.Background(), "https://live.bilibili.com/42", httpclient.Wrap(srv.Client()))
		if !errors.Is(err, extractor.ErrOffline) {
			t.Errorf("expected ErrOffline, got %v", err)
		}
	})

	t.Run("api_error_code", func(t *testing.T) {
		srv := newRoomServer(t, `{"code":1,"msg":"room not found"}`)
		_, err := New(srv.URL).GetSite(context.Background(), "https://live.bilibili.com/42", httpclient.Wrap(srv.Client()))
		if err == nil || errors.Is(err, extractor.ErrOffline) {
			t.Errorf("expected api error, got %v", err)
		}
	})

	t.Run("http_error", func(t *testing.T) {
		srv := newRoomServer(t, `{}`)
		_, err := New(srv.URL).GetSite(context.Background(), "https://live.bilibili.com/43", httpclient.Wrap(srv.Client()))
		if !errors.Is(err, extractor.ErrUnexpectedStatus) {
			t.Errorf("expected ErrUnexpectedStatus, got %v", err)
		}
	})

	t.Run("invalid_url", func(t *testing.T) {
		_, err := New("").GetSite(context.Background(), "https://example.com/", nil)
		if !errors.Is(err, extractor.ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})
}
