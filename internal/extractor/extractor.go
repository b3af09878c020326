// Package extractor defines the per-platform site inspectors and the
// resolver that picks one for a URL.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"live-monitor/internal/platform/httpclient"
)

// PlatformID names a platform. It is the grouping key for monitors, so it
// must be stable for a given Extractor implementation.
type PlatformID string

var (
	// ErrOffline is returned by GetSite when the stream exists but is not live.
	ErrOffline = errors.New("stream is offline")

	// ErrUnexpectedStatus is returned when the platform answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected http status")

	// ErrInvalidURL is returned when the URL matches a platform but the
	// channel identifier cannot be extracted from it.
	ErrInvalidURL = errors.New("invalid streamer url")
)

// SiteInfo describes a live stream as reported by a platform.
type SiteInfo struct {
	Platform PlatformID
	URL      string
	Title    string
	Streamer string
	Cover    string
	// StreamURL is a directly playable source when the platform exposes one.
	StreamURL string
}

func (s *SiteInfo) String() string {
	if s.Streamer == "" {
		return fmt.Sprintf("[%s] %s", s.Platform, s.Title)
	}
	return fmt.Sprintf("[%s] %s: %s", s.Platform, s.Streamer, s.Title)
}

// Extractor inspects URLs belonging to one platform.
type Extractor interface {
	// ID returns the platform identity.
	ID() PlatformID

	// CanHandle reports whether url belongs to this platform.
	CanHandle(url string) bool

	// GetSite returns stream details when url is live. A stream that is not
	// live yields an error wrapping ErrOffline.
	GetSite(ctx context.Context, url string, c *httpclient.Client) (*SiteInfo, error)
}
