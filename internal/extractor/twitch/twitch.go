// Package twitch inspects twitch.tv channels by probing the channel page.
package twitch

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"

	"live-monitor/internal/extractor"
	"live-monitor/internal/platform/httpclient"
)

// ID is the platform identity.
const ID extractor.PlatformID = "twitch"

// DefaultBase is the production site.
const DefaultBase = "https://www.twitch.tv"

var (
	channelRe     = regexp.MustCompile(`^https?://(?:www\.|m\.)?twitch\.tv/([A-Za-z0-9_]{3,25})/?(?:\?.*)?$`)
	descriptionRe = regexp.MustCompile(`<meta\s+property="og:description"\s+content="([^"]*)"`)
	liveMarker    = []byte(`"isLiveBroadcast":true`)
)

// Extractor implements extractor.Extractor for twitch channels.
type Extractor struct {
	base string
}

// New returns an Extractor fetching pages from base, or DefaultBase when empty.
func New(base string) *Extractor {
	if base == "" {
		base = DefaultBase
	}
	return &Extractor{base: base}
}

// ID implements extractor.Extractor.
func (e *Extractor) ID() extractor.PlatformID { return ID }

// CanHandle implements extractor.Extractor. Only channel roots match; VOD and
// clip pages are not monitorable.
func (e *Extractor) CanHandle(url string) bool {
	return channelRe.MatchString(url)
}

// GetSite implements extractor.Extractor.
func (e *Extractor) GetSite(ctx context.Context, url string, c *httpclient.Client) (*extractor.SiteInfo, error) {
	m := channelRe.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", extractor.ErrInvalidURL, url)
	}
	login := m[1]

	page, err := extractor.Fetch(ctx, c, e.base+"/"+login)
	if err != nil {
		return nil, err
	}
	if !bytes.Contains(page, liveMarker) {
		return nil, fmt.Errorf("twitch %s: %w", login, extractor.ErrOffline)
	}

	site := &extractor.SiteInfo{
		Platform: ID,
		URL:      url,
		Streamer: login,
	}
	if d := descriptionRe.FindSubmatch(page); d != nil {
		site.Title = html.UnescapeString(string(d[1]))
	}
	return site, nil
}
