// Package hls treats any http(s) .m3u8 URL as a stream that is live while its
// playlist keeps growing.
package hls

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"live-monitor/internal/extractor"
	"live-monitor/internal/platform/httpclient"
)

// ID is the platform identity.
const ID extractor.PlatformID = "hls"

// Extractor implements extractor.Extractor for raw HLS playlists.
type Extractor struct{}

// New returns an HLS extractor.
func New() *Extractor { return &Extractor{} }

// ID implements extractor.Extractor.
func (e *Extractor) ID() extractor.PlatformID { return ID }

// CanHandle implements extractor.Extractor.
func (e *Extractor) CanHandle(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".m3u8")
}

// GetSite implements extractor.Extractor.
func (e *Extractor) GetSite(ctx context.Context, raw string, c *httpclient.Client) (*extractor.SiteInfo, error) {
	body, err := extractor.Fetch(ctx, c, raw)
	if err != nil {
		return nil, err
	}
	pl, err := ParsePlaylist(body)
	if err != nil {
		return nil, fmt.Errorf("hls %s: %w", raw, err)
	}
	if !pl.Live() {
		return nil, fmt.Errorf("hls %s: %w", raw, extractor.ErrOffline)
	}

	title := fmt.Sprintf("media sequence %d, %d segments", pl.MediaSequence, pl.Segments)
	if pl.Master() {
		title = fmt.Sprintf("%d variants", pl.Variants)
	}
	return &extractor.SiteInfo{
		Platform:  ID,
		URL:       raw,
		Title:     title,
		StreamURL: raw,
	}, nil
}
