// Package bilibili inspects live.bilibili.com rooms through the public room API.
package bilibili

import (
	"context"
	"fmt"
	"regexp"

	"live-monitor/internal/extractor"
	"live-monitor/internal/platform/httpclient"
)

// ID is the platform identity.
const ID extractor.PlatformID = "bilibili"

// DefaultAPIBase is the production room API host.
const DefaultAPIBase = "https://api.live.bilibili.com"

var roomRe = regexp.MustCompile(`^https?://live\.bilibili\.com/(?:h5/)?(\d+)`)

// roomInfo mirrors the fields of /room/v1/Room/get_info used here.
type roomInfo struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    struct {
		RoomID     int64  `json:"room_id"`
		UID        int64  `json:"uid"`
		LiveStatus int    `json:"live_status"`
		Title      string `json:"title"`
		UserCover  string `json:"user_cover"`
	} `json:"data"`
}

// Extractor implements extractor.Extractor for bilibili live rooms.
type Extractor struct {
	apiBase string
}

// New returns an Extractor querying apiBase, or DefaultAPIBase when empty.
func New(apiBase string) *Extractor {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Extractor{apiBase: apiBase}
}

// ID implements extractor.Extractor.
func (e *Extractor) ID() extractor.PlatformID { return ID }

// CanHandle implements extractor.Extractor.
func (e *Extractor) CanHandle(url string) bool {
	return roomRe.MatchString(url)
}

// GetSite implements extractor.Extractor. live_status 1 means live; 0 and 2
// (offline, carousel replay) are reported as extractor.ErrOffline.
func (e *Extractor) GetSite(ctx context.Context, url string, c *httpclient.Client) (*extractor.SiteInfo, error) {
	m := roomRe.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", extractor.ErrInvalidURL, url)
	}

	var info roomInfo
	api := fmt.Sprintf("%s/room/v1/Room/get_info?room_id=%s", e.apiBase, m[1])
	if err := extractor.FetchJSON(ctx, c, api, &info); err != nil {
		return nil, err
	}
	if info.Code != 0 {
		return nil, fmt.Errorf("bilibili room %s: code %d: %s", m[1], info.Code, info.Message)
	}
	if info.Data.LiveStatus != 1 {
		return nil, fmt.Errorf("bilibili room %s: %w", m[1], extractor.ErrOffline)
	}

	return &extractor.SiteInfo{
		Platform: ID,
		URL:      url,
		Title:    info.Data.Title,
		Streamer: fmt.Sprintf("uid:%d", info.Data.UID),
		Cover:    info.Data.UserCover,
	}, nil
}
