package monitor

import "live-monitor/internal/extractor"

// LiveStreamer is an item of the initial monitoring list.
type LiveStreamer struct {
	URL    string `json:"url"`
	Remark string `json:"remark,omitempty"`
}

// StreamerView is a point-in-time copy of one monitored URL.
type StreamerView struct {
	URL      string               `json:"url"`
	Platform extractor.PlatformID `json:"platform"`
	Status   Status               `json:"status"`
	TaskID   string               `json:"task_id"`
}
