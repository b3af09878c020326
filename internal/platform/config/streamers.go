package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// StreamerEntry is one item of a streamers file.
//
//	streamers:
//	  - url: https://live.bilibili.com/21452505
//	    remark: main channel
type StreamerEntry struct {
	URL    string `yaml:"url"`
	Remark string `yaml:"remark"`
}

type streamersFile struct {
	Streamers []StreamerEntry `yaml:"streamers"`
}

// LoadStreamers reads the YAML streamers file at path. Entries without a URL
// are skipped.
func LoadStreamers(path string) ([]StreamerEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read streamers file: %w", err)
	}
	return ParseStreamers(data)
}

// ParseStreamers decodes a streamers document.
func ParseStreamers(data []byte) ([]StreamerEntry, error) {
	var f streamersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse streamers file: %w", err)
	}
	out := make([]StreamerEntry, 0, len(f.Streamers))
	for _, s := range f.Streamers {
		if s.URL == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
