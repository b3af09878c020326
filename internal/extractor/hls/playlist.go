package hls

import (
	"bufio"
	"bytes"
	"errors"
	"strconv"
	"strings"
)

const (
	tagHeader         = "#EXTM3U"
	tagTargetDuration = "#EXT-X-TARGETDURATION:"
	tagMediaSequence  = "#EXT-X-MEDIA-SEQUENCE:"
	tagSegment        = "#EXTINF:"
	tagEndList        = "#EXT-X-ENDLIST"
	tagStreamInf      = "#EXT-X-STREAM-INF:"
	tagPlaylistType   = "#EXT-X-PLAYLIST-TYPE:"
)

// ErrNotPlaylist is returned when the body does not start with #EXTM3U.
var ErrNotPlaylist = errors.New("not an m3u8 playlist")

// Playlist is the subset of an HLS playlist needed to decide liveness.
type Playlist struct {
	TargetDuration int
	MediaSequence  int64
	Segments       int
	Variants       int
	Ended          bool
	VOD            bool
}

// Master reports whether the playlist lists variant streams instead of segments.
func (p *Playlist) Master() bool { return p.Variants > 0 }

// Live reports whether the playlist still grows: a media playlist without
// #EXT-X-ENDLIST that is not declared VOD, or any master playlist.
func (p *Playlist) Live() bool {
	if p.Master() {
		return true
	}
	return !p.Ended && !p.VOD
}

// ParsePlaylist scans an m3u8 document. Unknown tags are ignored.
func ParsePlaylist(data []byte) (*Playlist, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	p := &Playlist{}
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first {
			if line != tagHeader {
				return nil, ErrNotPlaylist
			}
			first = false
			continue
		}
		switch {
		case strings.HasPrefix(line, tagTargetDuration):
			p.TargetDuration, _ = strconv.Atoi(strings.TrimPrefix(line, tagTargetDuration))
		case strings.HasPrefix(line, tagMediaSequence):
			p.MediaSequence, _ = strconv.ParseInt(strings.TrimPrefix(line, tagMediaSequence), 10, 64)
		case strings.HasPrefix(line, tagSegment):
			p.Segments++
		case strings.HasPrefix(line, tagStreamInf):
			p.Variants++
		case strings.HasPrefix(line, tagPlaylistType):
			p.VOD = strings.TrimPrefix(line, tagPlaylistType) == "VOD"
		case line == tagEndList:
			p.Ended = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if first {
		return nil, ErrNotPlaylist
	}
	return p, nil
}
