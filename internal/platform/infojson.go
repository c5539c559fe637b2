package platform

import (
	"encoding/json"
	"strings"
)

// Codec tag yt-dlp uses for "no codec present".
const CodecNone = "none"

// VideoInfo is the subset of the yt-dlp info document the app consumes.
type VideoInfo struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Thumbnail  string       `json:"thumbnail"`
	WebpageURL string       `json:"webpage_url"`
	Duration   float64      `json:"duration"`
	Formats    []FormatInfo `json:"formats"`
	Entries    []*VideoInfo `json:"entries"`
}

// FormatInfo is one raw format descriptor from the extraction service.
type FormatInfo struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	FPS            float64 `json:"fps"`
	ABR            float64 `json:"abr"`
	VBR            float64 `json:"vbr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
}

// Size returns the exact filesize when reported, else the approximation,
// else 0.
func (f FormatInfo) Size() int64 {
	if f.Filesize > 0 {
		return f.Filesize
	}
	return f.FilesizeApprox
}

// HasVideo reports whether a video codec is present.
func (f FormatInfo) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != CodecNone
}

// HasAudio reports whether an audio codec is present.
func (f FormatInfo) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != CodecNone
}

// ParseInfoJSON parses yt-dlp info output into entries. The output may be
// JSON lines (--dump-json, one object per resolved video) or one document
// with an "entries" array. Unparseable lines are skipped, matching yt-dlp's
// own ignore-errors behavior.
func ParseInfoJSON(output string) []*VideoInfo {
	var videos []*VideoInfo

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var info VideoInfo
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			continue
		}

		if len(info.Entries) > 0 {
			for _, entry := range info.Entries {
				if entry != nil {
					videos = append(videos, entry)
				}
			}
			continue
		}

		if info.Title == "" && len(info.Formats) == 0 {
			continue
		}
		entry := info
		videos = append(videos, &entry)
	}

	return videos
}
