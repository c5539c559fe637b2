package model

import "sort"

// AudioExtractFormatID is the format choice that selects "extract audio at
// the best available bitrate" instead of a concrete raw format.
const AudioExtractFormatID = "bestaudio/best"

// FormatKind classifies a media format by codec presence.
type FormatKind string

const (
	// KindVideo means both video and audio codecs are present (muxed).
	KindVideo FormatKind = "Video"

	// KindVideoOnly means only a video codec is present.
	KindVideoOnly FormatKind = "Video-only"

	// KindAudioOnly means only an audio codec is present.
	KindAudioOnly FormatKind = "Audio-only"

	// KindUnknown means neither codec tag is present (data formats).
	KindUnknown FormatKind = "Unknown"
)

// MediaFormat is one selectable format of a resolved media entry.
type MediaFormat struct {
	ID       string
	Ext      string
	Kind     FormatKind
	Display  string // full display text, e.g. "[Video] MP4 22 (1280x720 / 30fps) - 52MB"
	Filesize int64  // exact or estimated size in bytes, 0 if unknown
}

// SearchResult is one resolved media entry with its selectable formats.
type SearchResult struct {
	Title     string
	Thumbnail string
	URL       string
	Formats   []MediaFormat
}

// SortFormats orders formats by tier: audio-only first, then muxed video, then
// video-only, each tier by descending size. The ordering is kept exactly as
// shipped; reordering it breaks saved user expectations.
func SortFormats(formats []MediaFormat) {
	sort.SliceStable(formats, func(i, j int) bool {
		a, b := formats[i], formats[j]
		ra, rb := formatRank(a.Kind), formatRank(b.Kind)
		if ra != rb {
			return ra < rb
		}
		return a.Filesize > b.Filesize
	})
}

func formatRank(k FormatKind) int {
	switch k {
	case KindAudioOnly:
		return 0
	case KindVideo:
		return 1
	case KindVideoOnly:
		return 2
	}
	return 3
}
