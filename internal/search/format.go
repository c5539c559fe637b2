package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/vidqueue/vidqueue/internal/model"
	"github.com/vidqueue/vidqueue/internal/platform"
)

// Format list constants
const (
	// SyntheticAudioFormatID is the format choice carried by the virtual
	// "extract audio at best bitrate" entry.
	SyntheticAudioFormatID = model.AudioExtractFormatID

	// MP3ConversionMarker appears in the synthetic entry's display text; the
	// download worker recognizes it when picking a pipeline.
	MP3ConversionMarker = "MP3 Conversion"

	storyboardMarker = "storyboard"
	unknownSizeLabel = "N/A"
	bytesPerMB       = 1024 * 1024
)

// BuildFormats classifies the raw formats of one resolved entry and appends
// the synthesized best-audio MP3 entry. audioCeilKbps caps the advertised
// conversion bitrate. The returned list is tier-sorted: audio-only first,
// then muxed video, then video-only, each by descending size. That ordering
// ships as-is; it is intentional, not an accident of the sort key.
func BuildFormats(info *platform.VideoInfo, audioCeilKbps int) []model.MediaFormat {
	var formats []model.MediaFormat

	var bestAudio *platform.FormatInfo
	var bestAudioBitrate float64

	for i := range info.Formats {
		raw := &info.Formats[i]
		if raw.FormatID == "" || raw.Ext == "" {
			continue
		}
		if strings.Contains(strings.ToLower(raw.FormatID), storyboardMarker) {
			continue
		}

		if raw.HasAudio() && raw.ABR > bestAudioBitrate {
			bestAudio = raw
			bestAudioBitrate = raw.ABR
		}

		kind := classify(raw)
		formats = append(formats, model.MediaFormat{
			ID:       raw.FormatID,
			Ext:      raw.Ext,
			Kind:     kind,
			Display:  displayText(raw, kind),
			Filesize: raw.Size(),
		})
	}

	if bestAudio != nil {
		formats = append(formats, syntheticAudioFormat(info, bestAudio, bestAudioBitrate, audioCeilKbps))
	}

	model.SortFormats(formats)
	return formats
}

func classify(raw *platform.FormatInfo) model.FormatKind {
	switch {
	case raw.HasVideo() && raw.HasAudio():
		return model.KindVideo
	case raw.HasVideo():
		return model.KindVideoOnly
	case raw.HasAudio():
		return model.KindAudioOnly
	}
	return model.KindUnknown
}

// displayText renders one selectable line, e.g.
// "[Video] MP4 22 (1280x720 / 30fps / V:1200k) - 52MB".
func displayText(raw *platform.FormatInfo, kind model.FormatKind) string {
	var quality []string

	switch kind {
	case model.KindVideo:
		if raw.Width > 0 && raw.Height > 0 {
			quality = append(quality, fmt.Sprintf("%dx%d", raw.Width, raw.Height))
		}
		if raw.FPS > 0 {
			quality = append(quality, fmt.Sprintf("%.0ffps", raw.FPS))
		}
		if raw.VBR > 0 {
			quality = append(quality, fmt.Sprintf("V:%.0fk", raw.VBR))
		} else if raw.ABR > 0 {
			quality = append(quality, fmt.Sprintf("A:%.0fk", raw.ABR))
		}
	case model.KindVideoOnly:
		if raw.Width > 0 && raw.Height > 0 {
			quality = append(quality, fmt.Sprintf("%dx%d", raw.Width, raw.Height))
		}
		if raw.FPS > 0 {
			quality = append(quality, fmt.Sprintf("%.0ffps", raw.FPS))
		}
		if raw.VBR > 0 {
			quality = append(quality, fmt.Sprintf("V:%.0fk", raw.VBR))
		}
	case model.KindAudioOnly:
		if raw.ABR > 0 {
			quality = append(quality, fmt.Sprintf("A:%.0fk", raw.ABR))
		}
	}

	qualityStr := strings.Join(quality, " / ")
	if qualityStr == "" {
		qualityStr = "data"
	}

	return fmt.Sprintf("[%s] %s %s (%s) - %s",
		kind, strings.ToUpper(raw.Ext), raw.FormatID, qualityStr, sizeLabel(raw.Size(), false))
}

// syntheticAudioFormat builds the virtual "extract audio at best available
// bitrate" entry. Size falls back to a duration-based estimate when the
// service reports none.
func syntheticAudioFormat(info *platform.VideoInfo, bestAudio *platform.FormatInfo, bitrate float64, ceilKbps int) model.MediaFormat {
	size := bestAudio.Filesize
	estimated := false
	if size <= 0 && info.Duration > 0 && bitrate > 0 {
		size = int64(info.Duration * bitrate * 1000 / 8)
		estimated = true
	}

	capped := math.Min(float64(ceilKbps), bitrate)
	display := fmt.Sprintf("[%s] MP3 bestaudio (%s / A:%.0fk) - %s",
		model.KindAudioOnly, MP3ConversionMarker, math.Round(capped), sizeLabel(size, estimated))

	return model.MediaFormat{
		ID:       SyntheticAudioFormatID,
		Ext:      "mp3",
		Kind:     model.KindAudioOnly,
		Display:  display,
		Filesize: size,
	}
}

func sizeLabel(size int64, estimated bool) string {
	if size <= 0 {
		return unknownSizeLabel
	}
	if estimated {
		return fmt.Sprintf("~%dMB", size/bytesPerMB)
	}
	return fmt.Sprintf("%dMB", size/bytesPerMB)
}
