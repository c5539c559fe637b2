package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/vidqueue/vidqueue/internal/platform"
)

const (
	progressInterval = 500 * time.Millisecond
	unknownRate      = "N/A"
)

// ytdlpFetcher runs one job through yt-dlp. Audio jobs extract and convert;
// video jobs download and merge into the configured container.
type ytdlpFetcher struct{}

func (ytdlpFetcher) Fetch(ctx context.Context, job Job, dir, ffmpegPath string, audio bool, opts Options, onProgress func(ProgressTick)) error {
	dl := buildCommand(job, dir, ffmpegPath, audio, opts)

	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		onProgress(progressTick(&update))
	})

	_, err := dl.Run(ctx, job.URL)
	return err
}

// buildCommand assembles the yt-dlp invocation for one job.
func buildCommand(job Job, dir, ffmpegPath string, audio bool, opts Options) *ytdlp.Command {
	dl := ytdlp.New().
		Format(job.FormatID).
		Output(outputTemplate(dir, job, opts)).
		ForceOverwrites().
		SocketTimeout(float64(opts.SocketTimeoutSec)).
		Retries(strconv.Itoa(opts.Retries)).
		FragmentRetries(strconv.Itoa(opts.Retries)).
		FileAccessRetries(strconv.Itoa(opts.Retries)).
		ExtractorRetries(strconv.Itoa(opts.Retries))

	if ffmpegPath != "" {
		dl = dl.FFmpegLocation(ffmpegPath)
	}

	if audio {
		return dl.ExtractAudio().
			AudioFormat(opts.AudioFormat).
			AudioQuality(strconv.Itoa(opts.AudioBitrateCeilKbps))
	}
	return dl.MergeOutputFormat(opts.MergeContainer)
}

// outputTemplate names the file after the sanitized title so the output can
// be located afterwards without parsing service output. A job with no title
// falls back to the configured template.
func outputTemplate(dir string, job Job, opts Options) string {
	if job.Title == "" {
		return filepath.Join(dir, opts.FilenameTemplate)
	}
	return filepath.Join(dir, platform.SanitizeTitle(job.Title)+".%(ext)s")
}

func progressTick(update *ytdlp.ProgressUpdate) ProgressTick {
	tick := ProgressTick{Speed: unknownRate, ETA: unknownRate}

	if update.TotalBytes > 0 {
		tick.Percent = float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			tick.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if eta := update.ETA(); eta > 0 {
		tick.ETA = formatETA(int(eta.Seconds()))
	}

	return tick
}

// formatETA renders seconds as hh:mm:ss, dropping the hour part when zero.
func formatETA(etaSec int) string {
	if etaSec <= 0 {
		return unknownRate
	}

	hours := etaSec / 3600
	minutes := (etaSec % 3600) / 60
	seconds := etaSec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
