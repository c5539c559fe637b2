package search

import (
	"context"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/vidqueue/vidqueue/internal/platform"
)

// ytdlpExtractor resolves metadata via yt-dlp's dump-json output.
type ytdlpExtractor struct{}

func (ytdlpExtractor) Extract(ctx context.Context, url string, opts Options) ([]*platform.VideoInfo, error) {
	if opts.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.TimeoutSec)*time.Second)
		defer cancel()
	}

	dl := ytdlp.New().
		Quiet().
		NoWarnings().
		SkipDownload().
		DumpJSON().
		IgnoreErrors().
		IgnoreNoFormatsError().
		Format(opts.Format).
		SocketTimeout(float64(opts.SocketTimeoutSec)).
		Retries(strconv.Itoa(opts.Retries)).
		FragmentRetries(strconv.Itoa(opts.FragmentRetries)).
		ConcurrentFragments(1)

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return platform.ParseInfoJSON(result.Stdout), nil
}
