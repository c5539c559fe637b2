package search

import (
	"context"
	"fmt"
	"log"

	"github.com/vidqueue/vidqueue/internal/event"
	"github.com/vidqueue/vidqueue/internal/model"
	"github.com/vidqueue/vidqueue/internal/platform"
)

// Fallback titles emitted when the service resolves nothing.
const (
	NotFoundTitle = "Video/Playlist not found"
	NoTitle       = "No title"
)

// Options configures one search run.
type Options struct {
	Format               string
	TimeoutSec           int
	SocketTimeoutSec     int
	Retries              int
	FragmentRetries      int
	AudioBitrateCeilKbps int
}

// Extractor resolves a URL into raw metadata entries.
type Extractor interface {
	Extract(ctx context.Context, url string, opts Options) ([]*platform.VideoInfo, error)
}

// PlaylistLister enumerates a playlist into individual video URLs without a
// full metadata extraction per entry.
type PlaylistLister interface {
	ListPlaylist(ctx context.Context, playlistID string) ([]string, error)
}

// Worker resolves one URL into search results. It runs once; a new search
// needs a new worker.
type Worker struct {
	url       string
	opts      Options
	events    chan<- event.Event
	extractor Extractor
	lister    PlaylistLister
}

// NewWorker creates a search worker for one URL. The events channel is
// injected by the coordinator at spawn time.
func NewWorker(url string, opts Options, events chan<- event.Event) *Worker {
	return &Worker{
		url:       url,
		opts:      opts,
		events:    events,
		extractor: ytdlpExtractor{},
		lister:    ytgetLister{},
	}
}

// Run performs the search. It blocks until done, a stop request, or context
// cancellation; every failure is converted to a synthetic result event, never
// returned or raised past this boundary.
func (w *Worker) Run(ctx context.Context, stop <-chan struct{}) {
	defer w.emit(ctx, event.SearchFinished{})

	urls := []string{w.url}
	if platform.IsPlaylistURL(w.url) {
		if id := platform.ExtractPlaylistID(w.url); id != "" {
			if listed, err := w.lister.ListPlaylist(ctx, id); err == nil && len(listed) > 0 {
				urls = listed
			} else if err != nil {
				// Fall back to direct extraction of the playlist URL.
				log.Printf("Playlist enumeration failed for %s: %v", w.url, err)
			}
		}
	}

	found := false
	for _, u := range urls {
		if stopRequested(ctx, stop) {
			return
		}

		videos, err := w.extractor.Extract(ctx, u, w.opts)
		if err != nil {
			log.Printf("Search failed for %s: %v", u, err)
			w.emitResult(ctx, model.SearchResult{
				Title: fmt.Sprintf("Error: %v", err),
				URL:   w.url,
			})
			return
		}

		for _, v := range videos {
			title := v.Title
			if title == "" {
				title = NoTitle
			}
			resultURL := v.WebpageURL
			if resultURL == "" {
				resultURL = u
			}
			w.emitResult(ctx, model.SearchResult{
				Title:     title,
				Thumbnail: v.Thumbnail,
				URL:       resultURL,
				Formats:   BuildFormats(v, w.opts.AudioBitrateCeilKbps),
			})
			found = true
		}
	}

	if !found {
		w.emitResult(ctx, model.SearchResult{Title: NotFoundTitle, URL: w.url})
	}
}

func (w *Worker) emitResult(ctx context.Context, r model.SearchResult) {
	w.emit(ctx, event.SearchResultFound{Result: r})
}

func (w *Worker) emit(ctx context.Context, e event.Event) {
	select {
	case w.events <- e:
	case <-ctx.Done():
	}
}

func stopRequested(ctx context.Context, stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
