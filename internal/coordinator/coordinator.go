package coordinator

import (
	"context"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vidqueue/vidqueue/internal/config"
	"github.com/vidqueue/vidqueue/internal/download"
	"github.com/vidqueue/vidqueue/internal/event"
	"github.com/vidqueue/vidqueue/internal/history"
	"github.com/vidqueue/vidqueue/internal/model"
	"github.com/vidqueue/vidqueue/internal/search"
)

const eventBufferSize = 64

// Callbacks is the UI-facing surface. Every field is optional; nil callbacks
// are skipped. Callbacks run on the coordinator's event loop goroutine and
// must not block.
type Callbacks struct {
	OnStatus           func(message string)
	OnProgress         func(row int, percent float64, speed, eta string)
	OnItemStarted      func(row int, title string)
	OnItemCompleted    func(row int)
	OnItemFailed       func(row int, message string)
	OnSearchResult     func(result model.SearchResult)
	OnSearchFinished   func()
	OnDownloadFinished func()
	OnHistoryRecorded  func(title, url, formatID, path string, size int64)
}

// Coordinator owns the queue, the result set, the history store and all
// worker lifecycles. Workers communicate back over one event channel created
// here and injected at spawn time; a single loop goroutine routes events, so
// queue and result-set mutation stays single-writer.
type Coordinator struct {
	mu       sync.Mutex
	settings *config.Settings
	queue    *model.Queue
	history  *history.Store

	results  []model.SearchResult
	urlToRow map[string]int
	nextRow  int

	searchHandle   *workerHandle
	downloadHandle *workerHandle
	checkerHandle  *workerHandle

	events    chan event.Event
	callbacks Callbacks
	quit      chan struct{}
	quitOnce  sync.Once
	loopDone  chan struct{}

	// Spawn seams, replaced in tests.
	runSearch   func(ctx context.Context, stop <-chan struct{}, searchURL string)
	runDownload func(ctx context.Context, stop <-chan struct{}, jobs []download.Job, rows map[download.Key]int)
	runChecker  func(ctx context.Context, stop <-chan struct{})
}

// New creates a coordinator, starts its event loop and kicks off the startup
// toolchain checker.
func New(settings *config.Settings, hist *history.Store, callbacks Callbacks) *Coordinator {
	c := &Coordinator{
		settings:  settings,
		queue:     model.NewQueue(),
		history:   hist,
		urlToRow:  make(map[string]int),
		events:    make(chan event.Event, eventBufferSize),
		callbacks: callbacks,
		quit:      make(chan struct{}),
		loopDone:  make(chan struct{}),
	}

	c.runSearch = func(ctx context.Context, stop <-chan struct{}, searchURL string) {
		opts := search.Options{
			Format:               settings.SearchFormat,
			TimeoutSec:           settings.SearchTimeoutSec,
			SocketTimeoutSec:     settings.SearchSocketSec,
			Retries:              settings.SearchRetries,
			FragmentRetries:      settings.SearchRetries,
			AudioBitrateCeilKbps: settings.AudioBitrateCeil,
		}
		search.NewWorker(searchURL, opts, c.events).Run(ctx, stop)
	}
	c.runDownload = func(ctx context.Context, stop <-chan struct{}, jobs []download.Job, rows map[download.Key]int) {
		opts := download.Options{
			SocketTimeoutSec:     settings.DownloadSocketSec,
			Retries:              settings.DownloadRetries,
			MergeContainer:       settings.MergeContainer,
			AudioFormat:          settings.AudioFormat,
			AudioBitrateCeilKbps: settings.AudioBitrateCeil,
			FilenameTemplate:     settings.FilenameTemplate,
		}
		w := download.NewWorker(jobs, settings.DownloadDir, rows, opts, c.events)
		log.Printf("Starting download batch %s (%d jobs)", w.ID(), len(jobs))
		w.Run(ctx, stop)
	}
	c.runChecker = func(ctx context.Context, _ <-chan struct{}) {
		runToolchainCheck(ctx, c.events)
	}

	go c.loop()
	c.checkerHandle = spawnWorker("checker", c.runChecker)
	return c
}

// StartSearch validates the URL, rejects duplicates against the current
// result set, stops any live search worker and spawns a new one. At most one
// search worker is live at any instant.
func (c *Coordinator) StartSearch(rawURL string) error {
	searchURL := strings.TrimSpace(rawURL)
	if searchURL == "" {
		return &ValidationError{URL: rawURL, Reason: "empty URL"}
	}
	parsed, err := url.Parse(searchURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return &ValidationError{URL: searchURL, Reason: "expected an http(s) URL"}
	}

	c.mu.Lock()
	for _, r := range c.results {
		if r.URL == searchURL {
			c.mu.Unlock()
			return &DuplicateError{URL: searchURL}
		}
	}
	prior := c.searchHandle
	c.searchHandle = nil
	c.mu.Unlock()

	if prior != nil {
		prior.stopAndWait(c.bound(c.settings.ShutdownSearchSec))
	}

	h := spawnWorker("search", func(ctx context.Context, stop <-chan struct{}) {
		c.runSearch(ctx, stop, searchURL)
	})

	c.mu.Lock()
	c.searchHandle = h
	c.mu.Unlock()
	return nil
}

// StartDownload spawns a download batch for the given jobs. explicitRows maps
// jobs to queue rows positionally; jobs past its end fall back to a URL match
// against rows materialized from search results. Returns ErrBusy while a
// batch is live; a second batch is never queued behind it.
func (c *Coordinator) StartDownload(jobs []download.Job, explicitRows []int) error {
	if len(jobs) == 0 {
		return ErrNoJobs
	}

	c.mu.Lock()
	if c.downloadHandle != nil && !c.downloadHandle.finished() {
		c.mu.Unlock()
		return ErrBusy
	}
	prior := c.downloadHandle
	c.downloadHandle = nil

	rows := make(map[download.Key]int, len(jobs))
	for i, job := range jobs {
		row := -1
		if i < len(explicitRows) {
			row = explicitRows[i]
		} else if mapped, ok := c.urlToRow[job.URL]; ok {
			row = mapped
		}
		rows[download.Key{Title: job.Title, URL: job.URL}] = row
		if row >= 0 {
			c.queue.SetStatus(row, model.StatusQueued)
			if item := c.queue.Get(row); item != nil {
				item.FormatID = job.FormatID
			}
		}
	}
	c.mu.Unlock()

	if prior != nil {
		prior.stopAndWait(c.bound(c.settings.ShutdownDownloadSec))
	}

	h := spawnWorker("download", func(ctx context.Context, stop <-chan struct{}) {
		c.runDownload(ctx, stop, jobs, rows)
	})

	c.mu.Lock()
	c.downloadHandle = h
	c.mu.Unlock()
	return nil
}

// Items returns a snapshot of the queue in its current order. Items are
// copied; the live structs stay owned by the event loop.
func (c *Coordinator) Items() []model.QueueItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := c.queue.Items()
	out := make([]model.QueueItem, len(live))
	for i, item := range live {
		out[i] = *item
	}
	return out
}

// Results returns the current result set in arrival order.
func (c *Coordinator) Results() []model.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.SearchResult, len(c.results))
	copy(out, c.results)
	return out
}

// DownloadBusy reports whether a download batch is currently live.
func (c *Coordinator) DownloadBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.downloadHandle != nil && !c.downloadHandle.finished()
}

// Shutdown stops every live worker with its per-kind bound, concurrently,
// then stops the event loop. Safe to call more than once.
func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	kinds := []struct {
		handle *workerHandle
		bound  time.Duration
	}{
		{c.checkerHandle, c.bound(c.settings.ShutdownCheckerSec)},
		{c.searchHandle, c.bound(c.settings.ShutdownSearchSec)},
		{c.downloadHandle, c.bound(c.settings.ShutdownDownloadSec)},
	}
	c.checkerHandle = nil
	c.searchHandle = nil
	c.downloadHandle = nil
	c.mu.Unlock()

	var g errgroup.Group
	for _, k := range kinds {
		if k.handle == nil {
			continue
		}
		handle, bound := k.handle, k.bound
		g.Go(func() error {
			handle.stopAndWait(bound)
			return nil
		})
	}
	g.Wait()

	// Rows caught mid-batch never get a terminal event from their worker.
	c.mu.Lock()
	for _, item := range c.queue.Items() {
		if item.Status == model.StatusQueued || item.Status == model.StatusDownloading {
			item.Status = model.StatusCancelled
		}
	}
	c.mu.Unlock()

	c.quitOnce.Do(func() { close(c.quit) })
	<-c.loopDone
}

// loop is the single event routing goroutine. On quit it drains whatever is
// already buffered, then exits.
func (c *Coordinator) loop() {
	defer close(c.loopDone)
	for {
		select {
		case e := <-c.events:
			c.route(e)
		case <-c.quit:
			for {
				select {
				case e := <-c.events:
					c.route(e)
				default:
					return
				}
			}
		}
	}
}

func (c *Coordinator) route(e event.Event) {
	switch ev := e.(type) {
	case event.StatusChanged:
		if c.callbacks.OnStatus != nil {
			c.callbacks.OnStatus(ev.Message)
		}

	case event.ProgressChanged:
		c.mu.Lock()
		c.queue.SetProgress(ev.Row, ev.Percent, ev.Speed, ev.ETA)
		c.mu.Unlock()
		if c.callbacks.OnProgress != nil {
			c.callbacks.OnProgress(ev.Row, ev.Percent, ev.Speed, ev.ETA)
		}

	case event.ItemStarted:
		c.mu.Lock()
		c.queue.SetStatus(ev.Row, model.StatusDownloading)
		c.mu.Unlock()
		if c.callbacks.OnItemStarted != nil {
			c.callbacks.OnItemStarted(ev.Row, ev.Title)
		}

	case event.ItemCompleted:
		c.mu.Lock()
		c.queue.SetStatus(ev.Row, model.StatusCompleted)
		c.queue.SetProgress(ev.Row, 100, "N/A", "N/A")
		c.mu.Unlock()
		if c.callbacks.OnItemCompleted != nil {
			c.callbacks.OnItemCompleted(ev.Row)
		}

	case event.ItemFailed:
		c.mu.Lock()
		c.queue.SetStatus(ev.Row, model.StatusFailed)
		c.mu.Unlock()
		if c.callbacks.OnItemFailed != nil {
			c.callbacks.OnItemFailed(ev.Row, ev.Message)
		}

	case event.SearchResultFound:
		c.mu.Lock()
		c.results = append(c.results, ev.Result)
		row := c.nextRow
		c.nextRow++
		c.queue.Add(ev.Result.Title, ev.Result.URL, "", row, 0)
		if _, seen := c.urlToRow[ev.Result.URL]; !seen {
			c.urlToRow[ev.Result.URL] = row
		}
		c.mu.Unlock()
		if c.callbacks.OnSearchResult != nil {
			c.callbacks.OnSearchResult(ev.Result)
		}

	case event.SearchFinished:
		if c.callbacks.OnSearchFinished != nil {
			c.callbacks.OnSearchFinished()
		}

	case event.DownloadFinished:
		if c.callbacks.OnDownloadFinished != nil {
			c.callbacks.OnDownloadFinished()
		}

	case event.HistoryRecorded:
		c.mu.Lock()
		if row, ok := c.urlToRow[ev.URL]; ok {
			if item := c.queue.Get(row); item != nil {
				item.OutputPath = ev.Path
				item.OutputSize = ev.Size
			}
		}
		c.mu.Unlock()
		c.history.AddEntry(ev.Title, ev.URL, ev.FormatID, ev.Path, ev.Size)
		if c.callbacks.OnHistoryRecorded != nil {
			c.callbacks.OnHistoryRecorded(ev.Title, ev.URL, ev.FormatID, ev.Path, ev.Size)
		}

	case event.ToolchainChecked:
		log.Printf("Toolchain check: %s", ev.Message)
	}
}

func (c *Coordinator) bound(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = config.DefaultShutdownCheckerSec
	}
	return time.Duration(seconds) * time.Second
}
