package download

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidqueue/vidqueue/internal/event"
	"github.com/vidqueue/vidqueue/internal/model"
	"github.com/vidqueue/vidqueue/internal/platform"
)

const batchIDPrefix = "batch-"

// Job is one unit of a download batch.
type Job struct {
	Title    string
	URL      string
	FormatID string
}

// Key identifies a job for queue-row routing.
type Key struct {
	Title string
	URL   string
}

// Options configures one batch run.
type Options struct {
	SocketTimeoutSec     int
	Retries              int
	MergeContainer       string
	AudioFormat          string
	AudioBitrateCeilKbps int
	FilenameTemplate     string
}

// ProgressTick is one progress callback from the fetcher.
type ProgressTick struct {
	Percent float64
	Speed   string
	ETA     string
}

// Fetcher executes a single download. The batch logic sits above it so job
// sequencing and error handling stay testable without a real service call.
type Fetcher interface {
	Fetch(ctx context.Context, job Job, dir, ffmpegPath string, audio bool, opts Options, onProgress func(ProgressTick)) error
}

// Worker drains an ordered batch of jobs, strictly one at a time. It runs
// once; a new batch needs a new worker.
type Worker struct {
	id      string
	jobs    []Job
	dir     string
	rows    map[Key]int
	opts    Options
	events  chan<- event.Event
	fetcher Fetcher
}

// NewWorker creates a download worker for one batch. rows maps each job back
// to its queue row for progress routing; the events channel is injected by
// the coordinator at spawn time.
func NewWorker(jobs []Job, dir string, rows map[Key]int, opts Options, events chan<- event.Event) *Worker {
	return &Worker{
		id:      generateBatchID(),
		jobs:    jobs,
		dir:     dir,
		rows:    rows,
		opts:    opts,
		events:  events,
		fetcher: ytdlpFetcher{},
	}
}

// ID returns the batch identifier used in log lines.
func (w *Worker) ID() string { return w.id }

// Run drains the batch. It blocks until every job is tried, a stop request
// arrives, or the context is cancelled. Errors never escape this boundary;
// each failure becomes an ItemFailed event and the next job proceeds.
func (w *Worker) Run(ctx context.Context, stop <-chan struct{}) {
	defer w.emit(ctx, event.DownloadFinished{})

	ffmpegPath := platform.FindFFmpegExecutable()

	for _, job := range w.jobs {
		if stopRequested(ctx, stop) {
			return
		}
		w.runJob(ctx, job, ffmpegPath)
	}
}

func (w *Worker) runJob(ctx context.Context, job Job, ffmpegPath string) {
	row := w.rowFor(job)
	w.emit(ctx, event.ItemStarted{Row: row, Title: job.Title})
	w.emit(ctx, event.StatusChanged{Message: "Starting download: " + job.Title})

	audio := isAudioExtraction(job)
	err := w.fetcher.Fetch(ctx, job, w.dir, ffmpegPath, audio, w.opts, func(tick ProgressTick) {
		w.emit(ctx, event.ProgressChanged{
			Row:     row,
			Percent: tick.Percent,
			Speed:   tick.Speed,
			ETA:     tick.ETA,
		})
	})
	if err != nil {
		w.failJob(ctx, row, job, err)
		return
	}

	exts := platform.VideoOutputExtensions
	if audio {
		exts = platform.AudioOutputExtensions
	}
	path, size, err := platform.FindOutputFile(w.dir, job.Title, exts)
	if err != nil {
		w.failJob(ctx, row, job, err)
		return
	}

	w.emit(ctx, event.ItemCompleted{Row: row})
	w.emit(ctx, event.StatusChanged{Message: "Download complete: " + job.Title})
	w.emit(ctx, event.HistoryRecorded{
		Title:    job.Title,
		URL:      job.URL,
		FormatID: job.FormatID,
		Path:     path,
		Size:     size,
	})
}

// failJob reports one failed job. Service errors and local filesystem errors
// take the same shape; the batch moves on either way.
func (w *Worker) failJob(ctx context.Context, row int, job Job, err error) {
	log.Printf("Batch %s: download failed for %s: %v", w.id, job.URL, err)
	w.emit(ctx, event.ItemFailed{
		Row:     row,
		Message: fmt.Sprintf("Download failed (%s): %v", job.Title, err),
	})
	w.emit(ctx, event.StatusChanged{Message: "Download failed: " + job.Title})
}

func (w *Worker) rowFor(job Job) int {
	if row, ok := w.rows[Key{Title: job.Title, URL: job.URL}]; ok {
		return row
	}
	return -1
}

func (w *Worker) emit(ctx context.Context, e event.Event) {
	select {
	case w.events <- e:
	case <-ctx.Done():
	}
}

// isAudioExtraction reports whether the job runs the audio-extract pipeline
// instead of a raw download plus container merge.
func isAudioExtraction(job Job) bool {
	return job.FormatID == model.AudioExtractFormatID || strings.Contains(job.Title, "MP3")
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

// generateBatchID generates a unique batch ID using UUID v7 so concurrent
// log lines sort chronologically.
func generateBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(batchIDPrefix+"%d", time.Now().UnixNano())
	}
	return batchIDPrefix + id.String()
}
