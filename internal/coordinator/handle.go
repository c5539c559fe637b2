package coordinator

import (
	"context"
	"log"
	"sync"
	"time"
)

// forcedStopGrace bounds the wait after a forced termination before the
// handle is abandoned.
const forcedStopGrace = 2 * time.Second

// runFunc is a worker's blocking run loop. It must honor both the stop
// channel (cooperative) and the context (forced).
type runFunc func(ctx context.Context, stop <-chan struct{})

// workerHandle supervises one live worker goroutine. The stop channel asks
// the worker to finish at its next check; cancelling the context aborts any
// blocking call underneath it, including a spawned external process.
type workerHandle struct {
	kind     string
	stop     chan struct{}
	stopOnce sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// spawnWorker starts run in its own goroutine and returns its handle.
func spawnWorker(kind string, run runFunc) *workerHandle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &workerHandle{
		kind:   kind,
		stop:   make(chan struct{}),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		defer cancel()
		run(ctx, h.stop)
	}()
	return h
}

// requestStop asks the worker to stop cooperatively. Safe to call more than
// once.
func (h *workerHandle) requestStop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// stopAndWait runs the full stop protocol: cooperative request, bounded
// wait, then forced termination plus a short grace wait. A worker that
// outlives the grace period is logged and abandoned; its partial output file,
// if any, is left in place.
func (h *workerHandle) stopAndWait(bound time.Duration) {
	h.requestStop()

	select {
	case <-h.done:
		return
	case <-time.After(bound):
	}

	log.Printf("Worker %s did not stop within %s, forcing termination", h.kind, bound)
	h.cancel()

	select {
	case <-h.done:
	case <-time.After(forcedStopGrace):
		log.Printf("Worker %s still running after forced termination", h.kind)
	}
}

// finished reports whether the worker's run loop has returned.
func (h *workerHandle) finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
