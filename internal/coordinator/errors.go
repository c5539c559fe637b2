package coordinator

import (
	"errors"
	"fmt"
)

// Rejections returned before any worker is spawned.
var (
	ErrBusy   = errors.New("a download batch is already running")
	ErrNoJobs = errors.New("no jobs selected")
)

// ValidationError rejects an empty or malformed URL.
type ValidationError struct {
	URL    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid URL %q: %s", e.URL, e.Reason)
}

// DuplicateError rejects a URL already present in the current result set.
type DuplicateError struct {
	URL string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("URL already searched: %s", e.URL)
}
