package event

import "github.com/vidqueue/vidqueue/internal/model"

// Event is implemented by every worker event routed through the coordinator.
type Event interface {
	isEvent()
}

// StatusChanged carries a human-readable status line update.
type StatusChanged struct {
	Message string
}

// ProgressChanged carries a progress tick for one queue row.
type ProgressChanged struct {
	Row     int
	Percent float64
	Speed   string
	ETA     string
}

// ItemStarted signals that a job began downloading.
type ItemStarted struct {
	Row   int
	Title string
}

// ItemCompleted signals that a job finished successfully.
type ItemCompleted struct {
	Row int
}

// ItemFailed signals that a job failed. The batch continues past it.
type ItemFailed struct {
	Row     int
	Message string
}

// SearchResultFound carries one resolved media entry with its format list.
type SearchResultFound struct {
	Result model.SearchResult
}

// SearchFinished signals that a search worker has completed its run.
type SearchFinished struct{}

// DownloadFinished signals that a download batch has completed its run.
type DownloadFinished struct{}

// HistoryRecorded signals a completed job ready to be appended to history.
type HistoryRecorded struct {
	Title    string
	URL      string
	FormatID string
	Path     string
	Size     int64
}

// ToolchainChecked reports the startup conversion-toolchain probe, once.
type ToolchainChecked struct {
	OK      bool
	Message string
}

func (StatusChanged) isEvent()     {}
func (ProgressChanged) isEvent()   {}
func (ItemStarted) isEvent()       {}
func (ItemCompleted) isEvent()     {}
func (ItemFailed) isEvent()        {}
func (SearchResultFound) isEvent() {}
func (SearchFinished) isEvent()    {}
func (DownloadFinished) isEvent()  {}
func (HistoryRecorded) isEvent()   {}
func (ToolchainChecked) isEvent()  {}
