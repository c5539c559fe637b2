package model

// DownloadStatus represents the status of a queue item.
type DownloadStatus string

const (
	// StatusPending means the item was created but not yet scheduled.
	StatusPending DownloadStatus = "Pending"

	// StatusQueued means the item is part of a batch waiting its turn.
	StatusQueued DownloadStatus = "Queued"

	// StatusDownloading means the download is in progress.
	StatusDownloading DownloadStatus = "Downloading"

	// StatusPaused means the item was paused; it returns to Queued on resume.
	StatusPaused DownloadStatus = "Paused"

	// StatusCompleted means the item finished successfully.
	StatusCompleted DownloadStatus = "Completed"

	// StatusFailed means the item failed with an error.
	StatusFailed DownloadStatus = "Failed"

	// StatusCancelled means the item was cancelled by the user.
	StatusCancelled DownloadStatus = "Cancelled"
)

// String returns the string representation of DownloadStatus.
func (s DownloadStatus) String() string {
	return string(s)
}

// IsEligible returns true if the item can be picked as the next download.
func (s DownloadStatus) IsEligible() bool {
	return s == StatusPending || s == StatusQueued
}

// IsTerminal returns true if the item reached a final state.
func (s DownloadStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// CanPause returns true if a transition to Paused is allowed.
func (s DownloadStatus) CanPause() bool {
	return s == StatusQueued || s == StatusDownloading
}
