package model

// QueueItem represents a single item in the download queue.
type QueueItem struct {
	Title    string
	URL      string
	FormatID string // explicit format choice carried on the item
	Row      int    // unique row index within a queue
	Status   DownloadStatus
	Priority int     // higher = scheduled sooner
	Progress float64 // 0 to 100
	Speed    string  // human readable speed (e.g., "1.2MB/s")
	ETA      string  // human readable ETA (e.g., "02:41")

	OutputPath string // path to downloaded file, empty until completed
	OutputSize int64  // file size in bytes, 0 if unknown
}
