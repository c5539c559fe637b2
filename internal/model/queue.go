package model

import "sort"

// Queue is a priority-ordered collection of download items with status
// tracking. It is not safe for concurrent use; the coordinator goroutine is
// the only writer by design.
type Queue struct {
	items []*QueueItem
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add creates a new item, inserts it and re-sorts by priority. Row indices
// are expected to be unique within the queue; the caller assigns them.
func (q *Queue) Add(title, url, formatID string, row, priority int) *QueueItem {
	item := &QueueItem{
		Title:    title,
		URL:      url,
		FormatID: formatID,
		Row:      row,
		Status:   StatusPending,
		Priority: priority,
		Speed:    "N/A",
		ETA:      "N/A",
	}
	q.items = append(q.items, item)
	q.sortByPriority()
	return item
}

// Remove deletes the item with the given row index. Returns false if no such
// item exists.
func (q *Queue) Remove(row int) bool {
	for i, item := range q.items {
		if item.Row == row {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the item with the given row index, or nil.
func (q *Queue) Get(row int) *QueueItem {
	for _, item := range q.items {
		if item.Row == row {
			return item
		}
	}
	return nil
}

// GetNext returns the first eligible item (Pending or Queued) in priority
// order, or nil when nothing is eligible.
func (q *Queue) GetNext() *QueueItem {
	for _, item := range q.items {
		if item.Status.IsEligible() {
			return item
		}
	}
	return nil
}

// SetStatus updates the status of the item with the given row index.
func (q *Queue) SetStatus(row int, status DownloadStatus) bool {
	item := q.Get(row)
	if item == nil {
		return false
	}
	item.Status = status
	return true
}

// SetProgress updates progress percent, speed and ETA of an item.
func (q *Queue) SetProgress(row int, percent float64, speed, eta string) bool {
	item := q.Get(row)
	if item == nil {
		return false
	}
	item.Progress = percent
	item.Speed = speed
	item.ETA = eta
	return true
}

// SetPriority updates an item's priority and re-sorts the queue.
func (q *Queue) SetPriority(row, priority int) bool {
	item := q.Get(row)
	if item == nil {
		return false
	}
	item.Priority = priority
	q.sortByPriority()
	return true
}

// ClearCompleted removes all completed items.
func (q *Queue) ClearCompleted() {
	kept := q.items[:0]
	for _, item := range q.items {
		if item.Status != StatusCompleted {
			kept = append(kept, item)
		}
	}
	q.items = kept
}

// PendingCount returns the number of eligible (Pending/Queued) items.
func (q *Queue) PendingCount() int {
	n := 0
	for _, item := range q.items {
		if item.Status.IsEligible() {
			n++
		}
	}
	return n
}

// DownloadingCount returns the number of items currently downloading.
func (q *Queue) DownloadingCount() int {
	n := 0
	for _, item := range q.items {
		if item.Status == StatusDownloading {
			n++
		}
	}
	return n
}

// Len returns the number of items in the queue.
func (q *Queue) Len() int {
	return len(q.items)
}

// Items returns the items in their current order.
func (q *Queue) Items() []*QueueItem {
	out := make([]*QueueItem, len(q.items))
	copy(out, q.items)
	return out
}

// sortByPriority re-sorts descending by priority. The sort is stable so
// equal-priority items keep their insertion order.
func (q *Queue) sortByPriority() {
	sort.SliceStable(q.items, func(i, j int) bool {
		return q.items[i].Priority > q.items[j].Priority
	})
}
