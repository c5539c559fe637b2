package download

// Package download runs ordered batches of download jobs, one at a time,
// reporting progress and per-job outcomes as events. A failed job never
// stops the batch.
