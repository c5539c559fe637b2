package model

// Package model defines domain data structures used across the app: queue
// items, media formats, search results, history entries, and status enums.
// The queue is single-writer (the coordinator goroutine) and carries explicit
// state transitions.
