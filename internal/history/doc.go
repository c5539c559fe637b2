package history

// Package history keeps an append-only, capped log of completed downloads,
// persisted as one JSON document in the per-user cache directory. The
// in-memory list stays authoritative when a write fails.
