package search

// Package search implements the metadata-resolution worker built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). One worker resolves one URL
// into one-or-more entries, classifies the raw formats, and emits results as
// events; failures never escape the worker boundary.
