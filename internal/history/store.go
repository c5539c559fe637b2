package history

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Document format constants
const (
	FileVersion = "1.0"
	FileName    = "history.json"

	// MaxEntries caps the log; oldest entries are evicted first.
	MaxEntries = 1000

	DefaultRecentLimit = 50
)

// Entry is one completed download.
type Entry struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	FormatID     string `json:"format_id"`
	DownloadPath string `json:"download_path"`
	FileSize     int64  `json:"file_size"`
	Timestamp    string `json:"timestamp"` // ISO-8601
}

// document is the persisted JSON shape.
type document struct {
	Version     string  `json:"version"`
	LastUpdated string  `json:"last_updated"`
	Entries     []Entry `json:"entries"`
}

// Store manages download history records. The coordinator loop writes while
// the user-facing side reads, so all access goes through the mutex.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	now     func() time.Time
}

// NewStore creates a store backed by the given file path, loading any
// existing history. A missing or unreadable file yields an empty history.
func NewStore(path string) *Store {
	s := &Store{path: path, now: time.Now}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to load history from %s: %v", s.path, err)
		}
		return
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Failed to parse history file %s: %v", s.path, err)
		return
	}
	s.entries = doc.Entries
	log.Printf("Loaded %d history entries from %s", len(s.entries), s.path)
}

// save persists the whole collection synchronously. Failures are logged and
// swallowed; the in-memory entries remain authoritative for the session.
func (s *Store) save() {
	doc := document{
		Version:     FileVersion,
		LastUpdated: s.now().Format(time.RFC3339),
		Entries:     s.entries,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Printf("Failed to encode history: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Printf("Failed to save history to %s: %v", s.path, err)
	}
}

// AddEntry appends a completed download, evicts past the cap, and persists.
func (s *Store) AddEntry(title, url, formatID, downloadPath string, fileSize int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{
		Title:        title,
		URL:          url,
		FormatID:     formatID,
		DownloadPath: downloadPath,
		FileSize:     fileSize,
		Timestamp:    s.now().Format(time.RFC3339),
	})
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[len(s.entries)-MaxEntries:]
	}
	s.save()
}

// Recent returns up to limit entries, most recent first.
func (s *Store) Recent(limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}

	out := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= len(s.entries)-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

// Search returns entries whose title or URL contains query, case-insensitive,
// most recent first.
func (s *Store) Search(query string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var out []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.URL), q) {
			out = append(out, e)
		}
	}
	return out
}

// DeleteAt removes the entry at index and persists. Negative indices count
// from the end (-1 is the most recent). Returns false when out of range.
func (s *Store) DeleteAt(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return false
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	s.save()
	return true
}

// Clear empties the history and persists.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.save()
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
