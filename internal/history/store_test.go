package history

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), FileName))
}

func TestStore_AddAndRecent(t *testing.T) {
	s := newTestStore(t)

	s.AddEntry("First", "http://a", "22", "/dl/first.mp4", 100)
	s.AddEntry("Second", "http://b", "18", "/dl/second.mp4", 200)

	recent := s.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(recent))
	}
	if recent[0].Title != "Second" {
		t.Errorf("Expected most recent first, got %q", recent[0].Title)
	}
	if recent[1].Title != "First" {
		t.Errorf("Expected oldest last, got %q", recent[1].Title)
	}
	if recent[0].Timestamp == "" {
		t.Error("Expected a timestamp on stored entries")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	s := NewStore(path)
	s.AddEntry("Video", "http://v", "bestaudio/best", "/dl/video.mp3", 12345)

	reloaded := NewStore(path)
	if reloaded.Len() != 1 {
		t.Fatalf("Expected 1 entry after reload, got %d", reloaded.Len())
	}
	got := reloaded.Recent(1)[0]
	want := s.Recent(1)[0]
	if got != want {
		t.Errorf("Reloaded entry differs: got %+v, want %+v", got, want)
	}
}

func TestStore_CapEviction(t *testing.T) {
	s := newTestStore(t)
	// Writing 1001 entries through save each time is slow; exercise the cap
	// via the public API but only check the boundary condition.
	for i := 0; i < MaxEntries+1; i++ {
		s.AddEntry(fmt.Sprintf("video-%d", i), fmt.Sprintf("http://v/%d", i), "18", "/dl/x.mp4", 0)
	}

	if s.Len() != MaxEntries {
		t.Fatalf("Expected exactly %d entries, got %d", MaxEntries, s.Len())
	}
	if hits := s.Search("video-0"); len(hits) != 0 {
		t.Error("Expected the very first entry to be evicted")
	}
	recent := s.Recent(1)
	if recent[0].Title != fmt.Sprintf("video-%d", MaxEntries) {
		t.Errorf("Expected newest entry kept, got %q", recent[0].Title)
	}
}

func TestStore_Search(t *testing.T) {
	s := newTestStore(t)
	s.AddEntry("Cat Compilation", "http://site/cats", "22", "/dl/a.mp4", 0)
	s.AddEntry("Dog Tricks", "http://site/dogs", "22", "/dl/b.mp4", 0)
	s.AddEntry("More CATS", "http://site/more", "22", "/dl/c.mp4", 0)

	hits := s.Search("cat")
	if len(hits) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(hits))
	}
	if hits[0].Title != "More CATS" {
		t.Errorf("Expected most recent match first, got %q", hits[0].Title)
	}

	// URL matching too.
	hits = s.Search("site/dogs")
	if len(hits) != 1 || hits[0].Title != "Dog Tricks" {
		t.Errorf("Expected URL match for Dog Tricks, got %+v", hits)
	}

	if hits := s.Search("zebra"); len(hits) != 0 {
		t.Errorf("Expected no matches, got %d", len(hits))
	}
}

func TestStore_DeleteAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s := NewStore(path)
	s.AddEntry("A", "http://a", "22", "/dl/a.mp4", 0)
	s.AddEntry("B", "http://b", "22", "/dl/b.mp4", 0)
	s.AddEntry("C", "http://c", "22", "/dl/c.mp4", 0)

	// Negative index removes the most recent.
	if !s.DeleteAt(-1) {
		t.Fatal("Expected DeleteAt(-1) to succeed")
	}
	if s.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", s.Len())
	}
	if s.Recent(1)[0].Title != "B" {
		t.Errorf("Expected B to be most recent after delete, got %q", s.Recent(1)[0].Title)
	}

	// Deletion is persisted.
	reloaded := NewStore(path)
	if reloaded.Len() != 2 {
		t.Errorf("Expected deletion persisted, reloaded %d entries", reloaded.Len())
	}

	// Positive index removes from the start.
	if !s.DeleteAt(0) {
		t.Fatal("Expected DeleteAt(0) to succeed")
	}
	if s.Recent(1)[0].Title != "B" {
		t.Errorf("Expected B to survive, got %q", s.Recent(1)[0].Title)
	}

	// Out of range either direction.
	if s.DeleteAt(5) {
		t.Error("Expected DeleteAt(5) to fail")
	}
	if s.DeleteAt(-5) {
		t.Error("Expected DeleteAt(-5) to fail")
	}
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s := NewStore(path)
	s.AddEntry("A", "http://a", "22", "/dl/a.mp4", 0)

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d", s.Len())
	}
	if reloaded := NewStore(path); reloaded.Len() != 0 {
		t.Errorf("Expected cleared history persisted, got %d entries", reloaded.Len())
	}
}

func TestStore_PersistenceFailureKeepsMemory(t *testing.T) {
	// Point the store at a path whose parent does not exist; saves fail but
	// the in-memory list remains authoritative.
	s := NewStore(filepath.Join(t.TempDir(), "missing-dir", FileName))

	s.AddEntry("A", "http://a", "22", "/dl/a.mp4", 0)

	if s.Len() != 1 {
		t.Errorf("Expected entry kept in memory despite write failure, got %d", s.Len())
	}
}

func TestStore_ConcurrentReadsAndWrites(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			s.AddEntry(fmt.Sprintf("video-%d", i), "http://v/x", "22", "/dl/x.mp4", 1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			s.Recent(10)
			s.Search("video")
			s.Len()
		}
	}()
	wg.Wait()

	if s.Len() != 50 {
		t.Errorf("Expected 50 entries after concurrent writes, got %d", s.Len())
	}
}
