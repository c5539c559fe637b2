package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "My Video", "My Video"},
		{"forward slash", "AC/DC - Back in Black", "AC_DC - Back in Black"},
		{"backslash", "a\\b", "a_b"},
		{"both", "a/b\\c", "a_b_c"},
		{"empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := SanitizeTitle(test.input)
			if result != test.expected {
				t.Errorf("SanitizeTitle(%q) = %q, expected %q", test.input, result, test.expected)
			}
		})
	}
}

func TestFindOutputFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "My Song.mp3")
	if err := os.WriteFile(path, []byte("audio data"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	found, size, err := FindOutputFile(dir, "My Song", AudioOutputExtensions)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found != path {
		t.Errorf("Expected path %s, got %s", path, found)
	}
	if size != int64(len("audio data")) {
		t.Errorf("Expected size %d, got %d", len("audio data"), size)
	}
}

func TestFindOutputFile_CandidateOrder(t *testing.T) {
	dir := t.TempDir()

	mkv := filepath.Join(dir, "Clip.mkv")
	if err := os.WriteFile(mkv, []byte("xx"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	found, _, err := FindOutputFile(dir, "Clip", VideoOutputExtensions)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found != mkv {
		t.Errorf("Expected fallback to .mkv, got %s", found)
	}
}

func TestFindOutputFile_SanitizedTitle(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "AC_DC.mp4")
	if err := os.WriteFile(path, []byte("xx"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	found, _, err := FindOutputFile(dir, "AC/DC", VideoOutputExtensions)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found != path {
		t.Errorf("Expected sanitized lookup to find %s, got %s", path, found)
	}
}

func TestFindOutputFile_Missing(t *testing.T) {
	dir := t.TempDir()

	_, _, err := FindOutputFile(dir, "Nothing Here", VideoOutputExtensions)
	if err == nil {
		t.Error("Expected error for missing output file")
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "downloads")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected directory to exist, stat err: %v", err)
	}

	// Second call is a no-op.
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Expected no error on existing directory, got %v", err)
	}
}
