package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.DownloadDir == "" {
		t.Error("Expected a default download directory")
	}
	if s.SearchFormat != DefaultSearchFormat {
		t.Errorf("Expected default search format, got %q", s.SearchFormat)
	}
	if s.DownloadRetries != DefaultDownloadRetries {
		t.Errorf("Expected %d download retries, got %d", DefaultDownloadRetries, s.DownloadRetries)
	}
	if s.AudioBitrateCeil != 320 {
		t.Errorf("Expected 320k audio ceiling, got %d", s.AudioBitrateCeil)
	}
	if s.ShutdownCheckerSec >= s.ShutdownDownloadSec {
		t.Error("Expected checker shutdown bound shorter than download bound")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if s.SearchFormat != DefaultSearchFormat {
		t.Errorf("Expected defaults, got %q", s.SearchFormat)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)

	s := DefaultSettings()
	s.DownloadDir = "/custom/downloads"
	s.DownloadRetries = 3
	if err := s.Save(path); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if loaded.DownloadDir != "/custom/downloads" {
		t.Errorf("Expected custom download dir, got %q", loaded.DownloadDir)
	}
	if loaded.DownloadRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", loaded.DownloadRetries)
	}
}

func TestLoad_PartialDocumentGetsFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	if err := os.WriteFile(path, []byte(`{"download_dir":"/only/this"}`), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if s.DownloadDir != "/only/this" {
		t.Errorf("Expected explicit value kept, got %q", s.DownloadDir)
	}
	if s.SearchSocketSec != DefaultSearchSocketSec {
		t.Errorf("Expected fallback socket timeout, got %d", s.SearchSocketSec)
	}
	if s.MergeContainer != DefaultMergeContainer {
		t.Errorf("Expected fallback merge container, got %q", s.MergeContainer)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
