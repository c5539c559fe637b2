package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/vidqueue/vidqueue/internal/platform"
)

// AppName names the per-user config/cache subdirectories.
const AppName = "vidqueue"

// SettingsFileName is the settings document inside the config dir.
const SettingsFileName = "settings.json"

// Default option values. The search pass is deliberately light (short timeout,
// few retries); the download pass is persistent.
const (
	DefaultSearchFormat       = "best[height<=480]/best[height<=720]/best"
	DefaultSearchTimeoutSec   = 60
	DefaultSearchSocketSec    = 10
	DefaultSearchRetries      = 2
	DefaultDownloadSocketSec  = 30
	DefaultDownloadRetries    = 10
	DefaultAudioBitrateCeil   = 320
	DefaultMergeContainer     = "mp4"
	DefaultAudioFormat        = "mp3"
	DefaultFilenameTemplate   = "%(title)s.%(ext)s"
	DefaultShutdownCheckerSec = 2
	DefaultShutdownSearchSec  = 5
	DefaultShutdownDownldSec  = 15
)

// Settings holds all configuration options.
type Settings struct {
	DownloadDir string `json:"download_dir"`

	// Search pass
	SearchFormat     string `json:"search_format"`
	SearchTimeoutSec int    `json:"search_timeout_sec"`
	SearchSocketSec  int    `json:"search_socket_timeout_sec"`
	SearchRetries    int    `json:"search_retries"`

	// Download pass
	DownloadSocketSec int    `json:"download_socket_timeout_sec"`
	DownloadRetries   int    `json:"download_retries"`
	AudioBitrateCeil  int    `json:"audio_bitrate_ceiling_kbps"`
	MergeContainer    string `json:"merge_container"`
	AudioFormat       string `json:"audio_format"`
	FilenameTemplate  string `json:"filename_template"`

	// Shutdown bounds, per worker kind
	ShutdownCheckerSec  int `json:"shutdown_checker_sec"`
	ShutdownSearchSec   int `json:"shutdown_search_sec"`
	ShutdownDownloadSec int `json:"shutdown_download_sec"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	downloadDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		downloadDir = "."
	}
	return &Settings{
		DownloadDir:         downloadDir,
		SearchFormat:        DefaultSearchFormat,
		SearchTimeoutSec:    DefaultSearchTimeoutSec,
		SearchSocketSec:     DefaultSearchSocketSec,
		SearchRetries:       DefaultSearchRetries,
		DownloadSocketSec:   DefaultDownloadSocketSec,
		DownloadRetries:     DefaultDownloadRetries,
		AudioBitrateCeil:    DefaultAudioBitrateCeil,
		MergeContainer:      DefaultMergeContainer,
		AudioFormat:         DefaultAudioFormat,
		FilenameTemplate:    DefaultFilenameTemplate,
		ShutdownCheckerSec:  DefaultShutdownCheckerSec,
		ShutdownSearchSec:   DefaultShutdownSearchSec,
		ShutdownDownloadSec: DefaultShutdownDownldSec,
	}
}

// SettingsPath returns the settings file location inside the per-user config
// directory, creating the directory if needed.
func SettingsPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, platform.DefaultDirPermissions); err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// Load reads settings from path, filling any missing fields with defaults.
// A missing file yields pure defaults without error.
func Load(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	s.applyFallbacks()
	return s, nil
}

// Save writes settings to path as indented JSON.
func (s *Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyFallbacks restores defaults for zero-valued fields after a partial
// settings document.
func (s *Settings) applyFallbacks() {
	d := DefaultSettings()
	if s.DownloadDir == "" {
		s.DownloadDir = d.DownloadDir
	}
	if s.SearchFormat == "" {
		s.SearchFormat = d.SearchFormat
	}
	if s.SearchTimeoutSec <= 0 {
		s.SearchTimeoutSec = d.SearchTimeoutSec
	}
	if s.SearchSocketSec <= 0 {
		s.SearchSocketSec = d.SearchSocketSec
	}
	if s.SearchRetries < 0 {
		s.SearchRetries = d.SearchRetries
	}
	if s.DownloadSocketSec <= 0 {
		s.DownloadSocketSec = d.DownloadSocketSec
	}
	if s.DownloadRetries < 0 {
		s.DownloadRetries = d.DownloadRetries
	}
	if s.AudioBitrateCeil <= 0 {
		s.AudioBitrateCeil = d.AudioBitrateCeil
	}
	if s.MergeContainer == "" {
		s.MergeContainer = d.MergeContainer
	}
	if s.AudioFormat == "" {
		s.AudioFormat = d.AudioFormat
	}
	if s.FilenameTemplate == "" {
		s.FilenameTemplate = d.FilenameTemplate
	}
	if s.ShutdownCheckerSec <= 0 {
		s.ShutdownCheckerSec = d.ShutdownCheckerSec
	}
	if s.ShutdownSearchSec <= 0 {
		s.ShutdownSearchSec = d.ShutdownSearchSec
	}
	if s.ShutdownDownloadSec <= 0 {
		s.ShutdownDownloadSec = d.ShutdownDownloadSec
	}
}
