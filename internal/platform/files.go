package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Candidate output extensions probed after a download completes. Audio jobs
// always produce mp3; video jobs land in whatever container the merge picked.
var (
	AudioOutputExtensions = []string{".mp3"}
	VideoOutputExtensions = []string{".mp4", ".mkv", ".webm", ".m4a"}
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist.
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user.
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// GetCacheDir returns a per-user writable cache directory for the app,
// creating it if needed.
func GetCacheDir(appName string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return dir, nil
}

// SanitizeTitle makes a title safe for use in an output filename template.
func SanitizeTitle(title string) string {
	safe := strings.ReplaceAll(title, "/", "_")
	safe = strings.ReplaceAll(safe, "\\", "_")
	return safe
}

// FindOutputFile probes dir for the downloaded file named after title, trying
// each candidate extension in order. Returns the path and size of the first
// match, or an error when none exists.
func FindOutputFile(dir, title string, extensions []string) (string, int64, error) {
	base := SanitizeTitle(title)
	for _, ext := range extensions {
		candidate := filepath.Join(dir, base+ext)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, info.Size(), nil
		}
	}
	return "", 0, fmt.Errorf("no output file found for %q in %s", title, dir)
}
