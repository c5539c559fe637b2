package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// FFmpeg executable names per OS
const (
	FFmpegCommand        = "ffmpeg"
	FFmpegCommandWindows = "ffmpeg.exe"
)

// ffmpegExecutableName returns the platform-specific ffmpeg binary name.
func ffmpegExecutableName() string {
	if runtime.GOOS == "windows" {
		return FFmpegCommandWindows
	}
	return FFmpegCommand
}

// FindFFmpegExecutable resolves the ffmpeg executable path. Checked in order:
// the directory the application binary lives in (bundled builds), the current
// working directory, then the bare command name for OS PATH lookup.
func FindFFmpegExecutable() string {
	name := ffmpegExecutableName()

	if exePath, err := os.Executable(); err == nil {
		bundled := filepath.Join(filepath.Dir(exePath), name)
		if info, err := os.Stat(bundled); err == nil && !info.IsDir() {
			return bundled
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, name)
		if info, err := os.Stat(local); err == nil && !info.IsDir() {
			return local
		}
	}

	return FFmpegCommand
}

// CheckFFmpegExists reports whether an ffmpeg binary is reachable, either as a
// bundled/local file or on the OS PATH.
func CheckFFmpegExists() bool {
	path := FindFFmpegExecutable()
	if path != FFmpegCommand {
		info, err := os.Stat(path)
		return err == nil && !info.IsDir()
	}
	_, err := exec.LookPath(FFmpegCommand)
	return err == nil
}
