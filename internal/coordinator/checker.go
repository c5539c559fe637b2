package coordinator

import (
	"context"

	"github.com/vidqueue/vidqueue/internal/event"
	"github.com/vidqueue/vidqueue/internal/platform"
)

// runToolchainCheck probes for the conversion toolchain once at startup.
// The outcome is informational; a missing ffmpeg never blocks usage.
func runToolchainCheck(ctx context.Context, events chan<- event.Event) {
	checked := event.ToolchainChecked{OK: platform.CheckFFmpegExists()}
	if checked.OK {
		checked.Message = "ffmpeg found: " + platform.FindFFmpegExecutable()
	} else {
		checked.Message = "ffmpeg not found; audio extraction and merging will fail"
	}

	select {
	case events <- checked:
	case <-ctx.Done():
	}
}
