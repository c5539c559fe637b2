package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, conversion-toolchain (ffmpeg) resolution, yt-dlp info
// JSON parsing, and playlist URL handling.
