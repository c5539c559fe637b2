package search

import (
	"context"
	"fmt"

	"github.com/ytget/ytdlp/v2"

	"github.com/vidqueue/vidqueue/internal/platform"
)

// ytgetLister enumerates playlist items with the lightweight ytdlp client,
// avoiding a full per-entry extraction just to learn the video URLs.
type ytgetLister struct{}

func (ytgetLister) ListPlaylist(ctx context.Context, playlistID string) ([]string, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	urls := make([]string, 0, len(items))
	for _, it := range items {
		urls = append(urls, fmt.Sprintf(platform.YouTubeVideoURLTemplate, it.VideoID))
	}
	return urls, nil
}
