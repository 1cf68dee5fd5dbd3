package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/ytget/ytdlp/v2"
)

// PlaylistItem is one entry of an expanded playlist.
type PlaylistItem struct {
	VideoID string
	Title   string
	URL     string
}

// Playlist expands a playlist URL into its individual video entries.
func (y *YouTube) Playlist(ctx context.Context, rawURL string) ([]PlaylistItem, error) {
	if !strings.Contains(rawURL, PlaylistParam) {
		return nil, fmt.Errorf("not a playlist URL: %s", rawURL)
	}
	playlistID := extractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		entries = append(entries, PlaylistItem{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}

	y.logger.Debug().
		Str("playlist_id", playlistID).
		Int("items", len(entries)).
		Msg("expanded playlist")

	return entries, nil
}
