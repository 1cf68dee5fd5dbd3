package resolve

import (
	"context"
	"fmt"
	"io"

	"github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"

	"github.com/ytget/ytrelay/internal/model"
)

// YouTube implements Resolver and StreamSource over the YouTube web API.
type YouTube struct {
	client youtube.Client
	logger zerolog.Logger
}

// NewYouTube creates a YouTube adapter.
func NewYouTube(logger zerolog.Logger) *YouTube {
	return &YouTube{
		logger: logger.With().Str("component", "resolve").Logger(),
	}
}

// Resolve fetches metadata for a video URL.
func (y *YouTube) Resolve(ctx context.Context, rawURL string) (*model.MediaDescriptor, error) {
	video, err := y.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve metadata: %w", err)
	}

	return &model.MediaDescriptor{
		Title:           video.Title,
		Author:          video.Author,
		DurationSeconds: int(video.Duration.Seconds()),
		ViewCount:       int64(video.Views),
	}, nil
}

// Open opens a byte stream for the highest-quality format that carries both
// video and audio. The stream is bound to ctx and aborts when it is
// cancelled.
func (y *YouTube) Open(ctx context.Context, rawURL string) (io.ReadCloser, int64, error) {
	video, err := y.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch stream manifest: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		formats = video.Formats
	}
	if len(formats) == 0 {
		return nil, 0, fmt.Errorf("no downloadable formats for %s", rawURL)
	}
	// Best quality first.
	formats.Sort()

	stream, size, err := y.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open stream: %w", err)
	}

	y.logger.Debug().
		Str("video_id", video.ID).
		Str("quality", formats[0].QualityLabel).
		Int64("size", size).
		Msg("opened media stream")

	return stream, size, nil
}
