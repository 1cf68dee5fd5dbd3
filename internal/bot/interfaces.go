package bot

import (
	"context"

	"github.com/ytget/ytrelay/internal/model"
	"github.com/ytget/ytrelay/internal/resolve"
)

// InboundMessage is one chat message as delivered by the transport.
type InboundMessage struct {
	Text     string
	SenderID int64
	ChatID   int64
}

// Downloader runs the download pipeline for one request.
type Downloader interface {
	Download(ctx context.Context, req *model.DownloadRequest) model.Outcome
}

// PlaylistLister expands a playlist URL into its video entries.
type PlaylistLister interface {
	Playlist(ctx context.Context, url string) ([]resolve.PlaylistItem, error)
}

// Sender delivers outbound text to a chat. Implementations are responsible
// for respecting the transport's message length limit.
type Sender interface {
	Send(chatID int64, text string) error
}
