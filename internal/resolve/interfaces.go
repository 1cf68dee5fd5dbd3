package resolve

import (
	"context"
	"io"

	"github.com/ytget/ytrelay/internal/model"
)

// Resolver turns a media URL into its metadata descriptor.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*model.MediaDescriptor, error)
}

// StreamSource opens a byte stream for a media URL at the highest available
// quality. The returned size is a hint and may be zero when the remote side
// does not report one. The stream may fail at open time or mid-read.
type StreamSource interface {
	Open(ctx context.Context, url string) (io.ReadCloser, int64, error)
}
