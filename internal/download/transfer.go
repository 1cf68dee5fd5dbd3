package download

import (
	"context"
	"io"
	"os"

	"github.com/ytget/ytrelay/internal/errkind"
)

// File permissions
const (
	outputFilePermissions = 0644
)

// transfer joins the remote stream to the local file: one synchronous copy
// that finishes only after the file is flushed to disk. The destination is
// opened with O_TRUNC so a smaller later attempt never leaves tail bytes
// from an earlier one. On error the partial file stays in place.
func (o *Orchestrator) transfer(ctx context.Context, url, dest string) (int64, error) {
	stream, _, err := o.source.Open(ctx, url)
	if err != nil {
		return 0, &errkind.TransferError{Stage: "open", Err: err}
	}
	defer stream.Close()

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputFilePermissions)
	if err != nil {
		return 0, &errkind.TransferError{Stage: "create", Err: err}
	}

	written, err := io.Copy(f, stream)
	if err != nil {
		f.Close()
		return written, &errkind.TransferError{Stage: "copy", Err: err}
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return written, &errkind.TransferError{Stage: "flush", Err: err}
	}
	if err := f.Close(); err != nil {
		return written, &errkind.TransferError{Stage: "flush", Err: err}
	}

	return written, nil
}
