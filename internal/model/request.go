package model

import (
	"time"

	"github.com/google/uuid"
)

// DownloadRequest describes a single validated download order coming from a
// chat command. It is immutable once constructed; the identifiers are used
// only for logging and status reporting, never for control flow.
type DownloadRequest struct {
	ID          string
	URL         string
	RequesterID int64
	ChatID      int64
	ReceivedAt  time.Time
}

// NewDownloadRequest builds a request with a fresh correlation ID.
func NewDownloadRequest(url string, requesterID, chatID int64) *DownloadRequest {
	return &DownloadRequest{
		ID:          uuid.NewString(),
		URL:         url,
		RequesterID: requesterID,
		ChatID:      chatID,
		ReceivedAt:  time.Now(),
	}
}

// MediaDescriptor holds the metadata resolved for a remote media URL. Title
// and Author are untrusted remote strings and must be sanitized before use
// as path segments.
type MediaDescriptor struct {
	Title           string
	Author          string
	DurationSeconds int
	ViewCount       int64
}
