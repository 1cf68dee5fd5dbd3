package download

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/ytrelay/internal/errkind"
	"github.com/ytget/ytrelay/internal/fsutil"
	"github.com/ytget/ytrelay/internal/metrics"
	"github.com/ytget/ytrelay/internal/model"
	"github.com/ytget/ytrelay/internal/resolve"
)

// Default values
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1000 * time.Millisecond
	OutputExtension   = ".mp4"
)

// Orchestrator drives download requests through
// resolve → provision → transfer with a bounded retry budget.
//
// Concurrent invocations are independent: two requests for the same video
// run two attempt loops and may race on the same output file, last writer
// wins. No locking or deduplication is done here.
type Orchestrator struct {
	resolver   resolve.Resolver
	source     resolve.StreamSource
	outputRoot string
	maxRetries int
	retryDelay time.Duration
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// NewOrchestrator creates an orchestrator writing below outputRoot.
// maxRetries and retryDelay fall back to defaults when non-positive.
func NewOrchestrator(resolver resolve.Resolver, source resolve.StreamSource, outputRoot string, maxRetries int, retryDelay time.Duration, logger zerolog.Logger, m *metrics.Metrics) *Orchestrator {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Orchestrator{
		resolver:   resolver,
		source:     source,
		outputRoot: outputRoot,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger.With().Str("component", "download").Logger(),
		metrics:    m,
	}
}

// Download runs the attempt loop for one request and returns its terminal
// outcome. Attempts are strictly sequential; between failed attempts the
// loop waits exactly the configured fixed delay. Partial files from failed
// attempts stay on disk and are overwritten by the next attempt.
func (o *Orchestrator) Download(ctx context.Context, req *model.DownloadRequest) model.Outcome {
	log := o.logger.With().
		Str("request_id", req.ID).
		Int64("chat_id", req.ChatID).
		Str("url", req.URL).
		Logger()

	o.metrics.DownloadStarted()
	started := time.Now()
	defer o.metrics.DownloadFinished()

	var lastErr error
	for attempt := 0; attempt < o.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(o.retryDelay):
			case <-ctx.Done():
				lastErr = ctx.Err()
				log.Warn().Err(lastErr).Msg("shutdown during retry wait")
				o.metrics.RecordOutcome("exhausted", time.Since(started))
				return model.Failure(&errkind.ExhaustedError{Attempts: attempt, Err: lastErr})
			}
			log.Info().Int("attempt", attempt+1).Msg("retrying download")
		}

		o.metrics.RecordAttempt()
		path, written, err := o.attempt(ctx, log, req)
		if err == nil {
			o.metrics.RecordBytes(written)
			o.metrics.RecordOutcome("success", time.Since(started))
			log.Info().Str("path", path).Int64("bytes", written).Int("attempt", attempt+1).Msg("download completed")
			return model.Success(path)
		}

		var provErr *errkind.ProvisionError
		if errors.As(err, &provErr) {
			// Fatal, does not consume the retry budget.
			o.metrics.RecordOutcome("fatal", time.Since(started))
			log.Error().Err(provErr).Msg("download aborted")
			return model.Failure(provErr)
		}

		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt+1).Msg("download attempt failed")

		if ctx.Err() != nil {
			break
		}
	}

	exhausted := &errkind.ExhaustedError{Attempts: o.maxRetries, Err: lastErr}
	o.metrics.RecordOutcome("exhausted", time.Since(started))
	log.Error().Err(exhausted).Msg("download failed")
	return model.Failure(exhausted)
}

// attempt is one full pass: resolve → provision → transfer. It returns the
// output path and byte count on success, a *errkind.TransferError on a
// retryable failure, and a *errkind.ProvisionError on a fatal one.
func (o *Orchestrator) attempt(ctx context.Context, log zerolog.Logger, req *model.DownloadRequest) (string, int64, error) {
	log.Debug().Str("state", model.StatusResolving.String()).Send()
	desc, err := o.resolver.Resolve(ctx, req.URL)
	if err != nil {
		return "", 0, &errkind.TransferError{Stage: "resolve", Err: err}
	}

	folder := filepath.Join(o.outputRoot, fsutil.SanitizeSegment(desc.Author))
	outputFile := filepath.Join(folder, fsutil.SanitizeSegment(desc.Title)+OutputExtension)

	log.Debug().Str("state", model.StatusProvisioning.String()).Str("folder", folder).Send()
	if err := fsutil.EnsureDir(folder); err != nil {
		return "", 0, &errkind.ProvisionError{Path: folder, Err: err}
	}

	log.Debug().Str("state", model.StatusTransferring.String()).Str("path", outputFile).Send()
	written, err := o.transfer(ctx, req.URL, outputFile)
	if err != nil {
		return "", 0, err
	}

	return outputFile, written, nil
}
