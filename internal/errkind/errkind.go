// Package errkind defines the closed error taxonomy of the download
// pipeline. Every error crossing the pipeline boundary is one of these
// kinds, so the router can handle them exhaustively instead of matching on
// error strings.
package errkind

import "fmt"

// ValidationError rejects a request before the pipeline runs: bad URL,
// unauthorized requester, malformed command. Never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// TransferError is a retryable failure of a single attempt. Stage records
// which leg failed ("resolve", "open", "copy", "flush"); failures of either
// leg share one retry budget.
type TransferError struct {
	Stage string
	Err   error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// ProvisionError is a non-recoverable directory failure. It aborts the
// download immediately without consuming retry budget.
type ProvisionError struct {
	Path string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("cannot provision directory %s: %v", e.Path, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// ExhaustedError wraps the most recent attempt failure once the retry
// budget is spent. This is the only transfer error presented to end users,
// so the user-facing message stays stable regardless of which attempt
// failed.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("download failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}
