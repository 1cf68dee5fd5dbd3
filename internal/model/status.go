package model

// DownloadStatus represents the state of one download invocation
type DownloadStatus string

const (
	// StatusResolving means metadata is being fetched for the URL
	StatusResolving DownloadStatus = "Resolving"

	// StatusProvisioning means the output directory is being created
	StatusProvisioning DownloadStatus = "Provisioning"

	// StatusTransferring means bytes are flowing from source to file
	StatusTransferring DownloadStatus = "Transferring"

	// StatusSucceeded means the file is fully written and flushed
	StatusSucceeded DownloadStatus = "Succeeded"

	// StatusFailedRetryable means the attempt failed but the retry budget
	// is not yet exhausted
	StatusFailedRetryable DownloadStatus = "FailedRetryable"

	// StatusFailedTerminal means no further attempts will be made
	StatusFailedTerminal DownloadStatus = "FailedTerminal"
)

// String returns the string representation of DownloadStatus
func (ds DownloadStatus) String() string {
	return string(ds)
}

// IsActive returns true while the download is still in progress
func (ds DownloadStatus) IsActive() bool {
	return ds == StatusResolving || ds == StatusProvisioning || ds == StatusTransferring
}

// IsTerminal returns true once the download reached a final state
func (ds DownloadStatus) IsTerminal() bool {
	return ds == StatusSucceeded || ds == StatusFailedTerminal
}
