package download

// Package download implements the core pipeline: resolve metadata, provision
// the output directory, stream the media to disk, all under a bounded
// fixed-delay retry loop. Metadata-resolution failures and mid-stream
// failures share one retry budget; directory-provisioning failures abort
// immediately.
