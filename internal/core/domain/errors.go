package domain

import "errors"

// ErrInvalidMetadata is an error thrown when creation metadata fails validation
var ErrInvalidMetadata = errors.New("invalid metadata")

// ErrInvalidHandle is an error thrown when an external upload handle cannot be decoded
var ErrInvalidHandle = errors.New("invalid upload handle")

// ErrUploadNotFound is an error thrown when no session exists for a handle
var ErrUploadNotFound = errors.New("upload not found")

// ErrOffsetMismatch is an error thrown when an append targets a stale or future offset
var ErrOffsetMismatch = errors.New("offset mismatch")

// ErrInvalidState is an error thrown when an operation is attempted against a terminal session
var ErrInvalidState = errors.New("invalid session state")

// ErrIncompleteUpload is an error thrown when finalize is attempted before all declared bytes arrived
var ErrIncompleteUpload = errors.New("incomplete upload")

// ErrSizeExceeded is an error thrown when a write would pass the declared size
var ErrSizeExceeded = errors.New("declared size exceeded")

// ErrStorageUnavailable is an error thrown when the storage backend fails
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrSizeMismatch is an error thrown when the stored object size differs from the declared size
var ErrSizeMismatch = errors.New("size mismatch")

// ErrDigestMismatch is an error thrown when the stored object digest differs from the reference digest
var ErrDigestMismatch = errors.New("digest mismatch")

// ErrCorruptionDetected is an error thrown when post-completion verification finds a mismatch
var ErrCorruptionDetected = errors.New("corruption detected")
