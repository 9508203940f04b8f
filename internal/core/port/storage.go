package port

import (
	"context"
	"io"

	"chunkgate/internal/core/domain"
)

// StoragePart describes one part of an in-flight multipart upload
type StoragePart struct {
	PartNumber int
	ETag       string
	Size       int64
}

// ObjectInfo describes a finalized object
type ObjectInfo struct {
	Size int64
	ETag string
}

// ObjectStore is an interface over the raw multipart API of an object-storage
// backend (minio, s3, ...)
type ObjectStore interface {
	InitMultipartUpload(ctx context.Context, storageKey string) (string, error)
	PutObjectPart(ctx context.Context, storageKey, uploadID string, partNumber int, data io.Reader, size int64) (StoragePart, error)
	CompleteMultipartUpload(ctx context.Context, storageKey, uploadID string, parts []StoragePart) error
	AbortMultipartUpload(ctx context.Context, storageKey, uploadID string) error
	ListParts(ctx context.Context, storageKey, uploadID string) ([]StoragePart, error)
	StatObject(ctx context.Context, storageKey string) (*ObjectInfo, error)
	GetObject(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// ChunkStorage maps a session's logical offset space onto the backend's
// multipart API, buffering writes below the backend's minimum part size.
type ChunkStorage interface {
	// Begin opens the backend multipart upload for a new session.
	Begin(ctx context.Context, storageKey string) (string, error)
	// Append accepts bytes at expectedOffset and returns the new write
	// position (flushed + buffered). Fails with domain.ErrOffsetMismatch
	// when expectedOffset is not the current position.
	Append(ctx context.Context, session *domain.UploadSession, expectedOffset int64, data []byte) (int64, error)
	// Position returns the session's current write position.
	Position(ctx context.Context, session *domain.UploadSession) (int64, error)
	// Finalize flushes any buffered remainder as the final part and
	// completes the multipart upload. Returns the assembled size.
	Finalize(ctx context.Context, session *domain.UploadSession) (int64, error)
	// Abort releases the in-flight multipart upload and discards buffers.
	Abort(ctx context.Context, session *domain.UploadSession) error
}
