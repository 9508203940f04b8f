package port

import (
	"context"
	"time"

	"chunkgate/internal/core/domain"
)

// CreateResult is returned by UploadService.Create
type CreateResult struct {
	Session domain.UploadSession
	Handle  string
}

// UploadStatus is a read-only snapshot used by clients to resume
type UploadStatus struct {
	Offset       int64
	DeclaredSize int64
	State        domain.SessionState
	Verification domain.VerificationState
}

// UploadService is the upload session state machine
type UploadService interface {
	Create(ctx context.Context, declaredSize int64, rawMetadata map[string]string) (*CreateResult, error)
	Append(ctx context.Context, handle string, expectedOffset int64, data []byte) (int64, error)
	Status(ctx context.Context, handle string) (*UploadStatus, error)
	Terminate(ctx context.Context, handle string) error
}

// CleanupService reaps expired upload sessions
type CleanupService interface {
	CleanupExpiredSessions(ctx context.Context, now time.Time) error
}
