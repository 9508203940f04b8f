package port

import (
	"context"
	"time"

	"chunkgate/internal/core/domain"

	"github.com/google/uuid"
)

// SessionRepository is an interface to interact with upload session persistence
type SessionRepository interface {
	Create(ctx context.Context, session domain.UploadSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	FindByStorageKey(ctx context.Context, storageKey string) (*domain.UploadSession, error)
	UpdateOffset(ctx context.Context, id uuid.UUID, offset int64) error
	UpdateState(ctx context.Context, id uuid.UUID, state domain.SessionState) error
	UpdateVerification(ctx context.Context, id uuid.UUID, verification domain.VerificationState) error
	FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error)
}
