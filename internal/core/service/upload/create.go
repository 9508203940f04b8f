package upload

import (
	"context"
	"fmt"
	"time"

	"chunkgate/internal/core/domain"
	"chunkgate/internal/core/port"

	"github.com/google/uuid"
)

// Create opens a new upload session: validates metadata, derives the storage
// key, begins the backend multipart upload and persists the session record.
// A declared size of zero finalizes the (empty) upload immediately.
func (s *uploadService) Create(ctx context.Context, declaredSize int64, rawMetadata map[string]string) (*port.CreateResult, error) {
	if declaredSize < 0 {
		return nil, fmt.Errorf("%w: declared size must not be negative", domain.ErrInvalidMetadata)
	}
	if declaredSize > s.cfg.MaxSize {
		return nil, fmt.Errorf("%w: declared size %d exceeds maximum %d", domain.ErrSizeExceeded, declaredSize, s.cfg.MaxSize)
	}

	metadata, err := s.validateMetadata(rawMetadata)
	if err != nil {
		return nil, err
	}

	storageKey := s.deriveStorageKey(metadata)
	unlock := s.locks.lock(storageKey)
	defer unlock()

	uploadID, err := s.storage.Begin(ctx, storageKey)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := domain.UploadSession{
		ID:               uuid.New(),
		StorageKey:       storageKey,
		ProviderUploadID: uploadID,
		DeclaredSize:     declaredSize,
		Offset:           0,
		Metadata:         metadata,
		State:            domain.SessionStateCreated,
		Verification:     domain.VerificationPending,
		ExpiresAt:        now.Add(s.cfg.SessionTTL),
		CreatedAt:        now,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		// the multipart upload would otherwise dangle until backend GC
		if abortErr := s.storage.Abort(ctx, &session); abortErr != nil {
			s.logger.Warn("failed to abort orphaned multipart upload",
				"storageKey", storageKey, "error", abortErr)
		}
		return nil, fmt.Errorf("could not create upload session: %w", err)
	}

	if declaredSize == 0 {
		if err := s.complete(ctx, &session); err != nil {
			return nil, err
		}
	}

	return &port.CreateResult{
		Session: session,
		Handle:  domain.EncodeHandle(storageKey),
	}, nil
}
