package upload

import (
	"context"
	"fmt"

	"chunkgate/internal/core/domain"
)

// Terminate aborts the session behind handle. Idempotent: terminating an
// already-terminated session is a no-op success, so duplicate client cleanup
// calls are harmless. A completed session is never resurrected.
func (s *uploadService) Terminate(ctx context.Context, handle string) error {
	storageKey, err := domain.DecodeHandle(handle)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(storageKey)
	defer unlock()

	session, err := s.repo.FindByStorageKey(ctx, storageKey)
	if err != nil {
		return err
	}

	switch session.State {
	case domain.SessionStateTerminated:
		return nil
	case domain.SessionStateCompleted:
		return fmt.Errorf("%w: session is completed", domain.ErrInvalidState)
	}

	if err := s.storage.Abort(ctx, session); err != nil {
		return err
	}

	if err := s.repo.UpdateState(ctx, session.ID, domain.SessionStateTerminated); err != nil {
		return err
	}

	s.logger.Info("upload terminated",
		"sessionID", session.ID.String(),
		"storageKey", session.StorageKey,
		"offset", session.Offset)

	return nil
}
