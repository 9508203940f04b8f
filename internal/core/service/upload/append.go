package upload

import (
	"context"
	"fmt"

	"chunkgate/internal/core/domain"
)

// Append accepts bytes at expectedOffset for the session behind handle and
// returns the new write position. Once the position reaches the declared
// size the completion transition runs before returning.
func (s *uploadService) Append(ctx context.Context, handle string, expectedOffset int64, data []byte) (int64, error) {
	storageKey, err := domain.DecodeHandle(handle)
	if err != nil {
		return 0, err
	}

	unlock := s.locks.lock(storageKey)
	defer unlock()

	session, err := s.repo.FindByStorageKey(ctx, storageKey)
	if err != nil {
		return 0, err
	}
	if !session.CanAccept() {
		return session.Offset, fmt.Errorf("%w: session is %s", domain.ErrInvalidState, session.State)
	}

	committedBefore := session.Offset
	position, err := s.storage.Append(ctx, session, expectedOffset, data)
	if err != nil {
		return position, fmt.Errorf("append to %s at offset %d: %w", session.ID, expectedOffset, err)
	}

	if session.State == domain.SessionStateCreated && position > 0 {
		if err := s.repo.UpdateState(ctx, session.ID, domain.SessionStateInProgress); err != nil {
			return position, err
		}
		session.State = domain.SessionStateInProgress
	}

	if session.Offset != committedBefore {
		if err := s.repo.UpdateOffset(ctx, session.ID, session.Offset); err != nil {
			return position, err
		}
	}

	if position == session.DeclaredSize {
		if err := s.complete(ctx, session); err != nil {
			return position, err
		}
	}

	return position, nil
}
