package upload

import (
	"context"
	"time"

	"chunkgate/internal/core/domain"
)

// complete is the internal transition into the completed state. The client
// is acknowledged once storage durability is confirmed; integrity
// verification runs afterwards off the completion event and is advisory.
func (s *uploadService) complete(ctx context.Context, session *domain.UploadSession) error {
	size, err := s.storage.Finalize(ctx, session)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateOffset(ctx, session.ID, size); err != nil {
		return err
	}
	if err := s.repo.UpdateState(ctx, session.ID, domain.SessionStateCompleted); err != nil {
		return err
	}
	session.Offset = size
	session.State = domain.SessionStateCompleted

	s.logger.Info("upload completed",
		"sessionID", session.ID.String(),
		"storageKey", session.StorageKey,
		"size", size)

	if s.events != nil {
		event := domain.UploadCompletedEvent{
			SessionID:    session.ID,
			StorageKey:   session.StorageKey,
			DeclaredSize: session.DeclaredSize,
			CompletedAt:  time.Now().UTC(),
		}
		if err := s.events.PublishUploadCompleted(ctx, event); err != nil {
			// verification is advisory; a publish failure must not fail
			// the already-durable upload
			s.logger.Error("failed to publish upload completed event",
				"sessionID", session.ID.String(), "error", err)
		}
	}

	return nil
}
