package upload

import (
	"context"

	"chunkgate/internal/core/domain"
	"chunkgate/internal/core/port"
)

// Status returns a resumption snapshot for the session behind handle. Valid
// in every state, including terminal ones, and served without the session
// lock: the snapshot is advisory, the offset guard in Append is the
// correctness gate.
func (s *uploadService) Status(ctx context.Context, handle string) (*port.UploadStatus, error) {
	storageKey, err := domain.DecodeHandle(handle)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.FindByStorageKey(ctx, storageKey)
	if err != nil {
		return nil, err
	}

	offset := session.Offset
	if session.CanAccept() {
		if position, err := s.storage.Position(ctx, session); err == nil {
			offset = position
		} else {
			s.logger.Warn("could not read live write position, reporting committed offset",
				"sessionID", session.ID.String(), "error", err)
		}
	}

	return &port.UploadStatus{
		Offset:       offset,
		DeclaredSize: session.DeclaredSize,
		State:        session.State,
		Verification: session.Verification,
	}, nil
}
