package cleanup

import (
	"context"
	"time"

	"chunkgate/internal/core/domain"
)

// CleanupExpiredSessions aborts uploads whose session expired before now and
// marks them terminated. One failing session does not stop the sweep.
func (c *cleanupService) CleanupExpiredSessions(ctx context.Context, now time.Time) error {
	sessions, err := c.repo.FindAllExpired(ctx, now)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		if err := c.storage.Abort(ctx, &session); err != nil {
			c.logger.Error("failed to abort expired upload",
				"sessionID", session.ID.String(), "error", err)
			continue
		}

		if err := c.repo.UpdateState(ctx, session.ID, domain.SessionStateTerminated); err != nil {
			c.logger.Error("failed to terminate expired session",
				"sessionID", session.ID.String(), "error", err)
			continue
		}

		c.logger.Info("expired upload session reaped",
			"sessionID", session.ID.String(),
			"storageKey", session.StorageKey,
			"offset", session.Offset)
	}

	return nil
}
