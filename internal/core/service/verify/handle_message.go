package verify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"chunkgate/internal/core/domain"
)

// HandleMessage verifies one completed upload. Transient storage failures
// return an error so the broker redelivers; a detected mismatch is recorded
// and alerted but returns nil, since redelivering a deterministic corruption
// check changes nothing. Verification never unwinds the acknowledged upload.
func (v *verifyService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.UploadCompletedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal upload completed event: %w", err)
	}

	session, err := v.repo.FindByID(ctx, event.SessionID)
	if err != nil {
		return err
	}

	corruption, err := v.check(ctx, session)
	if err != nil {
		return err
	}

	if corruption != nil {
		if err := v.repo.UpdateVerification(ctx, session.ID, domain.VerificationCorrupt); err != nil {
			return err
		}
		v.logger.Error("corruption detected in completed upload",
			"sessionID", session.ID.String(),
			"storageKey", session.StorageKey,
			"cause", corruption)
		return nil
	}

	if err := v.repo.UpdateVerification(ctx, session.ID, domain.VerificationPassed); err != nil {
		return err
	}

	v.logger.Info("upload verified",
		"sessionID", session.ID.String(),
		"storageKey", session.StorageKey,
		"size", session.DeclaredSize)
	return nil
}

// check returns a non-nil corruption cause when stored bytes do not match
// what the client declared; failure reports a backend fault that warrants a
// retry instead of a verdict.
func (v *verifyService) check(ctx context.Context, session *domain.UploadSession) (corruption error, failure error) {
	info, err := v.store.StatObject(ctx, session.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrStorageUnavailable, session.StorageKey, err)
	}

	if info.Size != session.DeclaredSize {
		return fmt.Errorf("%w: %w: stored %d bytes, declared %d",
			domain.ErrCorruptionDetected, domain.ErrSizeMismatch, info.Size, session.DeclaredSize), nil
	}

	object, err := v.store.GetObject(ctx, session.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrStorageUnavailable, session.StorageKey, err)
	}
	defer object.Close()

	hasher := sha256.New()
	read, err := io.Copy(hasher, object)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorageUnavailable, session.StorageKey, err)
	}
	if read != session.DeclaredSize {
		return fmt.Errorf("%w: %w: read %d bytes, declared %d",
			domain.ErrCorruptionDetected, domain.ErrSizeMismatch, read, session.DeclaredSize), nil
	}

	reference := strings.ToLower(strings.TrimSpace(session.Metadata[referenceDigestKey]))
	if reference != "" {
		actual := hex.EncodeToString(hasher.Sum(nil))
		if actual != reference {
			return fmt.Errorf("%w: %w: stored sha256 %s, declared %s",
				domain.ErrCorruptionDetected, domain.ErrDigestMismatch, actual, reference), nil
		}
	}

	return nil, nil
}
