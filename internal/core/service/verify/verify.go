package verify

import (
	"log/slog"

	"chunkgate/internal/core/port"
)

// referenceDigestKey is the optional metadata key holding a client-supplied
// SHA-256 of the full payload, hex encoded.
const referenceDigestKey = "checksum_sha256"

type verifyService struct {
	store  port.ObjectStore
	repo   port.SessionRepository
	logger *slog.Logger
}

// NewVerifyService creates the post-completion integrity verifier. It
// consumes upload-completed events and cross-checks the stored bytes against
// what the client declared.
func NewVerifyService(store port.ObjectStore, repo port.SessionRepository, logger *slog.Logger) port.MessageService {
	return &verifyService{
		store:  store,
		repo:   repo,
		logger: logger,
	}
}
