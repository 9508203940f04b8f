package cleanup

import (
	"log/slog"

	"chunkgate/internal/core/port"
)

type cleanupService struct {
	repo    port.SessionRepository
	storage port.ChunkStorage
	logger  *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(repo port.SessionRepository, storage port.ChunkStorage, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		repo:    repo,
		storage: storage,
		logger:  logger,
	}
}
