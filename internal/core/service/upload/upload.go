package upload

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"chunkgate/internal/config"
	"chunkgate/internal/core/domain"
	"chunkgate/internal/core/port"

	"github.com/google/uuid"
)

type uploadService struct {
	repo    port.SessionRepository
	storage port.ChunkStorage
	events  port.EventPublisher
	cfg     config.UploadConfig
	logger  *slog.Logger
	locks   *keyedLocks
}

// NewUploadService creates a new upload service. events may be nil when no
// broker is wired; completion events are then skipped.
func NewUploadService(repo port.SessionRepository, storage port.ChunkStorage, events port.EventPublisher, cfg config.UploadConfig, logger *slog.Logger) port.UploadService {
	return &uploadService{
		repo:    repo,
		storage: storage,
		events:  events,
		cfg:     cfg,
		logger:  logger,
		locks:   newKeyedLocks(),
	}
}

// deriveStorageKey builds the backend key for a new session: a namespace
// prefix, a random component against collision and guessing, and a sanitized
// filename hint for human-readable traceability.
func (s *uploadService) deriveStorageKey(metadata domain.Metadata) string {
	return fmt.Sprintf("%s/%s-%s", s.cfg.KeyPrefix, uuid.New().String(), sanitizeHint(metadata["filename"]))
}

const maxHintLength = 64

func sanitizeHint(hint string) string {
	var b strings.Builder
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
		if b.Len() >= maxHintLength {
			break
		}
	}
	cleaned := strings.Trim(b.String(), "-.")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}

// keyedLocks serializes mutating operations per session. Two concurrent
// appends reading the same offset would double-apply bytes without it.
type keyedLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{entries: make(map[string]*lockEntry)}
}

// lock acquires the exclusive lock for key and returns its release func
func (l *keyedLocks) lock(key string) func() {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &lockEntry{}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
