package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadCompletedEvent is published once a session reaches completed state.
// The integrity verifier consumes it to check the stored bytes.
type UploadCompletedEvent struct {
	SessionID    uuid.UUID `json:"session_id"`
	StorageKey   string    `json:"storage_key"`
	DeclaredSize int64     `json:"declared_size"`
	CompletedAt  time.Time `json:"completed_at"`
}
