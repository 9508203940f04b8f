package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionState represents the lifecycle state of an upload session
type SessionState string

const (
	SessionStateCreated    SessionState = "created"
	SessionStateInProgress SessionState = "in_progress"
	SessionStateCompleted  SessionState = "completed"
	SessionStateTerminated SessionState = "terminated"
)

// IsTerminal reports whether no further transitions are allowed
func (s SessionState) IsTerminal() bool {
	return s == SessionStateCompleted || s == SessionStateTerminated
}

// VerificationState represents the outcome of post-completion integrity verification
type VerificationState string

const (
	VerificationPending VerificationState = "pending"
	VerificationPassed  VerificationState = "passed"
	VerificationCorrupt VerificationState = "corrupt"
)

// Metadata is the validated key/value map supplied at session creation.
// Immutable after create.
type Metadata map[string]string

// UploadSession represents one resumable transfer
type UploadSession struct {
	ID               uuid.UUID
	StorageKey       string
	ProviderUploadID string
	DeclaredSize     int64
	// Offset counts bytes flushed to the backend. Bytes sitting in the
	// chunk writer's pending buffer are not included.
	Offset       int64
	Metadata     Metadata
	State        SessionState
	Verification VerificationState
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanAccept reports whether the session may receive more bytes
func (s *UploadSession) CanAccept() bool {
	return s.State == SessionStateCreated || s.State == SessionStateInProgress
}
