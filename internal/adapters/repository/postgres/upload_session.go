package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chunkgate/internal/core/domain"
	"chunkgate/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SQLQuerier is satisfied by both *sql.DB and *sql.Tx
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlSessionRepository struct {
	db SQLQuerier
}

// NewSQLSessionRepository creates a new sqlSessionRepository
func NewSQLSessionRepository(db SQLQuerier) port.SessionRepository {
	return &sqlSessionRepository{db: db}
}

const sessionColumns = `id, storage_key, provider_upload_id, declared_size, committed_offset, metadata, status, verification, expires_at, created_at, updated_at`

// Create persists a new upload session
func (s *sqlSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	metadata, err := json.Marshal(session.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO upload_session (
			id, storage_key, provider_upload_id, declared_size, committed_offset, metadata, status, verification, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.StorageKey,
		session.ProviderUploadID,
		session.DeclaredSize,
		session.Offset,
		metadata,
		session.State,
		session.Verification,
		session.ExpiresAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("session for key %s already exists: %w", session.StorageKey, err)
		}
		return err
	}
	return nil
}

func (s *sqlSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM upload_session WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *sqlSessionRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.UploadSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM upload_session WHERE storage_key = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, storageKey))
}

// UpdateOffset records the newly committed offset of a session
func (s *sqlSessionRepository) UpdateOffset(ctx context.Context, id uuid.UUID, offset int64) error {
	query := `UPDATE upload_session SET committed_offset = $1, updated_at = now() WHERE id = $2`
	return s.execExpectingRow(ctx, query, offset, id)
}

// UpdateState moves a session to a new lifecycle state
func (s *sqlSessionRepository) UpdateState(ctx context.Context, id uuid.UUID, state domain.SessionState) error {
	query := `UPDATE upload_session SET status = $1, updated_at = now() WHERE id = $2`
	return s.execExpectingRow(ctx, query, state, id)
}

// UpdateVerification records the outcome of integrity verification
func (s *sqlSessionRepository) UpdateVerification(ctx context.Context, id uuid.UUID, verification domain.VerificationState) error {
	query := `UPDATE upload_session SET verification = $1, updated_at = now() WHERE id = $2`
	return s.execExpectingRow(ctx, query, verification, id)
}

func (s *sqlSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM upload_session
		WHERE status IN ('created', 'in_progress') AND expires_at < $1`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.UploadSession
	for rows.Next() {
		session, err := s.scanRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (s *sqlSessionRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUploadNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *sqlSessionRepository) scanOne(row *sql.Row) (*domain.UploadSession, error) {
	session, err := s.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUploadNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sqlSessionRepository) scanRow(row rowScanner) (*domain.UploadSession, error) {
	var dbRow dbUploadSession
	if err := row.Scan(
		&dbRow.ID,
		&dbRow.StorageKey,
		&dbRow.ProviderUploadID,
		&dbRow.DeclaredSize,
		&dbRow.Offset,
		&dbRow.Metadata,
		&dbRow.Status,
		&dbRow.Verification,
		&dbRow.ExpiresAt,
		&dbRow.CreatedAt,
		&dbRow.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return dbRow.ToDomain()
}

type dbUploadSession struct {
	ID               uuid.UUID
	StorageKey       string
	ProviderUploadID string
	DeclaredSize     int64
	Offset           int64
	Metadata         []byte
	Status           string
	Verification     string
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ToDomain converts db obj to domain
func (s *dbUploadSession) ToDomain() (*domain.UploadSession, error) {
	var metadata domain.Metadata
	if len(s.Metadata) > 0 {
		if err := json.Unmarshal(s.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &domain.UploadSession{
		ID:               s.ID,
		StorageKey:       s.StorageKey,
		ProviderUploadID: s.ProviderUploadID,
		DeclaredSize:     s.DeclaredSize,
		Offset:           s.Offset,
		Metadata:         metadata,
		State:            domain.SessionState(s.Status),
		Verification:     domain.VerificationState(s.Verification),
		ExpiresAt:        s.ExpiresAt,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}, nil
}
