package repository

import (
	"context"
	"time"

	"chunkgate/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockSessionRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.UploadSession, error) {
	args := m.Called(ctx, storageKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockSessionRepository) UpdateOffset(ctx context.Context, id uuid.UUID, offset int64) error {
	args := m.Called(ctx, id, offset)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateState(ctx context.Context, id uuid.UUID, state domain.SessionState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateVerification(ctx context.Context, id uuid.UUID, verification domain.VerificationState) error {
	args := m.Called(ctx, id, verification)
	return args.Error(0)
}

func (m *MockSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UploadSession), args.Error(1)
}
