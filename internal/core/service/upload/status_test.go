package upload_test

import (
	"context"
	"testing"

	"chunkgate/internal/adapters/repository"
	"chunkgate/internal/adapters/storage"
	"chunkgate/internal/core/domain"
	"chunkgate/internal/core/service/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadService_Status_ReportsLivePosition(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockSessionRepository()
	mockStorage := storage.NewMockChunkStorage()
	service := upload.NewUploadService(mockRepo, mockStorage, nil, defaultCfg, testLogger())

	storageKey := "uploads/abc-live"
	handle := domain.EncodeHandle(storageKey)
	session := activeSession(storageKey, 10, 5, domain.SessionStateInProgress)

	mockRepo.On("FindByStorageKey", ctx, storageKey).Return(session, nil)
	mockStorage.On("Position", ctx, session).Return(int64(7), nil)

	// Act
	status, err := service.Status(ctx, handle)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(7), status.Offset, "buffered bytes count toward the resume position")
	assert.Equal(t, int64(10), status.DeclaredSize)
	assert.Equal(t, domain.SessionStateInProgress, status.State)
}

func TestUploadService_Status_PositionFailureFallsBackToCommitted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockSessionRepository()
	mockStorage := storage.NewMockChunkStorage()
	service := upload.NewUploadService(mockRepo, mockStorage, nil, defaultCfg, testLogger())

	storageKey := "uploads/abc-fallback"
	handle := domain.EncodeHandle(storageKey)
	session := activeSession(storageKey, 10, 5, domain.SessionStateInProgress)

	mockRepo.On("FindByStorageKey", ctx, storageKey).Return(session, nil)
	mockStorage.On("Position", ctx, session).Return(int64(0), domain.ErrStorageUnavailable)

	// Act
	status, err := service.Status(ctx, handle)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(5), status.Offset)
}

func TestUploadService_Status_TerminalStates(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockSessionRepository()
	mockStorage := storage.NewMockChunkStorage()
	service := upload.NewUploadService(mockRepo, mockStorage, nil, defaultCfg, testLogger())

	cases := []struct {
		state  domain.SessionState
		offset int64
	}{
		{domain.SessionStateCompleted, 10},
		{domain.SessionStateTerminated, 3},
	}

	for _, tc := range cases {
		storageKey := "uploads/status-" + string(tc.state)
		handle := domain.EncodeHandle(storageKey)
		session := activeSession(storageKey, 10, tc.offset, tc.state)
		session.Verification = domain.VerificationPassed
		mockRepo.On("FindByStorageKey", ctx, storageKey).Return(session, nil)

		// Act
		status, err := service.Status(ctx, handle)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, tc.offset, status.Offset)
		assert.Equal(t, tc.state, status.State)
		assert.Equal(t, domain.VerificationPassed, status.Verification)
	}
	mockStorage.AssertNotCalled(t, "Position", mock.Anything, mock.Anything)
}

func TestUploadService_Status_UnknownUpload(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockSessionRepository()
	service := upload.NewUploadService(mockRepo, storage.NewMockChunkStorage(), nil, defaultCfg, testLogger())

	storageKey := "uploads/never-created"
	handle := domain.EncodeHandle(storageKey)
	mockRepo.On("FindByStorageKey", ctx, storageKey).Return(nil, domain.ErrUploadNotFound)

	// Act
	status, err := service.Status(ctx, handle)

	// Assert
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
	assert.Nil(t, status)
}

func TestUploadService_Status_InvalidHandle(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := upload.NewUploadService(repository.NewMockSessionRepository(), storage.NewMockChunkStorage(), nil, defaultCfg, testLogger())

	// Act
	_, err := service.Status(ctx, "!!garbage!!")

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidHandle)
}
