package upload

import (
	"context"

	"chunkgate/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a new MockUploadService
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) Create(ctx context.Context, declaredSize int64, rawMetadata map[string]string) (*port.CreateResult, error) {
	args := m.Called(ctx, declaredSize, rawMetadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CreateResult), args.Error(1)
}

func (m *MockUploadService) Append(ctx context.Context, handle string, expectedOffset int64, data []byte) (int64, error) {
	args := m.Called(ctx, handle, expectedOffset, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUploadService) Status(ctx context.Context, handle string) (*port.UploadStatus, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadStatus), args.Error(1)
}

func (m *MockUploadService) Terminate(ctx context.Context, handle string) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}
