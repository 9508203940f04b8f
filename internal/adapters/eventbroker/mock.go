package eventbroker

import (
	"context"

	"chunkgate/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishUploadCompleted(ctx context.Context, event domain.UploadCompletedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
