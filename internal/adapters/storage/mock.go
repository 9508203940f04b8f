package storage

import (
	"context"
	"io"

	"chunkgate/internal/core/domain"
	"chunkgate/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of port.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

// NewMockObjectStore creates a new MockObjectStore
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{}
}

func (m *MockObjectStore) InitMultipartUpload(ctx context.Context, storageKey string) (string, error) {
	args := m.Called(ctx, storageKey)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) PutObjectPart(ctx context.Context, storageKey, uploadID string, partNumber int, data io.Reader, size int64) (port.StoragePart, error) {
	args := m.Called(ctx, storageKey, uploadID, partNumber, data, size)
	return args.Get(0).(port.StoragePart), args.Error(1)
}

func (m *MockObjectStore) CompleteMultipartUpload(ctx context.Context, storageKey, uploadID string, parts []port.StoragePart) error {
	args := m.Called(ctx, storageKey, uploadID, parts)
	return args.Error(0)
}

func (m *MockObjectStore) AbortMultipartUpload(ctx context.Context, storageKey, uploadID string) error {
	args := m.Called(ctx, storageKey, uploadID)
	return args.Error(0)
}

func (m *MockObjectStore) ListParts(ctx context.Context, storageKey, uploadID string) ([]port.StoragePart, error) {
	args := m.Called(ctx, storageKey, uploadID)
	return args.Get(0).([]port.StoragePart), args.Error(1)
}

func (m *MockObjectStore) StatObject(ctx context.Context, storageKey string) (*port.ObjectInfo, error) {
	args := m.Called(ctx, storageKey)
	return args.Get(0).(*port.ObjectInfo), args.Error(1)
}

func (m *MockObjectStore) GetObject(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	args := m.Called(ctx, storageKey)
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockChunkStorage is a mock implementation of port.ChunkStorage
type MockChunkStorage struct {
	mock.Mock
}

// NewMockChunkStorage creates a new MockChunkStorage
func NewMockChunkStorage() *MockChunkStorage {
	return &MockChunkStorage{}
}

func (m *MockChunkStorage) Begin(ctx context.Context, storageKey string) (string, error) {
	args := m.Called(ctx, storageKey)
	return args.String(0), args.Error(1)
}

func (m *MockChunkStorage) Append(ctx context.Context, session *domain.UploadSession, expectedOffset int64, data []byte) (int64, error) {
	args := m.Called(ctx, session, expectedOffset, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChunkStorage) Position(ctx context.Context, session *domain.UploadSession) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChunkStorage) Finalize(ctx context.Context, session *domain.UploadSession) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChunkStorage) Abort(ctx context.Context, session *domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
