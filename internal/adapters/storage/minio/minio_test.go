package minio_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"chunkgate/internal/adapters/storage/minio"
	"chunkgate/internal/config"
	"chunkgate/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testAccessKey = "minioadmin"
	testSecretKey = "minioadmin"
	testBucket    = "test-bucket"

	minPartSize = 5 * 1024 * 1024
)

func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     testAccessKey,
			"MINIO_ROOT_PASSWORD": testSecretKey,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000"),
	}
	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := minioContainer.Host(ctx)
	require.NoError(t, err)

	port, err := minioContainer.MappedPort(ctx, "9000")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("%s:%s", host, port.Port())

	cleanup := func() {
		if err := minioContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	time.Sleep(500 * time.Millisecond) // wait for container to be up
	return endpoint, cleanup
}

func createAdapter(t *testing.T, endpoint string, ctx context.Context) *minio.Adapter {
	t.Helper()
	cfg := config.MinioConfig{
		Endpoint:   endpoint,
		AccessKey:  testAccessKey,
		SecretKey:  testSecretKey,
		BucketName: testBucket,
		UseSSL:     false,
	}

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	adapter, err := minio.NewAdapter(ctx, cfg, discardLogger)

	require.NoError(t, err)
	require.NotNil(t, adapter)

	return adapter
}

func putPart(t *testing.T, ctx context.Context, adapter *minio.Adapter, storageKey, uploadID string, number int, content string) port.StoragePart {
	t.Helper()
	part, err := adapter.PutObjectPart(ctx, storageKey, uploadID, number, strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	require.Equal(t, number, part.PartNumber)
	require.NotEmpty(t, part.ETag)
	return part
}

func TestMultipartUpload(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx)

	storageKey := "uploads/multipart-upload.bin"

	partsData := []struct {
		number  int
		content string
	}{
		{number: 1, content: strings.Repeat("a", minPartSize)},
		{number: 2, content: strings.Repeat("b", minPartSize)},
		{number: 3, content: "final small part"},
	}

	// Act
	uploadID, err := adapter.InitMultipartUpload(ctx, storageKey)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, uploadID)

	// Act
	parts := make([]port.StoragePart, 0, len(partsData))
	for _, p := range partsData {
		parts = append(parts, putPart(t, ctx, adapter, storageKey, uploadID, p.number, p.content))
	}

	err = adapter.CompleteMultipartUpload(ctx, storageKey, uploadID, parts)

	// Assert
	require.NoError(t, err)

	object, err := adapter.GetObject(ctx, storageKey)
	require.NoError(t, err)
	defer object.Close()
	buf := new(strings.Builder)
	_, err = io.Copy(buf, object)
	require.NoError(t, err)
	assert.Equal(t, (minPartSize*2)+len("final small part"), buf.Len())
	assert.True(t, strings.HasSuffix(buf.String(), "final small part"))
}

func TestListParts(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx)

	storageKey := "uploads/list-parts.bin"
	uploadID, err := adapter.InitMultipartUpload(ctx, storageKey)
	require.NoError(t, err)

	expectedSizes := map[int]int64{}
	for i := 1; i <= 3; i++ {
		content := strings.Repeat(fmt.Sprintf("%d", i), minPartSize)
		expectedSizes[i] = int64(len(content))
		putPart(t, ctx, adapter, storageKey, uploadID, i, content)
	}

	// Act
	parts, err := adapter.ListParts(ctx, storageKey, uploadID)

	// Assert
	require.NoError(t, err)
	require.Len(t, parts, 3)
	for _, part := range parts {
		assert.Equal(t, expectedSizes[part.PartNumber], part.Size)
		assert.NotEmpty(t, part.ETag)
	}
}

func TestListParts_UnknownUpload(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx)

	// Act
	parts, err := adapter.ListParts(ctx, "uploads/nope.bin", "invalid-id")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, parts)
}

func TestAbortMultipartUpload(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx)

	storageKey := "uploads/aborted.bin"
	uploadID, err := adapter.InitMultipartUpload(ctx, storageKey)
	require.NoError(t, err)

	putPart(t, ctx, adapter, storageKey, uploadID, 1, strings.Repeat("x", minPartSize))

	// Act
	err = adapter.AbortMultipartUpload(ctx, storageKey, uploadID)

	// Assert
	require.NoError(t, err)

	_, err = adapter.ListParts(ctx, storageKey, uploadID)
	assert.Error(t, err, "parts should be gone after abort")
}

func TestStatObject(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx)

	storageKey := "uploads/stat-me.bin"
	content := "twelve bytes"

	uploadID, err := adapter.InitMultipartUpload(ctx, storageKey)
	require.NoError(t, err)
	part := putPart(t, ctx, adapter, storageKey, uploadID, 1, content)
	require.NoError(t, adapter.CompleteMultipartUpload(ctx, storageKey, uploadID, []port.StoragePart{part}))

	// Act
	info, err := adapter.StatObject(ctx, storageKey)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.NotEmpty(t, info.ETag)
}

func TestStatObject_NonExistent(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx)

	// Act
	info, err := adapter.StatObject(ctx, "uploads/does-not-exist.bin")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, info)
}

func TestCompleteMultipartUpload_Error_InvalidPart(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx)

	storageKey := "uploads/invalid-part.bin"
	uploadID, err := adapter.InitMultipartUpload(ctx, storageKey)
	require.NoError(t, err)

	badParts := []port.StoragePart{
		{PartNumber: 1, ETag: "invalid-etag", Size: 10},
	}

	// Act
	err = adapter.CompleteMultipartUpload(ctx, storageKey, uploadID, badParts)

	// Assert
	assert.Error(t, err)
}
