package upload_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"

	"chunkgate/internal/adapters/handlers/http/chi"
	upload2 "chunkgate/internal/adapters/handlers/http/chi/v1/upload"
	"chunkgate/internal/core/domain"
	"chunkgate/internal/core/service/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAppendUploadV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handle := domain.EncodeHandle("uploads/abc-clip.mp4")

	t.Run("success - bytes accepted", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Append", mock.Anything, handle, int64(0), []byte("hello")).
			Return(int64(5), nil)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("hello")))
		req.Header.Set(upload2.UploadOffsetHeader, "0")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get(upload2.UploadOffsetHeader))

		var resp upload2.V1AppendUploadResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.Offset)
		mockService.AssertExpectations(t)
	})

	t.Run("error - offset mismatch returns current position", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Append", mock.Anything, handle, int64(0), []byte("hello")).
			Return(int64(5), domain.ErrOffsetMismatch)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("hello")))
		req.Header.Set(upload2.UploadOffsetHeader, "0")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusConflict, w.Code)
		assert.Equal(t, "5", w.Header().Get(upload2.UploadOffsetHeader))
		mockService.AssertExpectations(t)
	})

	t.Run("error - unknown upload", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Append", mock.Anything, handle, int64(0), mock.Anything).
			Return(int64(0), domain.ErrUploadNotFound)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("data")))
		req.Header.Set(upload2.UploadOffsetHeader, "0")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - terminal session", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Append", mock.Anything, handle, int64(0), mock.Anything).
			Return(int64(0), domain.ErrInvalidState)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("data")))
		req.Header.Set(upload2.UploadOffsetHeader, "0")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusGone, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - write past declared size", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Append", mock.Anything, handle, int64(0), mock.Anything).
			Return(int64(0), domain.ErrSizeExceeded)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("data")))
		req.Header.Set(upload2.UploadOffsetHeader, "0")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - storage unavailable", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Append", mock.Anything, handle, int64(5), mock.Anything).
			Return(int64(5), domain.ErrStorageUnavailable)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("data")))
		req.Header.Set(upload2.UploadOffsetHeader, "5")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - missing Upload-Offset header", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("data")))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - negative Upload-Offset header", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("data")))
		req.Header.Set(upload2.UploadOffsetHeader, "-1")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - service internal error", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Append", mock.Anything, handle, int64(0), mock.Anything).
			Return(int64(0), errors.New("db crash"))

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPatch, "/api/v1/upload/"+handle, bytes.NewReader([]byte("data")))
		req.Header.Set(upload2.UploadOffsetHeader, "0")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusInternalServerError, w.Code)
		mockService.AssertExpectations(t)
	})
}
