package upload_test

import (
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
)

func TestTerminateUploadV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handle := domain.EncodeHandle("uploads/abc-clip.mp4")

	t.Run("success - terminates and returns no content", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Terminate", mock.Anything, handle).Return(nil)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodDelete, "/api/v1/upload/"+handle, nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("error - unknown upload", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Terminate", mock.Anything, handle).Return(domain.ErrUploadNotFound)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodDelete, "/api/v1/upload/"+handle, nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - completed upload cannot be terminated", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Terminate", mock.Anything, handle).Return(domain.ErrInvalidState)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodDelete, "/api/v1/upload/"+handle, nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusGone, w.Code)
		mockService.AssertExpectations(t)
	})
}
