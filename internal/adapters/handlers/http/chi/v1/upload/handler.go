package upload

import (
	"log/slog"

	"chunkgate/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 upload routes
type HandlerV1 struct {
	uploadService port.UploadService
	logger        *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(service port.UploadService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		uploadService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateUploadV1)
	router.Patch("/{handle}", h.AppendUploadV1)
	router.Get("/{handle}", h.GetUploadStatusV1)
	router.Delete("/{handle}", h.TerminateUploadV1)

	return router
}
