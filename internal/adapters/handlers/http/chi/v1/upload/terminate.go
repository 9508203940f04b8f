package upload

import (
	"errors"
	"net/http"

	"chunkgate/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

func (h *HandlerV1) TerminateUploadV1(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	terminateErr := h.uploadService.Terminate(r.Context(), handle)

	switch {
	case errors.Is(terminateErr, domain.ErrInvalidHandle), errors.Is(terminateErr, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case errors.Is(terminateErr, domain.ErrInvalidState):
		http.Error(w, terminateErr.Error(), http.StatusGone)
		return
	case errors.Is(terminateErr, domain.ErrStorageUnavailable):
		h.logger.Error("storage unavailable terminating upload", "handle", handle, "error", terminateErr)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	case terminateErr != nil:
		h.logger.Error("error terminating upload", "handle", handle, "error", terminateErr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
