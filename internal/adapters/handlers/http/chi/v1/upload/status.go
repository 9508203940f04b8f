package upload

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"chunkgate/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// V1UploadStatusResponse is the response to a status query
type V1UploadStatusResponse struct {
	Offset       int64  `json:"offset"`
	DeclaredSize int64  `json:"declared_size"`
	State        string `json:"state"`
	Verification string `json:"verification"`
}

func (h *HandlerV1) GetUploadStatusV1(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	status, statusErr := h.uploadService.Status(r.Context(), handle)

	switch {
	case errors.Is(statusErr, domain.ErrInvalidHandle), errors.Is(statusErr, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case statusErr != nil:
		h.logger.Error("error fetching upload status", "handle", handle, "error", statusErr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	default:
		resp := V1UploadStatusResponse{
			Offset:       status.Offset,
			DeclaredSize: status.DeclaredSize,
			State:        string(status.State),
			Verification: string(status.Verification),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(UploadOffsetHeader, strconv.FormatInt(status.Offset, 10))
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
