package upload

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"chunkgate/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// UploadOffsetHeader carries the client's view of the next write position.
const UploadOffsetHeader = "Upload-Offset"

// V1AppendUploadResponse is the response to an append
type V1AppendUploadResponse struct {
	Offset int64 `json:"offset"`
}

func (h *HandlerV1) AppendUploadV1(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	offsetHeader := r.Header.Get(UploadOffsetHeader)
	expectedOffset, err := strconv.ParseInt(offsetHeader, 10, 64)
	if err != nil || expectedOffset < 0 {
		http.Error(w, "missing or invalid Upload-Offset header", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("error reading append body", "error", err)
		http.Error(w, "error reading request body", http.StatusBadRequest)
		return
	}

	newOffset, appendErr := h.uploadService.Append(r.Context(), handle, expectedOffset, data)

	switch {
	case errors.Is(appendErr, domain.ErrOffsetMismatch):
		h.logger.Warn("upload offset mismatch", "handle", handle, "expected_offset", expectedOffset)
		w.Header().Set(UploadOffsetHeader, strconv.FormatInt(newOffset, 10))
		http.Error(w, appendErr.Error(), http.StatusConflict)
		return
	case errors.Is(appendErr, domain.ErrInvalidHandle), errors.Is(appendErr, domain.ErrUploadNotFound):
		http.Error(w, "upload not found", http.StatusNotFound)
		return
	case errors.Is(appendErr, domain.ErrInvalidState):
		http.Error(w, appendErr.Error(), http.StatusGone)
		return
	case errors.Is(appendErr, domain.ErrSizeExceeded), errors.Is(appendErr, domain.ErrIncompleteUpload):
		http.Error(w, appendErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(appendErr, domain.ErrStorageUnavailable):
		h.logger.Error("storage unavailable appending to upload", "handle", handle, "error", appendErr)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	case appendErr != nil:
		h.logger.Error("error appending to upload", "handle", handle, "error", appendErr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	default:
		resp := V1AppendUploadResponse{Offset: newOffset}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(UploadOffsetHeader, strconv.FormatInt(newOffset, 10))
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
