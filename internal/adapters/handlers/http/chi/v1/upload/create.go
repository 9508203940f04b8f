package upload

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"chunkgate/internal/core/domain"
)

// V1CreateUploadRequest is the request to open an upload session
type V1CreateUploadRequest struct {
	Size     int64             `json:"size"`
	Metadata map[string]string `json:"metadata"`
}

// V1CreateUploadResponse is the response to open an upload session
type V1CreateUploadResponse struct {
	Handle       string `json:"handle"`
	Location     string `json:"location"`
	Offset       int64  `json:"offset"`
	DeclaredSize int64  `json:"declared_size"`
	State        string `json:"state"`
}

func (h *HandlerV1) CreateUploadV1(w http.ResponseWriter, r *http.Request) {
	var req V1CreateUploadRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding create upload request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, createErr := h.uploadService.Create(r.Context(), req.Size, req.Metadata)

	switch {
	case errors.Is(createErr, domain.ErrInvalidMetadata), errors.Is(createErr, domain.ErrSizeExceeded):
		h.logger.Error("invalid create upload request", "error", createErr)
		http.Error(w, createErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(createErr, domain.ErrStorageUnavailable):
		h.logger.Error("storage unavailable creating upload", "error", createErr)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	case createErr != nil:
		h.logger.Error("error creating upload", "error", createErr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	default:
		location := resumeURL(r, result.Handle)

		resp := V1CreateUploadResponse{
			Handle:       result.Handle,
			Location:     location,
			Offset:       result.Session.Offset,
			DeclaredSize: result.Session.DeclaredSize,
			State:        string(result.Session.State),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

// resumeURL rebuilds the absolute URL clients use for PATCH/GET/DELETE on
// this session, honoring X-Forwarded-Proto when behind a proxy.
func resumeURL(r *http.Request, handle string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s/api/v1/upload/%s", scheme, r.Host, handle)
}
