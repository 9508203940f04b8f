package chunked

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"chunkgate/internal/core/domain"
	"chunkgate/internal/core/port"
)

// Adapter maps a session's logical offset space onto the backend's multipart
// API. Object-storage backends reject parts below a minimum size (except the
// final one), so client chunks are accumulated in a per-session pending
// buffer and flushed as parts once a full part's worth of bytes arrived.
//
// Callers serialize mutating calls for a given session; each writer still
// carries its own mutex so position snapshots may be read concurrently with
// an in-flight append. Adapter.mu guards only the writer registry.
type Adapter struct {
	store       port.ObjectStore
	minPartSize int64
	logger      *slog.Logger

	mu      sync.Mutex
	writers map[string]*sessionWriter
}

// sessionWriter is the in-memory write state of one in-flight upload
type sessionWriter struct {
	mu        sync.Mutex
	uploadID  string
	committed int64
	pending   []byte
	parts     []port.StoragePart
	nextPart  int
}

// position requires w.mu to be held
func (w *sessionWriter) position() int64 {
	return w.committed + int64(len(w.pending))
}

// NewAdapter creates a chunked storage adapter over an object store
func NewAdapter(store port.ObjectStore, minPartSize int64, logger *slog.Logger) *Adapter {
	return &Adapter{
		store:       store,
		minPartSize: minPartSize,
		logger:      logger,
		writers:     make(map[string]*sessionWriter),
	}
}

// Begin opens the backend multipart upload for a new session
func (a *Adapter) Begin(ctx context.Context, storageKey string) (string, error) {
	uploadID, err := a.store.InitMultipartUpload(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("%w: init multipart for %s: %v", domain.ErrStorageUnavailable, storageKey, err)
	}

	a.mu.Lock()
	a.writers[storageKey] = &sessionWriter{uploadID: uploadID, nextPart: 1}
	a.mu.Unlock()

	return uploadID, nil
}

// writerFor returns the session's writer, rehydrating it from the backend's
// part list after a restart. Flushed parts survive a process restart; only
// the pending buffer is lost, so the committed offset is the sum of listed
// part sizes.
func (a *Adapter) writerFor(ctx context.Context, session *domain.UploadSession) (*sessionWriter, error) {
	a.mu.Lock()
	w, ok := a.writers[session.StorageKey]
	a.mu.Unlock()
	if ok {
		return w, nil
	}

	parts, err := a.store.ListParts(ctx, session.StorageKey, session.ProviderUploadID)
	if err != nil {
		return nil, fmt.Errorf("%w: list parts for %s: %v", domain.ErrStorageUnavailable, session.StorageKey, err)
	}

	w = &sessionWriter{uploadID: session.ProviderUploadID, nextPart: 1}
	for _, part := range parts {
		w.committed += part.Size
		if part.PartNumber >= w.nextPart {
			w.nextPart = part.PartNumber + 1
		}
	}
	w.parts = parts

	a.mu.Lock()
	if racing, ok := a.writers[session.StorageKey]; ok {
		// another caller rehydrated first; its writer may already hold
		// buffered bytes, so it wins
		a.mu.Unlock()
		return racing, nil
	}
	a.writers[session.StorageKey] = w
	a.mu.Unlock()

	a.logger.Info("rehydrated upload writer",
		slog.String("storageKey", session.StorageKey),
		slog.Int("parts", len(parts)),
		slog.Int64("committed", w.committed))

	return w, nil
}

// Append accepts data at expectedOffset and returns the new write position.
// The committed offset on the session advances only by flushed bytes.
func (a *Adapter) Append(ctx context.Context, session *domain.UploadSession, expectedOffset int64, data []byte) (int64, error) {
	w, err := a.writerFor(ctx, session)
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if expectedOffset != w.position() {
		return w.position(), fmt.Errorf("%w: expected %d, current position is %d",
			domain.ErrOffsetMismatch, expectedOffset, w.position())
	}

	if session.DeclaredSize > 0 && w.position()+int64(len(data)) > session.DeclaredSize {
		return w.position(), fmt.Errorf("%w: write to %d passes declared size %d",
			domain.ErrSizeExceeded, w.position()+int64(len(data)), session.DeclaredSize)
	}

	w.pending = append(w.pending, data...)

	if int64(len(w.pending)) >= a.minPartSize {
		if err := a.flush(ctx, session.StorageKey, w); err != nil {
			// The buffer is gone; the client resumes from the committed
			// offset after re-querying status.
			session.Offset = w.committed
			return w.committed, err
		}
	}

	session.Offset = w.committed
	return w.position(), nil
}

// flush uploads the entire pending buffer as one part and advances the
// committed offset. On failure the buffer is discarded so the write position
// falls back to the last durable offset. Requires w.mu to be held.
func (a *Adapter) flush(ctx context.Context, storageKey string, w *sessionWriter) error {
	size := int64(len(w.pending))
	part, err := a.store.PutObjectPart(ctx, storageKey, w.uploadID, w.nextPart, bytes.NewReader(w.pending), size)
	if err != nil {
		w.pending = nil
		return fmt.Errorf("%w: put part %d for %s: %v", domain.ErrStorageUnavailable, w.nextPart, storageKey, err)
	}

	w.parts = append(w.parts, part)
	w.nextPart++
	w.committed += size
	w.pending = nil
	return nil
}

// Position returns the session's current write position
func (a *Adapter) Position(ctx context.Context, session *domain.UploadSession) (int64, error) {
	if !session.CanAccept() {
		return session.Offset, nil
	}
	w, err := a.writerFor(ctx, session)
	if err != nil {
		return 0, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.position(), nil
}

// Finalize flushes the buffered remainder as the final part (exempt from the
// minimum-size rule) and completes the multipart upload.
func (a *Adapter) Finalize(ctx context.Context, session *domain.UploadSession) (int64, error) {
	w, err := a.writerFor(ctx, session)
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if session.DeclaredSize > 0 && w.position() != session.DeclaredSize {
		return 0, fmt.Errorf("%w: have %d of %d declared bytes",
			domain.ErrIncompleteUpload, w.position(), session.DeclaredSize)
	}

	// Zero-length uploads still need one (empty) part for the backend to
	// assemble an object from.
	if len(w.pending) > 0 || len(w.parts) == 0 {
		if err := a.flush(ctx, session.StorageKey, w); err != nil {
			return 0, err
		}
	}

	sort.Slice(w.parts, func(i, j int) bool {
		return w.parts[i].PartNumber < w.parts[j].PartNumber
	})

	if err := a.store.CompleteMultipartUpload(ctx, session.StorageKey, w.uploadID, w.parts); err != nil {
		return 0, fmt.Errorf("%w: complete multipart for %s: %v", domain.ErrStorageUnavailable, session.StorageKey, err)
	}

	size := w.committed
	session.Offset = size
	a.release(session.StorageKey)
	return size, nil
}

// Abort releases the in-flight multipart upload and discards buffered bytes.
// Best-effort against the backend: abandoned-multipart garbage collection is
// the fallback when the abort call itself fails.
func (a *Adapter) Abort(ctx context.Context, session *domain.UploadSession) error {
	a.mu.Lock()
	w, ok := a.writers[session.StorageKey]
	a.mu.Unlock()

	uploadID := session.ProviderUploadID
	if ok && w.uploadID != "" {
		uploadID = w.uploadID
	}
	a.release(session.StorageKey)

	if uploadID == "" {
		return nil
	}
	if err := a.store.AbortMultipartUpload(ctx, session.StorageKey, uploadID); err != nil {
		a.logger.Warn("abort multipart failed, leaving to backend GC",
			slog.String("storageKey", session.StorageKey),
			slog.String("uploadID", uploadID),
			slog.Any("error", err))
	}
	return nil
}

func (a *Adapter) release(storageKey string) {
	a.mu.Lock()
	delete(a.writers, storageKey)
	a.mu.Unlock()
}
