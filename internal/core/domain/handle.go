package domain

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

// External upload handles are base64url-encoded storage keys. The encoding
// is an exact bijection so the handle issued at creation round-trips back to
// the same key on every later request, without exposing the key layout.

// EncodeHandle encodes a storage key into an external upload handle
func EncodeHandle(storageKey string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(storageKey))
}

// DecodeHandle decodes an external upload handle back into a storage key.
// Handles are untrusted input: anything malformed fails with ErrInvalidHandle.
func DecodeHandle(handle string) (string, error) {
	if handle == "" {
		return "", fmt.Errorf("%w: empty handle", ErrInvalidHandle)
	}
	raw, err := base64.RawURLEncoding.DecodeString(handle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHandle, err)
	}
	if len(raw) == 0 || !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: not a valid key", ErrInvalidHandle)
	}
	return string(raw), nil
}
