package upload

import (
	"fmt"
	"sort"
	"strings"

	"chunkgate/internal/core/domain"
)

// validateMetadata checks the client-supplied key/value map against the
// configured schema. Required keys must be present and non-empty; unknown
// keys are rejected when the schema says so. Failures name the offending
// fields and are never coerced into defaults.
func (s *uploadService) validateMetadata(raw map[string]string) (domain.Metadata, error) {
	var missing []string
	for _, key := range s.cfg.RequiredMetadata {
		if strings.TrimSpace(raw[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing or empty: %s", domain.ErrInvalidMetadata, strings.Join(missing, ", "))
	}

	if !s.cfg.AllowUnknownMetadata {
		required := make(map[string]bool, len(s.cfg.RequiredMetadata))
		for _, key := range s.cfg.RequiredMetadata {
			required[key] = true
		}

		var unknown []string
		for key := range raw {
			if !required[key] {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return nil, fmt.Errorf("%w: unknown keys: %s", domain.ErrInvalidMetadata, strings.Join(unknown, ", "))
		}
	}

	validated := make(domain.Metadata, len(raw))
	for key, value := range raw {
		validated[key] = value
	}
	return validated, nil
}
