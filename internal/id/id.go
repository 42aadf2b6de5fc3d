package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// shortLen is the number of hex digits shown for a reference.
const shortLen = 8

// NewRef returns a fresh transaction reference shared by both legs of a pair.
func NewRef() string {
	return uuid.NewString()
}

// ShortRef returns the first hex digits of a reference, for display.
// "6f1c2a9e-..." -> "6f1c2a9e"
func ShortRef(ref string) string {
	if len(ref) <= shortLen {
		return ref
	}
	return ref[:shortLen]
}

// ParseRef validates a reference read back from storage or input.
// Empty references are valid: records written before references existed have none.
func ParseRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	u, err := uuid.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference %q: %w", ref, err)
	}
	return u.String(), nil
}
