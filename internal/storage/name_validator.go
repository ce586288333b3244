package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"go-location-share/pkg/apierror"
)

// NameValidator guards a flat directory: a valid name is a single path
// element that cannot escape or address anything but a regular entry of root.
type NameValidator struct {
	rootAbs string
}

func NewNameValidator(root string) (*NameValidator, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	return &NameValidator{rootAbs: rootAbs}, nil
}

func (v *NameValidator) RootAbs() string {
	return v.rootAbs
}

// ValidateName performs no filesystem access.
func ValidateName(name string) error {
	if name == "" {
		return apierror.BadRequest("invalid media name", "name is empty")
	}

	if strings.ContainsAny(name, `/\`) {
		return apierror.BadRequest("invalid media name", "path separators are not allowed")
	}

	if strings.Contains(name, "..") {
		return apierror.BadRequest("invalid media name", "parent directory references are not allowed")
	}

	if hasControlCharacters(name) {
		return apierror.BadRequest("invalid media name", "control characters are not allowed")
	}

	// Dot-prefixed entries are in-flight temp files.
	if strings.HasPrefix(name, ".") {
		return apierror.BadRequest("invalid media name", "hidden names are not allowed")
	}

	return nil
}

func (v *NameValidator) ResolveName(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	resolved := filepath.Join(v.rootAbs, name)
	if filepath.Dir(resolved) != v.rootAbs {
		return "", apierror.BadRequest("invalid media name", "name resolves outside the upload directory")
	}

	return resolved, nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}
