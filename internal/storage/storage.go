package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go-location-share/internal/model"
)

const tempPattern = ".upload-*"

// Storage keeps uploaded media as flat files in a single directory.
type Storage struct {
	validator *NameValidator
}

func New(root string) (*Storage, error) {
	validator, err := NewNameValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &Storage{validator: validator}, nil
}

func (s *Storage) RootAbs() string {
	return s.validator.RootAbs()
}

// WriteFile stores data under name through a temp file and a rename, so readers
// never observe a partially written object. A crash can leave a dot-prefixed
// temp file behind; it is never served.
func (s *Storage) WriteFile(name string, data []byte) error {
	target, err := s.validator.ResolveName(name)
	if err != nil {
		return err
	}

	root := s.validator.RootAbs()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create upload directory: %w", err)
	}

	tmp, err := os.CreateTemp(root, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %q: %w", name, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %q: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", name, err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod %q: %w", name, err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("rename into %q: %w", name, err)
	}
	committed = true

	return nil
}

func (s *Storage) ReadFile(name string) ([]byte, error) {
	resolved, err := s.validator.ResolveName(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", model.ErrMediaNotFound, name)
		}
		return nil, fmt.Errorf("stat %q: %w", name, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", model.ErrMediaNotFound, name)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}

	return data, nil
}

// TempFiles lists leftover in-flight uploads, for housekeeping.
func (s *Storage) TempFiles() ([]string, error) {
	return filepath.Glob(filepath.Join(s.validator.RootAbs(), tempPattern))
}
