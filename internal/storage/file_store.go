package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore saves generated export files to disk under a base directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Save writes an export file and returns the name it was stored under.
func (f *FileStore) Save(filename string, data []byte) (string, error) {
	name := safeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	target := filepath.Join(f.basePath, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return name, nil
}

// Path resolves a stored filename to its on-disk location. It rejects
// names that escape the base directory.
func (f *FileStore) Path(filename string) (string, bool) {
	name := safeFilename(filename)
	if name == "" || name != filename {
		return "", false
	}
	target := filepath.Join(f.basePath, name)
	if _, err := os.Stat(target); err != nil {
		return "", false
	}
	return target, true
}

func safeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return ""
	}
	return name
}
