package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file under the given name
	Save(name string, file io.Reader) error

	// Delete removes the file with the given name
	Delete(name string) error

	// URL returns the public URL for accessing the file
	URL(name string) string
}

// LocalStorage stores files in a directory on the local filesystem. Writes go
// through a temporary file and rename so a failed write never leaves a
// partial file behind.
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	err := os.MkdirAll(root, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{root: root, baseURL: baseURL}, nil
}

func (s *LocalStorage) Save(name string, file io.Reader) error {
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = io.Copy(tmp, file)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	err = os.Rename(tmp.Name(), filepath.Join(s.root, name))
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

func (s *LocalStorage) Delete(name string) error {
	return os.Remove(filepath.Join(s.root, name))
}

func (s *LocalStorage) URL(name string) string {
	return path.Join(s.baseURL, name)
}

// Exists reports whether a file with the given name is stored.
func (s *LocalStorage) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.root, name))
	return err == nil
}
