package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileStore keeps every key in one YAML document on disk.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// DefaultFilePath returns the default state file location.
func DefaultFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".pointledger.yml"), nil
}

// OpenFile loads the document at path. A missing file starts empty; an
// unreadable document is logged and also starts empty, so every key falls
// back to its default.
func OpenFile(path string, log *zap.Logger) (*FileStore, error) {
	if path == "" {
		p, err := DefaultFilePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	s := &FileStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("could not read file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		log.Warn("state file is not valid YAML, starting empty", zap.String("path", path), zap.Error(err))
		s.values = make(map[string]string)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set updates key and rewrites the whole document through a temp file and rename.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) flush() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
