package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStorage persists the raw session token between runs. An empty
// loaded token means unauthenticated.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStorage keeps the token in a single file, the CLI's durable storage.
type FileStorage struct {
	Path string
}

func (s FileStorage) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s FileStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token+"\n"), 0o600)
}

func (s FileStorage) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStorage holds the token in memory. Web sessions use it because the
// browser cookie is the durable copy; tests use it for isolation.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStorage(token string) *MemoryStorage {
	return &MemoryStorage{token: token}
}

func (s *MemoryStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
