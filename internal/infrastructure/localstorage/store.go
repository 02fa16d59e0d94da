package localstorage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"vendeya/pkg/errors"
)

// Slot names, matching the browser localStorage keys the web client used.
const (
	KeyUser  = "usuario"
	KeyToken = "token"
	KeyTheme = "theme"
)

// Store is a durable string key-value store backed by a single JSON file.
// It holds the serialized identity, the bearer token and the theme
// preference across client restarts.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Internal("Failed to create state directory", err)
	}

	s := &Store{
		path: filepath.Join(dir, "state.json"),
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Internal("Failed to read state file", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			// Corrupt state file: start over rather than refuse to boot.
			s.data = make(map[string]string)
		}
	}
	return s, nil
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flush()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return s.flush()
}

// flush writes the whole map atomically: temp file then rename, so an
// interrupted write never leaves a truncated state file.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Internal("Failed to encode state", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Internal("Failed to write state file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Internal("Failed to replace state file", err)
	}
	return nil
}
