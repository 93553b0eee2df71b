// Package urimap maintains the permanent URI map: stable short identifiers
// that keep resolving to the same object key, unlike presigned URLs which
// expire. The map is persisted as a single JSON file (id -> key) and
// published atomically on every change.
package urimap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// Service owns the id -> key mapping.
type Service struct {
	path string
	log  *slog.Logger

	mu    sync.Mutex
	ids   map[string]string // id -> key
	byKey map[string]string // key -> id, reverse index
}

// URLEntry is one row of the exported full-URL map.
type URLEntry struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// NewService creates a service persisting to the given file path.
func NewService(path string) *Service {
	return &Service{
		path:  path,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:   map[string]string{},
		byKey: map[string]string{},
	}
}

// SetLogger sets the logger
func (s *Service) SetLogger(log *slog.Logger) {
	s.log = log
}

// Load reads the persisted map. A missing file is an empty map.
func (s *Service) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load uri map: %w", err)
	}

	var ids map[string]string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("load uri map: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = ids
	s.byKey = make(map[string]string, len(ids))
	for id, key := range ids {
		s.byKey[key] = id
	}
	s.log.Debug("uri map loaded", slog.Int("entries", len(ids)))
	return nil
}

// GetOrCreate returns the permanent id for the given object key, minting and
// persisting a new one if the key has none yet.
func (s *Service) GetOrCreate(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byKey[key]; ok {
		return id, nil
	}

	id := uuid.NewString()
	s.ids[id] = key
	s.byKey[key] = id
	if err := s.save(); err != nil {
		delete(s.ids, id)
		delete(s.byKey, key)
		return "", err
	}
	return id, nil
}

// Lookup resolves a permanent id to its object key.
func (s *Service) Lookup(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.ids[id]
	return key, ok
}

// Len returns the number of mapped keys.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// ExportFullURLs returns the map expanded to full URLs under baseURL, the
// shape published for external consumers.
func (s *Service) ExportFullURLs(baseURL string) map[string]URLEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]URLEntry, len(s.ids))
	for id, key := range s.ids {
		result[id] = URLEntry{
			URL:  baseURL + id,
			Path: key,
		}
	}
	return result
}

// save persists the map atomically. Caller holds the lock.
func (s *Service) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("save uri map: %w", err)
	}
	data, err := json.Marshal(s.ids)
	if err != nil {
		return fmt.Errorf("save uri map: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save uri map: %w", err)
	}
	return nil
}
