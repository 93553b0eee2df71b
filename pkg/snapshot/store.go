package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// ErrCorrupt is returned by Load when the snapshot file exists but cannot be
// parsed. The caller gets an empty snapshot alongside it and is expected to
// warn the operator and carry on; the next successful cycle rewrites the file.
var ErrCorrupt = errors.New("snapshot file is corrupt")

// Store persists the latest snapshot to a single JSON file.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore creates a store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger
func (st *Store) SetLogger(log *slog.Logger) {
	st.log = log
}

// Path returns the snapshot file location.
func (st *Store) Path() string {
	return st.path
}

// Load returns the last persisted snapshot. A missing file is a normal first
// run and yields an empty snapshot with no error. A corrupt file also yields
// an empty snapshot, but with an error wrapping ErrCorrupt so the condition
// is visible to the operator.
func (st *Store) Load() (Snapshot, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			st.log.Debug("no snapshot file, starting empty", slog.String("path", st.path))
			return New(), nil
		}
		return New(), fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return New(), fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if s == nil {
		s = New()
	}
	return s, nil
}

// Save persists the snapshot atomically: the serialized state is written to a
// temporary file and renamed over the previous one, so readers never observe
// a half-written snapshot.
func (st *Store) Save(s Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o750); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := atomic.WriteFile(st.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
