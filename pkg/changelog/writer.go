package changelog

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer appends change records to the log file. Each record is written as
// one self-contained JSON line and synced to disk before the next record is
// written, so a crash mid-batch leaves a clean prefix of the batch on disk
// and never a truncated entry.
type Writer struct {
	path string
	log  *slog.Logger
}

// NewWriter creates a writer appending to the given log file path.
func NewWriter(path string) *Writer {
	return &Writer{
		path: path,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger
func (w *Writer) SetLogger(log *slog.Logger) {
	w.log = log
}

// Path returns the changelog file location.
func (w *Writer) Path() string {
	return w.path
}

// Append writes the records to the end of the log in the given order.
// An empty batch is a no-op and does not touch the file.
func (w *Writer) Append(records []Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o750); err != nil {
		return fmt.Errorf("append changelog: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("append changelog: %w", err)
	}
	defer f.Close()

	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("append changelog: marshal record for %q: %w", r.Key, err)
		}
		line = append(line, '\n')
		if _, err := f.Write(line); err != nil {
			return fmt.Errorf("append changelog: write record for %q: %w", r.Key, err)
		}
		if err := f.Sync(); err != nil {
			return fmt.Errorf("append changelog: sync record for %q: %w", r.Key, err)
		}
	}

	w.log.Info("recorded changes",
		slog.Int("count", len(records)),
		slog.String("path", w.path))
	return nil
}
