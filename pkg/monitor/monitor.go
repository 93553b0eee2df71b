// Package monitor drives the poll cycle that keeps the bucket snapshot and
// the changelog up to date.
//
// Each cycle walks a fixed sequence: list the full bucket, diff the listing
// against the previous snapshot, append the resulting records to the
// changelog, persist the new snapshot, then publish it in memory. A failure
// at any step abandons the cycle at that boundary and leaves both the
// in-memory and the persisted snapshot untouched, so the next cycle
// recomputes the same diff. Changelog delivery is therefore at-least-once
// across crashes, never lossy.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mfco/spacewatch/pkg/changelog"
	"github.com/mfco/spacewatch/pkg/diff"
	"github.com/mfco/spacewatch/pkg/dto"
	"github.com/mfco/spacewatch/pkg/snapshot"
)

// Lister retrieves the complete current object listing of the bucket.
type Lister interface {
	ListAllObjects(ctx context.Context) ([]dto.S3Object, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(ctx context.Context) ([]dto.S3Object, error)

// ListAllObjects calls f.
func (f ListerFunc) ListAllObjects(ctx context.Context) ([]dto.S3Object, error) {
	return f(ctx)
}

// Store persists the latest snapshot between restarts.
type Store interface {
	Load() (snapshot.Snapshot, error)
	Save(snapshot.Snapshot) error
}

// Appender appends change records to the durable changelog.
type Appender interface {
	Append([]changelog.Record) error
}

// Service owns the current snapshot and runs poll cycles. Exactly one cycle
// is ever in flight; the scheduler enforces that. Readers access the
// published snapshot only through Current.
type Service struct {
	lister   Lister
	store    Store
	appender Appender
	log      *slog.Logger
	now      func() time.Time

	current atomic.Pointer[snapshot.Snapshot]

	status status
}

// NewService creates a monitor. Call Init before the first cycle to load the
// persisted snapshot.
func NewService(lister Lister, store Store, appender Appender) *Service {
	s := &Service{
		lister:   lister,
		store:    store,
		appender: appender,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	empty := snapshot.New()
	s.current.Store(&empty)
	return s
}

// SetLogger sets the logger
func (s *Service) SetLogger(log *slog.Logger) {
	s.log = log
}

// Current returns the latest published snapshot. The returned snapshot is
// immutable; callers must not modify it.
func (s *Service) Current() snapshot.Snapshot {
	return *s.current.Load()
}

// Init loads the persisted snapshot. A corrupt snapshot file is downgraded
// to a warning and an empty starting snapshot: the following cycle will
// report the whole bucket as added, which is the documented cold-start cost,
// not data loss.
func (s *Service) Init() error {
	loaded, err := s.store.Load()
	if err != nil {
		if errors.Is(err, snapshot.ErrCorrupt) {
			s.log.Warn("persisted snapshot is corrupt, starting from an empty snapshot; the next cycle will re-report all objects as added",
				slog.String("error", err.Error()))
			s.publish(snapshot.New())
			return nil
		}
		return fmt.Errorf("monitor init: %w", err)
	}
	s.publish(loaded)
	s.log.Info("snapshot loaded", slog.Int("objects", len(loaded)))
	return nil
}

// RunCycle executes one poll cycle. Errors are returned for the caller to
// log; they never require a restart, the next tick simply retries.
func (s *Service) RunCycle(ctx context.Context) error {
	started := s.now()
	s.status.cycleStarted(started)

	objects, err := s.lister.ListAllObjects(ctx)
	if err != nil {
		s.status.cycleFailed(err)
		return fmt.Errorf("listing failed, cycle abandoned: %w", err)
	}

	current := snapshot.FromObjects(objects)
	previous := s.Current()
	records := diff.Compute(previous, current, started.UTC())

	if len(records) == 0 {
		// Nothing changed: no changelog append, no snapshot write.
		s.publish(current)
		s.status.cycleCompleted(len(current), nil)
		s.log.Debug("poll cycle completed, no changes", slog.Int("objects", len(current)))
		return nil
	}

	// Changelog first, snapshot second: a crash in between re-detects the
	// same changes on restart instead of silently dropping them.
	if err := s.appender.Append(records); err != nil {
		s.status.cycleFailed(err)
		return fmt.Errorf("changelog append failed, cycle abandoned: %w", err)
	}
	if err := s.store.Save(current); err != nil {
		s.status.cycleFailed(err)
		return fmt.Errorf("snapshot save failed, cycle abandoned: %w", err)
	}
	s.publish(current)
	s.status.cycleCompleted(len(current), records)

	s.log.Info("poll cycle completed",
		slog.Int("objects", len(current)),
		slog.Int("changes", len(records)))
	return nil
}

func (s *Service) publish(snap snapshot.Snapshot) {
	s.current.Store(&snap)
}
