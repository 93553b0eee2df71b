package monitor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfco/spacewatch/pkg/changelog"
	"github.com/mfco/spacewatch/pkg/dto"
	"github.com/mfco/spacewatch/pkg/monitor"
	"github.com/mfco/spacewatch/pkg/snapshot"
)

type fakeStore struct {
	snapshot snapshot.Snapshot
	loadErr  error
	saveErr  error
	saves    int
}

func (f *fakeStore) Load() (snapshot.Snapshot, error) {
	if f.loadErr != nil {
		return snapshot.New(), f.loadErr
	}
	if f.snapshot == nil {
		return snapshot.New(), nil
	}
	return f.snapshot, nil
}

func (f *fakeStore) Save(s snapshot.Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshot = s
	f.saves++
	return nil
}

type spyAppender struct {
	batches [][]changelog.Record
	err     error
}

func (a *spyAppender) Append(records []changelog.Record) error {
	if a.err != nil {
		return a.err
	}
	a.batches = append(a.batches, records)
	return nil
}

func fixedListing(objects ...dto.S3Object) monitor.ListerFunc {
	return func(context.Context) ([]dto.S3Object, error) {
		return objects, nil
	}
}

func obj(key string, size int64) dto.S3Object {
	return dto.S3Object{
		Key:          key,
		Size:         size,
		LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// actionKeys flattens a batch to comparable action:key strings, ignoring the
// per-cycle detection timestamps.
func actionKeys(records []changelog.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, fmt.Sprintf("%s:%s", r.Action, r.Key))
	}
	return out
}

func TestRunCycle_FirstCycleReportsEverythingAdded(t *testing.T) {
	store := &fakeStore{}
	appender := &spyAppender{}
	svc := monitor.NewService(fixedListing(obj("a", 10), obj("b", 5)), store, appender)
	require.NoError(t, svc.Init())

	require.NoError(t, svc.RunCycle(context.Background()))

	require.Len(t, appender.batches, 1)
	assert.Equal(t, []string{"added:a", "added:b"}, actionKeys(appender.batches[0]))
	assert.Equal(t, 1, store.saves)
	assert.Len(t, svc.Current(), 2)
}

func TestRunCycle_ListingFailureLeavesSnapshotUnchanged(t *testing.T) {
	failures := 0
	lister := monitor.ListerFunc(func(context.Context) ([]dto.S3Object, error) {
		if failures < 2 {
			failures++
			return nil, errors.New("connection reset")
		}
		return []dto.S3Object{obj("a", 10)}, nil
	})
	store := &fakeStore{}
	appender := &spyAppender{}
	svc := monitor.NewService(lister, store, appender)
	require.NoError(t, svc.Init())

	// Two failing ticks: no writes, snapshot untouched, failures counted.
	require.Error(t, svc.RunCycle(context.Background()))
	require.Error(t, svc.RunCycle(context.Background()))
	assert.Empty(t, svc.Current())
	assert.Empty(t, appender.batches)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, 2, svc.Status().ConsecutiveFailures)

	// Third tick completes normally.
	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Len(t, svc.Current(), 1)
	assert.Equal(t, 0, svc.Status().ConsecutiveFailures)
	require.Len(t, appender.batches, 1)
	assert.Equal(t, []string{"added:a"}, actionKeys(appender.batches[0]))
}

func TestRunCycle_NoOpCycleWritesNothing(t *testing.T) {
	store := &fakeStore{}
	appender := &spyAppender{}
	svc := monitor.NewService(fixedListing(obj("a", 10)), store, appender)
	require.NoError(t, svc.Init())

	require.NoError(t, svc.RunCycle(context.Background()))
	require.NoError(t, svc.RunCycle(context.Background()))

	assert.Len(t, appender.batches, 1, "unchanged listing must not append to the changelog")
	assert.Equal(t, 1, store.saves, "unchanged listing must not rewrite the snapshot")
}

func TestRunCycle_AppendFailureRecomputesSameDiff(t *testing.T) {
	store := &fakeStore{}
	appender := &spyAppender{err: errors.New("disk full")}
	svc := monitor.NewService(fixedListing(obj("a", 10), obj("b", 5)), store, appender)
	require.NoError(t, svc.Init())

	require.Error(t, svc.RunCycle(context.Background()))
	assert.Empty(t, svc.Current(), "failed cycle must not publish the new snapshot")
	assert.Equal(t, 0, store.saves)

	appender.err = nil
	require.NoError(t, svc.RunCycle(context.Background()))
	require.Len(t, appender.batches, 1)
	assert.Equal(t, []string{"added:a", "added:b"}, actionKeys(appender.batches[0]))
}

func TestRunCycle_SaveFailureRedeliversRecords(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("permission denied")}
	appender := &spyAppender{}
	svc := monitor.NewService(fixedListing(obj("a", 10)), store, appender)
	require.NoError(t, svc.Init())

	// Records reach the changelog but the snapshot save fails: the cycle is
	// abandoned and the next one re-appends the same records.
	require.Error(t, svc.RunCycle(context.Background()))
	assert.Empty(t, svc.Current())

	store.saveErr = nil
	require.NoError(t, svc.RunCycle(context.Background()))

	// At-least-once delivery: both batches describe the same change.
	require.Len(t, appender.batches, 2)
	assert.Equal(t, actionKeys(appender.batches[0]), actionKeys(appender.batches[1]))
	assert.Equal(t, 1, store.saves)
}

func TestInit_CorruptSnapshotFallsBackToEmpty(t *testing.T) {
	store := &fakeStore{loadErr: fmt.Errorf("%w: unexpected end of JSON input", snapshot.ErrCorrupt)}
	svc := monitor.NewService(fixedListing(), store, &spyAppender{})

	require.NoError(t, svc.Init(), "corrupt snapshot must not be fatal")
	assert.Empty(t, svc.Current())
}

func TestInit_LoadsPersistedSnapshot(t *testing.T) {
	persisted := snapshot.FromObjects([]dto.S3Object{obj("a", 10)})
	store := &fakeStore{snapshot: persisted}
	appender := &spyAppender{}
	svc := monitor.NewService(fixedListing(obj("a", 10)), store, appender)

	require.NoError(t, svc.Init())
	assert.Equal(t, persisted, svc.Current())

	// Restart with an unchanged bucket: no spurious additions.
	require.NoError(t, svc.RunCycle(context.Background()))
	assert.Empty(t, appender.batches)
}

func TestStatus_TracksChangeCounts(t *testing.T) {
	store := &fakeStore{snapshot: snapshot.FromObjects([]dto.S3Object{
		obj("keep", 1), obj("change", 2), obj("drop", 3),
	})}
	appender := &spyAppender{}
	svc := monitor.NewService(fixedListing(obj("keep", 1), obj("change", 9), obj("fresh", 4)), store, appender)
	require.NoError(t, svc.Init())

	require.NoError(t, svc.RunCycle(context.Background()))

	info := svc.Status()
	assert.Equal(t, 1, info.LastAdded)
	assert.Equal(t, 1, info.LastModified)
	assert.Equal(t, 1, info.LastRemoved)
	assert.Equal(t, 3, info.ObjectsTracked)
	assert.Equal(t, 1, info.CyclesCompleted)
}
