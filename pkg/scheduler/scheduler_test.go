package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfco/spacewatch/pkg/changelog"
	"github.com/mfco/spacewatch/pkg/dto"
	"github.com/mfco/spacewatch/pkg/monitor"
	"github.com/mfco/spacewatch/pkg/scheduler"
	"github.com/mfco/spacewatch/pkg/snapshot"
)

type nopStore struct{}

func (nopStore) Load() (snapshot.Snapshot, error) { return snapshot.New(), nil }
func (nopStore) Save(snapshot.Snapshot) error     { return nil }

type nopAppender struct{}

func (nopAppender) Append([]changelog.Record) error { return nil }

func TestScheduler_RunsImmediateCycleOnStart(t *testing.T) {
	lister := monitor.ListerFunc(func(context.Context) ([]dto.S3Object, error) {
		return []dto.S3Object{{Key: "a", Size: 1, LastModified: time.Now()}}, nil
	})
	svc := monitor.NewService(lister, nopStore{}, nopAppender{})
	require.NoError(t, svc.Init())

	s := scheduler.NewScheduler(svc, 3600)
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return svc.Status().CyclesCompleted >= 1
	}, 5*time.Second, 10*time.Millisecond, "initial cycle should run without waiting for the first tick")
}

func TestScheduler_StopWaitsForInFlightCycle(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	lister := monitor.ListerFunc(func(context.Context) ([]dto.S3Object, error) {
		close(started)
		<-release
		return nil, nil
	})
	svc := monitor.NewService(lister, nopStore{}, nopAppender{})
	require.NoError(t, svc.Init())

	s := scheduler.NewScheduler(svc, 3600)
	s.Start(context.Background())

	<-started
	close(release)
	s.Stop()
}
