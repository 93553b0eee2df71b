package monitor

import (
	"sync"
	"time"

	"github.com/mfco/spacewatch/pkg/changelog"
)

// Info is a point-in-time view of the monitor's health, served on /status.
type Info struct {
	LastRun             time.Time `json:"last_run"`
	LastSuccess         time.Time `json:"last_success"`
	LastError           string    `json:"last_error,omitempty"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	CyclesCompleted     int       `json:"cycles_completed"`
	ObjectsTracked      int       `json:"objects_tracked"`
	LastAdded           int       `json:"last_added"`
	LastModified        int       `json:"last_modified"`
	LastRemoved         int       `json:"last_removed"`
}

type status struct {
	mu   sync.RWMutex
	info Info
}

func (st *status) cycleStarted(at time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.info.LastRun = at
}

func (st *status) cycleFailed(err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.info.LastError = err.Error()
	st.info.ConsecutiveFailures++
}

func (st *status) cycleCompleted(objects int, records []changelog.Record) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.info.LastSuccess = st.info.LastRun
	st.info.LastError = ""
	st.info.ConsecutiveFailures = 0
	st.info.CyclesCompleted++
	st.info.ObjectsTracked = objects
	st.info.LastAdded = 0
	st.info.LastModified = 0
	st.info.LastRemoved = 0
	for _, r := range records {
		switch r.Action {
		case changelog.ActionAdded:
			st.info.LastAdded++
		case changelog.ActionModified:
			st.info.LastModified++
		case changelog.ActionRemoved:
			st.info.LastRemoved++
		}
	}
}

// Status returns a copy of the current monitor status.
func (s *Service) Status() Info {
	s.status.mu.RLock()
	defer s.status.mu.RUnlock()
	return s.status.info
}
