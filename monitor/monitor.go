package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	"elevatorsim/building"
)

type Source interface {
	Snapshot() building.Snapshot
}

type Monitor struct {
	label  string
	source Source

	mtx    sync.RWMutex
	latest *building.Snapshot
	taken  time.Time
}

func NewMonitor(label string, source Source) *Monitor {
	return &Monitor{label: label, source: source}
}

/**
 * @brief Samples the building at regular intervals and logs its occupancy.
 *
 * @param ctx Stops the loop when done.
 * @param interval Time between reports.
 */
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := m.Sample()
			glog.Infof("[Monitor] %s %s", m.label, Report(&snap))
		}
	}
}

/**
 * @brief Takes a fresh snapshot and stores it as the latest one.
 *
 * @return The snapshot taken.
 */
func (m *Monitor) Sample() building.Snapshot {
	snap := m.source.Snapshot()

	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.latest = &snap
	m.taken = time.Now()

	return snap
}

/**
 * @brief Retrieves the last sampled snapshot.
 *
 * @return The snapshot and when it was taken, ok is false before the first sample.
 */
func (m *Monitor) Latest() (snap building.Snapshot, taken time.Time, ok bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	if m.latest == nil {
		return building.Snapshot{}, time.Time{}, false
	}
	return *m.latest, m.taken, true
}

// Report renders a snapshot as one log line, e.g.
// "car@2 [1/3] waiting 0:1^0v 1:0^2v delivered=4 rejected=1".
func Report(s *building.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "car@%d [%d/%d] waiting", s.CurrentFloor, len(s.Onboard), s.Capacity)
	for _, f := range s.Floors {
		fmt.Fprintf(&sb, " %d:%d^%dv", f.Number, len(f.Up), len(f.Down))
	}
	fmt.Fprintf(&sb, " delivered=%d rejected=%d", s.Stats.Delivered, s.Stats.Rejected)

	return sb.String()
}
