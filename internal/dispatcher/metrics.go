package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/cursorkit/internal/dispatcher/handler"
)

// ActionStats aggregates the dispatches of one action. The zero-named
// value returned by Metrics.Totals aggregates every action.
type ActionStats struct {
	Name       string
	Dispatches uint64
	Errors     uint64
	Cancelled  uint64
	Elapsed    time.Duration
	Last       handler.ResultStatus
}

// Mean is the average time per dispatch.
func (s ActionStats) Mean() time.Duration {
	if s.Dispatches == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Dispatches)
}

func (s *ActionStats) add(elapsed time.Duration, status handler.ResultStatus) {
	s.Dispatches++
	s.Elapsed += elapsed
	s.Last = status
	switch status {
	case handler.StatusError:
		s.Errors++
	case handler.StatusCancelled:
		s.Cancelled++
	}
}

// Metrics counts dispatches that reached a handler or were cancelled by
// a pre-dispatch hook. Lookups that find no handler are not recorded.
type Metrics struct {
	mu      sync.Mutex
	actions map[string]*ActionStats
	totals  ActionStats
	panics  uint64
}

// NewMetrics returns an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionStats)}
}

// Record accounts one finished dispatch of name.
func (m *Metrics) Record(name string, elapsed time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.actions[name]
	if !ok {
		s = &ActionStats{Name: name}
		m.actions[name] = s
	}
	s.add(elapsed, status)
	m.totals.add(elapsed, status)
}

// RecordPanic counts a recovered handler panic. The dispatch itself is
// still recorded as an error by Record.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	m.panics++
	m.mu.Unlock()
}

// Totals aggregates every recorded dispatch.
func (m *Metrics) Totals() ActionStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}

// Panics is the number of recovered handler panics.
func (m *Metrics) Panics() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.panics
}

// Action returns the stats for name.
func (m *Metrics) Action(name string) (ActionStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.actions[name]; ok {
		return *s, true
	}
	return ActionStats{}, false
}

// Snapshot copies the per-action stats, ordered by name.
func (m *Metrics) Snapshot() []ActionStats {
	m.mu.Lock()
	out := make([]ActionStats, 0, len(m.actions))
	for _, s := range m.actions {
		out = append(out, *s)
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset forgets everything recorded so far.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = make(map[string]*ActionStats)
	m.totals = ActionStats{}
	m.panics = 0
}
