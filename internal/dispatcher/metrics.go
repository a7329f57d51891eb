package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics counts dispatched commands and how long they took. It is only
// allocated when Config.EnableMetrics is set.
type Metrics struct {
	mu      sync.Mutex
	byName  map[string]*CommandMetrics
	runs    uint64
	fails   uint64
	panics  uint64
	elapsed time.Duration
}

// CommandMetrics is the per-command tally.
type CommandMetrics struct {
	Name     string
	Runs     uint64
	Failures uint64
	Panics   uint64
	Elapsed  time.Duration
	Slowest  time.Duration
	LastRun  time.Time
	LastOK   bool
}

// NewMetrics returns an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{byName: map[string]*CommandMetrics{}}
}

func (m *Metrics) entry(name string) *CommandMetrics {
	cm, ok := m.byName[name]
	if !ok {
		cm = &CommandMetrics{Name: name}
		m.byName[name] = cm
	}
	return cm
}

// RecordDispatch tallies one finished invocation of name.
func (m *Metrics) RecordDispatch(name string, took time.Duration, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs++
	m.elapsed += took
	cm := m.entry(name)
	cm.Runs++
	cm.Elapsed += took
	cm.Slowest = max(cm.Slowest, took)
	cm.LastRun = time.Now()
	cm.LastOK = ok
	if !ok {
		m.fails++
		cm.Failures++
	}
}

// RecordPanic tallies a handler panic that the dispatcher recovered.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
	m.entry(name).Panics++
}

// TotalDispatches is the number of invocations that reached a handler.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

// TotalErrors is the number of invocations that did not succeed.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fails
}

// TotalPanics is the number of recovered handler panics.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.panics
}

// Elapsed is the summed handler time across all commands.
func (m *Metrics) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// CommandStats returns a copy of the tally for name, or nil if it never ran.
func (m *Metrics) CommandStats(name string) *CommandMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	cm, ok := m.byName[name]
	if !ok {
		return nil
	}
	cp := *cm
	return &cp
}

// TopCommands lists up to n commands by run count, ties broken by name.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.Lock()
	all := make([]*CommandMetrics, 0, len(m.byName))
	for _, cm := range m.byName {
		cp := *cm
		all = append(all, &cp)
	}
	m.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Runs == all[j].Runs {
			return all[i].Name < all[j].Name
		}
		return all[i].Runs > all[j].Runs
	})
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all
}

// Mean is the average handler time for the command.
func (cm *CommandMetrics) Mean() time.Duration {
	if cm.Runs == 0 {
		return 0
	}
	return cm.Elapsed / time.Duration(cm.Runs)
}

// ErrorRate is the failed share of runs as a percentage.
func (cm *CommandMetrics) ErrorRate() float64 {
	if cm.Runs == 0 {
		return 0
	}
	return 100 * float64(cm.Failures) / float64(cm.Runs)
}
