package health

import (
	"context"
	"sync"
	"time"
)

// DefaultTimeout bounds each check.
const DefaultTimeout = 5 * time.Second

// Manager runs registered checkers in parallel.
type Manager struct {
	mu       sync.Mutex
	checkers []Checker
	timeout  time.Duration
}

// NewManager creates a manager. A zero timeout selects DefaultTimeout.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{timeout: timeout}
}

// Add registers c. Reports list checks in registration order.
func (m *Manager) Add(c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, c)
}

// Names returns the registered checker names.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.checkers))
	for i, c := range m.checkers {
		names[i] = c.Name()
	}
	return names
}

// Check is one entry of a Report.
type Check struct {
	Name string `json:"name" yaml:"name"`
	*Result
}

// Report is the outcome of a run.
type Report struct {
	Status Status  `json:"status" yaml:"status"`
	Checks []Check `json:"checks" yaml:"checks"`
}

// Run executes every checker with its own deadline and waits for all of
// them. The report status is the worst check status.
func (m *Manager) Run(ctx context.Context) Report {
	m.mu.Lock()
	checkers := append([]Checker(nil), m.checkers...)
	timeout := m.timeout
	m.mu.Unlock()

	checks := make([]Check, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checks[i] = Check{Name: c.Name(), Result: runOne(ctx, c, timeout)}
		}()
	}
	wg.Wait()

	report := Report{Status: StatusHealthy, Checks: checks}
	for _, c := range checks {
		if c.Status.rank() > report.Status.rank() {
			report.Status = c.Status
		}
	}
	return report
}

func runOne(ctx context.Context, c Checker, timeout time.Duration) *Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	result := c.Check(ctx)
	if result == nil {
		result = Unhealthy("check returned no result")
	}
	if result.Latency == 0 {
		result.Latency = time.Since(start)
	}
	return result
}
