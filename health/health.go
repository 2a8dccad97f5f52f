// Package health tracks the liveness of the pipeline's components and
// serves an aggregate health report over HTTP.
package health

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Component states.
const (
	StateHealthy   = "healthy"
	StateDegraded  = "degraded"
	StateUnhealthy = "unhealthy"
)

// Status is one component's health at a point in time.
type Status struct {
	Component string    `json:"component"`
	State     string    `json:"state"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthy reports whether the component is fully operational.
func (s Status) Healthy() bool { return s.State == StateHealthy }

// NewHealthy builds a healthy status.
func NewHealthy(component, message string) Status {
	return Status{Component: component, State: StateHealthy, Message: message, Timestamp: time.Now()}
}

// NewDegraded builds a degraded status: operational but impaired,
// such as a collaborator that keeps rate-limiting.
func NewDegraded(component, message string) Status {
	return Status{Component: component, State: StateDegraded, Message: message, Timestamp: time.Now()}
}

// NewUnhealthy builds an unhealthy status.
func NewUnhealthy(component, message string) Status {
	return Status{Component: component, State: StateUnhealthy, Message: message, Timestamp: time.Now()}
}

// Check produces a component's current status on demand. Checks run on
// every report, so they should be cheap snapshot reads.
type Check func() Status

// Monitor aggregates component statuses. Components either push
// updates or register a live check.
type Monitor struct {
	mu       sync.RWMutex
	statuses map[string]Status
	checks   map[string]Check
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		statuses: make(map[string]Status),
		checks:   make(map[string]Check),
	}
}

// Update records a pushed status for a component.
func (m *Monitor) Update(name string, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status.Component = name
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now()
	}
	m.statuses[name] = status
}

// RegisterCheck attaches a live check for a component. A check
// overrides any pushed status of the same name.
func (m *Monitor) RegisterCheck(name string, check Check) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[name] = check
}

// Get returns the current status of one component.
func (m *Monitor) Get(name string) (Status, bool) {
	m.mu.RLock()
	check, hasCheck := m.checks[name]
	status, hasStatus := m.statuses[name]
	m.mu.RUnlock()

	if hasCheck {
		s := check()
		s.Component = name
		return s, true
	}
	return status, hasStatus
}

// Report is the aggregate health of the system.
type Report struct {
	State      string   `json:"state"`
	Components []Status `json:"components"`
}

// Report collects all component statuses. The aggregate state is the
// worst component state.
func (m *Monitor) Report() Report {
	m.mu.RLock()
	names := make(map[string]struct{}, len(m.statuses)+len(m.checks))
	for name := range m.statuses {
		names[name] = struct{}{}
	}
	for name := range m.checks {
		names[name] = struct{}{}
	}
	m.mu.RUnlock()

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	report := Report{State: StateHealthy}
	for _, name := range sorted {
		status, ok := m.Get(name)
		if !ok {
			continue
		}
		report.Components = append(report.Components, status)
		switch status.State {
		case StateUnhealthy:
			report.State = StateUnhealthy
		case StateDegraded:
			if report.State == StateHealthy {
				report.State = StateDegraded
			}
		}
	}
	return report
}

// Handler serves the health report as JSON. Unhealthy reports get a
// 503 so load balancers can act on the status code alone.
func (m *Monitor) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := m.Report()

		w.Header().Set("Content-Type", "application/json")
		if report.State == StateUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(report)
	})
}
