package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_UpdateAndGet(t *testing.T) {
	m := NewMonitor()
	m.Update("store", NewHealthy("store", "512 triples loaded"))

	status, ok := m.Get("store")
	require.True(t, ok)
	assert.True(t, status.Healthy())
	assert.Equal(t, "store", status.Component)
	assert.False(t, status.Timestamp.IsZero())

	_, ok = m.Get("unknown")
	assert.False(t, ok)
}

func TestMonitor_CheckOverridesPushedStatus(t *testing.T) {
	m := NewMonitor()
	m.Update("store", NewUnhealthy("store", "stale"))
	m.RegisterCheck("store", func() Status {
		return NewHealthy("", "live")
	})

	status, ok := m.Get("store")
	require.True(t, ok)
	assert.True(t, status.Healthy())
	assert.Equal(t, "store", status.Component)
	assert.Equal(t, "live", status.Message)
}

func TestMonitor_ReportAggregatesWorstState(t *testing.T) {
	m := NewMonitor()
	m.Update("store", NewHealthy("store", ""))
	assert.Equal(t, StateHealthy, m.Report().State)

	m.Update("llm", NewDegraded("llm", "rate limited"))
	assert.Equal(t, StateDegraded, m.Report().State)

	m.Update("catalog", NewUnhealthy("catalog", "unreachable"))
	report := m.Report()
	assert.Equal(t, StateUnhealthy, report.State)

	// Sorted by component name.
	require.Len(t, report.Components, 3)
	assert.Equal(t, "catalog", report.Components[0].Component)
	assert.Equal(t, "llm", report.Components[1].Component)
	assert.Equal(t, "store", report.Components[2].Component)
}

func TestMonitor_Handler(t *testing.T) {
	m := NewMonitor()
	m.Update("store", NewHealthy("store", ""))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, 200, rec.Code)

	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, StateHealthy, report.State)

	m.Update("store", NewUnhealthy("store", "load failed"))
	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, 503, rec.Code)
}
