package narwhal

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.gateAcquired()
	m.gateTimedOut()
	m.gateSpin()
	m.acquireGranted(Read)
	m.acquirePending(Write)
	m.released()
	m.pendingStarted()
	m.pendingEnded()
	if got := m.ActivePending(); got != 0 {
		t.Fatalf("nil Metrics.ActivePending() = %d, want 0", got)
	}
}

func TestActivePendingGauge(t *testing.T) {
	m := &Metrics{}
	m.pendingStarted()
	m.pendingStarted()
	if got := m.ActivePending(); got != 2 {
		t.Fatalf("ActivePending() = %d, want 2", got)
	}
	m.pendingEnded()
	if got := m.ActivePending(); got != 1 {
		t.Fatalf("ActivePending() = %d, want 1", got)
	}
}

func TestNewMetricsRegistersAgainstPrometheusMeterProvider(t *testing.T) {
	mp, err := NewPrometheusMeterProvider()
	if err != nil {
		t.Fatalf("NewPrometheusMeterProvider() error = %v", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			t.Fatalf("Shutdown() error = %v", err)
		}
	}()

	m, err := NewMetrics(mp.Meter("pkt.systems/narwhal"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	m.gateAcquired()
	m.gateTimedOut()
	m.gateSpin()
	m.acquireGranted(Read)
	m.acquirePending(Write)
	m.released()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	mp.Handler.ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, name := range []string{
		"narwhal_gate_acquired_total",
		"narwhal_gate_timed_out_total",
		"narwhal_gate_spins_total",
		"narwhal_acquire_total",
		"narwhal_release_total",
	} {
		if !strings.Contains(body, name) {
			t.Fatalf("prometheus output missing %s; got:\n%s", name, body)
		}
	}
}
