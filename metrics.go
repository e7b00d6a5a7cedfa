package narwhal

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records operation counters via an OpenTelemetry Meter. A nil
// *Metrics (the Config default) is a safe no-op; construct one with
// NewMetrics to publish real counters, typically backed by
// go.opentelemetry.io/otel/exporters/prometheus.
type Metrics struct {
	gateAcquireCount metric.Int64Counter
	gateTimeoutCount metric.Int64Counter
	gateSpinCount    metric.Int64Counter
	acquireCount     metric.Int64Counter
	releaseCount     metric.Int64Counter
	activePending    atomic.Int64
}

// NewMetrics registers narwhal's counters against meter. Pass
// otel.Meter("pkt.systems/narwhal") backed by whichever MeterProvider the
// host application configured (e.g. the prometheus exporter).
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.gateAcquireCount, err = meter.Int64Counter(
		"narwhal.gate.acquired",
		metric.WithDescription("Successful exclusive-gate acquisitions"),
	); err != nil {
		return nil, err
	}
	if m.gateTimeoutCount, err = meter.Int64Counter(
		"narwhal.gate.timed_out",
		metric.WithDescription("Gate acquisition attempts that exceeded the timeout"),
	); err != nil {
		return nil, err
	}
	if m.gateSpinCount, err = meter.Int64Counter(
		"narwhal.gate.spins",
		metric.WithDescription("Spin iterations while contending for the gate"),
	); err != nil {
		return nil, err
	}
	if m.acquireCount, err = meter.Int64Counter(
		"narwhal.acquire",
		metric.WithDescription("Lock acquisition outcomes by mode and status"),
	); err != nil {
		return nil, err
	}
	if m.releaseCount, err = meter.Int64Counter(
		"narwhal.release",
		metric.WithDescription("Successful lock releases"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

var defaultNoopMetrics = &Metrics{}

func noopMetrics() *Metrics { return defaultNoopMetrics }

func (m *Metrics) gateAcquired() {
	if m == nil || m.gateAcquireCount == nil {
		return
	}
	m.gateAcquireCount.Add(context.Background(), 1)
}

func (m *Metrics) gateTimedOut() {
	if m == nil || m.gateTimeoutCount == nil {
		return
	}
	m.gateTimeoutCount.Add(context.Background(), 1)
}

func (m *Metrics) gateSpin() {
	if m == nil || m.gateSpinCount == nil {
		return
	}
	m.gateSpinCount.Add(context.Background(), 1)
}

func (m *Metrics) acquireGranted(mode Mode) {
	if m == nil || m.acquireCount == nil {
		return
	}
	m.acquireCount.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("mode", mode.String()), attribute.String("status", "granted")))
}

func (m *Metrics) acquirePending(mode Mode) {
	if m == nil || m.acquireCount == nil {
		return
	}
	m.acquireCount.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("mode", mode.String()), attribute.String("status", "pending")))
}

func (m *Metrics) released() {
	if m == nil || m.releaseCount == nil {
		return
	}
	m.releaseCount.Add(context.Background(), 1)
}

// pendingStarted marks one acquisition as newly blocked (transitioned from
// unseen to PENDING). Paired with pendingEnded once it is granted or abandoned.
func (m *Metrics) pendingStarted() {
	if m == nil {
		return
	}
	m.activePending.Add(1)
}

func (m *Metrics) pendingEnded() {
	if m == nil {
		return
	}
	m.activePending.Add(-1)
}

// ActivePending reports how many of this process's in-flight acquire calls
// are currently blocked waiting on an incompatible holder. Safe to call
// concurrently; useful as an OpenTelemetry observable gauge callback.
func (m *Metrics) ActivePending() int64 {
	if m == nil {
		return 0
	}
	return m.activePending.Load()
}
