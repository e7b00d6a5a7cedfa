package narwhal

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusMeterProvider bundles an OpenTelemetry MeterProvider backed by a
// Prometheus exporter with the http.Handler that serves it, trimmed from the
// teacher's own metrics-listener wiring down to the single reader narwhal
// needs: no tracing, no OTLP, no pprof, since narwhal has no network service
// of its own to instrument.
type PrometheusMeterProvider struct {
	*sdkmetric.MeterProvider

	// Handler serves the registry's current samples in the Prometheus text
	// format; callers mount it under whatever path their process exposes
	// (e.g. "/metrics").
	Handler http.Handler
}

// NewPrometheusMeterProvider builds a MeterProvider whose reader is a fresh
// Prometheus exporter registered against its own registry, so two providers
// built this way never collide if a host process needs more than one.
func NewPrometheusMeterProvider() (*PrometheusMeterProvider, error) {
	registry := prometheus.NewRegistry()
	exporter, err := otelprometheus.New(otelprometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("narwhal: start prometheus exporter: %w", err)
	}
	return &PrometheusMeterProvider{
		MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
		Handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, nil
}
