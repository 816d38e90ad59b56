package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	SearchesTotal         metric.Int64Counter
	SearchDurationSeconds metric.Float64Histogram
	CacheLookupsTotal     metric.Int64Counter
	ProviderRequestsTotal metric.Int64Counter
	ProviderDuration      metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("GasStationFinder")
		m, err := NewAppMetrics(meter)
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// NewAppMetrics builds the instruments on the given meter. Tests pass a noop meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.SearchesTotal, err = meter.Int64Counter(
		"searches_total",
		metric.WithDescription("Total number of location queries handled, by outcome"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, err
	}

	m.SearchDurationSeconds, err = meter.Float64Histogram(
		"search_duration_seconds",
		metric.WithDescription("Duration of a full message pipeline in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.CacheLookupsTotal, err = meter.Int64Counter(
		"cache_lookups_total",
		metric.WithDescription("Result cache lookups by result (hit, miss)"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	m.ProviderRequestsTotal, err = meter.Int64Counter(
		"provider_requests_total",
		metric.WithDescription("Requests to Google APIs by provider and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.ProviderDuration, err = meter.Float64Histogram(
		"provider_request_duration_seconds",
		metric.WithDescription("Duration of Google API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordProviderRequest is safe to call on a nil receiver.
func (m *AppMetrics) RecordProviderRequest(ctx context.Context, provider, outcome string, started time.Time) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("provider", provider), attribute.String("outcome", outcome))
	m.ProviderRequestsTotal.Add(ctx, 1, attrs)
	m.ProviderDuration.Record(ctx, time.Since(started).Seconds(), metric.WithAttributes(attribute.String("provider", provider)))
}

func (m *AppMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *AppMetrics) RecordSearch(ctx context.Context, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.SearchesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.SearchDurationSeconds.Record(ctx, time.Since(started).Seconds())
}
