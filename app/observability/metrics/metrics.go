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
// Recording methods are safe to call on a nil *AppMetrics, which is what tests pass in.
type AppMetrics struct {
	LLMRequestsTotal         metric.Int64Counter
	LLMRetriesTotal          metric.Int64Counter
	LLMRequestDuration       metric.Float64Histogram
	LLMCacheHitsTotal        metric.Int64Counter
	OrganizerFallbacksTotal  metric.Int64Counter
	PlansGeneratedTotal      metric.Int64Counter
	PlanGenerationDuration   metric.Float64Histogram
	DegradedTextFieldsTotal  metric.Int64Counter
	CatalogueLoadErrorsTotal metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("IrelandTravelPlanner")
		m := &AppMetrics{}

		m.LLMRequestsTotal = mustCounter(meter, "llm_requests_total", "Text generation calls by provider and outcome", "{request}")
		m.LLMRetriesTotal = mustCounter(meter, "llm_retries_total", "Text generation attempts retried after a transient failure", "{retry}")
		m.LLMRequestDuration = mustHistogram(meter, "llm_request_duration_seconds", "Duration of a text generation call including retries")
		m.LLMCacheHitsTotal = mustCounter(meter, "llm_cache_hits_total", "Text generation calls served from the prompt cache", "{hit}")
		m.OrganizerFallbacksTotal = mustCounter(meter, "organizer_fallbacks_total", "Day groupings built by the deterministic fallback", "{plan}")
		m.PlansGeneratedTotal = mustCounter(meter, "plans_generated_total", "Travel plans assembled", "{plan}")
		m.PlanGenerationDuration = mustHistogram(meter, "plan_generation_duration_seconds", "Duration of travel plan assembly")
		m.DegradedTextFieldsTotal = mustCounter(meter, "degraded_text_fields_total", "Text fields replaced by a placeholder", "{field}")
		m.CatalogueLoadErrorsTotal = mustCounter(meter, "catalogue_load_errors_total", "POI catalogue load failures", "{error}")

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

func mustCounter(meter metric.Meter, name, description, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return c
}

func mustHistogram(meter metric.Meter, name, description string) metric.Float64Histogram {
	h, err := meter.Float64Histogram(name, metric.WithDescription(description), metric.WithUnit("s"))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return h
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

func (m *AppMetrics) RecordLLMRequest(ctx context.Context, provider, outcome string, attempts int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("provider", provider), attribute.String("outcome", outcome))
	m.LLMRequestsTotal.Add(ctx, 1, attrs)
	m.LLMRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	if attempts > 1 {
		m.LLMRetriesTotal.Add(ctx, int64(attempts-1), metric.WithAttributes(attribute.String("provider", provider)))
	}
}

func (m *AppMetrics) RecordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.LLMCacheHitsTotal.Add(ctx, 1)
}

func (m *AppMetrics) RecordOrganizerFallback(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.OrganizerFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *AppMetrics) RecordDegradedField(ctx context.Context, field string) {
	if m == nil {
		return
	}
	m.DegradedTextFieldsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}

func (m *AppMetrics) RecordPlan(ctx context.Context, days int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.PlansGeneratedTotal.Add(ctx, 1, metric.WithAttributes(attribute.Int("days", days)))
	m.PlanGenerationDuration.Record(ctx, elapsed.Seconds())
}

func (m *AppMetrics) RecordCatalogueLoadError(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.CatalogueLoadErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}
