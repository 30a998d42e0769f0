package observability

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"resumelens/internal/config"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := newMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatalf("Failed to create metrics: %v", err)
	}
	return metrics, reader
}

// counterTotal sums every data point of the named Int64 sum
func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestRecordBusinessMetric(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordBusinessMetric(ctx, MetricTextAnalyzed, true, nil, attribute.String("source", "cli"))
	metrics.RecordBusinessMetric(ctx, MetricTextAnalyzed, false, nil)
	metrics.RecordBusinessMetric(ctx, MetricKeywordMatch, true, nil)
	metrics.RecordBusinessMetric(ctx, MetricLexiconReload, true, nil)
	metrics.RecordBusinessMetric(ctx, "unknown", true, nil)

	if got := counterTotal(t, reader, "resumelens_texts_analyzed_total"); got != 2 {
		t.Errorf("Expected 2 texts analyzed, got %d", got)
	}
	if got := counterTotal(t, reader, "resumelens_keyword_matches_total"); got != 1 {
		t.Errorf("Expected 1 keyword match, got %d", got)
	}
	if got := counterTotal(t, reader, "resumelens_lexicon_reloads_total"); got != 1 {
		t.Errorf("Expected 1 lexicon reload, got %d", got)
	}
}

func TestRecordBusinessMetricHonoursToggles(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	cfg := config.Default()
	cfg.Observability.CustomMetrics.BusinessMetrics.Enabled = false
	cfg.Observability.CustomMetrics.Infrastructure.TrackRateLimits = false
	om := &ObservabilityManager{fullConfig: cfg}

	metrics.RecordBusinessMetric(context.Background(), MetricResumeReviewed, true, om)
	metrics.RecordBusinessMetric(context.Background(), MetricRateLimitHit, true, om)
	metrics.RecordBusinessMetric(context.Background(), MetricLexiconReload, true, om)

	if got := counterTotal(t, reader, "resumelens_resumes_reviewed_total"); got != 0 {
		t.Errorf("Business metrics disabled, got %d", got)
	}
	if got := counterTotal(t, reader, "resumelens_rate_limit_hits_total"); got != 0 {
		t.Errorf("Rate limit tracking disabled, got %d", got)
	}
	if got := counterTotal(t, reader, "resumelens_lexicon_reloads_total"); got != 1 {
		t.Errorf("Lexicon reload tracking enabled, got %d", got)
	}
}

func TestTrackAIOperationWithTokens(t *testing.T) {
	metrics, reader := newTestMetrics(t)

	err := metrics.TrackAIOperationWithTokens(context.Background(), "review_resume", func(ctx context.Context) *AIOperationResult {
		return &AIOperationResult{TokenUsage: &TokenUsage{InputTokens: 3, OutputTokens: 2, TotalTokens: 5}}
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantErr := fmt.Errorf("provider down")
	err = metrics.TrackAIOperationWithTokens(context.Background(), "review_resume", func(ctx context.Context) *AIOperationResult {
		return &AIOperationResult{Error: wantErr}
	}, nil)
	if err != wantErr {
		t.Errorf("Expected provider error, got %v", err)
	}

	if got := counterTotal(t, reader, "resumelens_ai_requests_total"); got != 2 {
		t.Errorf("Expected 2 AI requests, got %d", got)
	}
	if got := counterTotal(t, reader, "resumelens_ai_errors_total"); got != 1 {
		t.Errorf("Expected 1 AI error, got %d", got)
	}
}

func TestDisabledManager(t *testing.T) {
	om, err := NewObservabilityManager(ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	metrics := om.GetMetrics()
	metrics.RecordBusinessMetric(context.Background(), MetricTextAnalyzed, true, om)
	metrics.RecordContentSize(context.Background(), "cli", 42, om)

	called := false
	err = metrics.TrackAIOperationWithTokens(context.Background(), "noop", func(ctx context.Context) *AIOperationResult {
		called = true
		return nil
	}, om)
	if err != nil || !called {
		t.Errorf("Expected function to run without metrics, err=%v called=%v", err, called)
	}
	if err := om.Shutdown(context.Background()); err != nil {
		t.Errorf("Unexpected shutdown error: %v", err)
	}
}
