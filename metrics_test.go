package can

import (
	"testing"
	"time"
)

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{})

	m.Inc(MetricAllow)
	m.Observe(MetricDecideLatency, time.Millisecond)

	if m.Enabled() {
		t.Fatalf("expected metrics disabled")
	}
	if m.Value(MetricAllow) != 0 {
		t.Fatalf("expected disabled counter to stay zero")
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 {
		t.Fatalf("expected empty snapshot when disabled")
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics

	m.Inc(MetricAllow)
	m.Observe(MetricDecideLatency, time.Millisecond)

	if m.Enabled() {
		t.Fatalf("expected nil metrics to report disabled")
	}
	if m.Value(MetricAllow) != 0 {
		t.Fatalf("expected nil metrics value to be zero")
	}
}

func TestMetricsCountersAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricEvaluation)
	m.Inc(MetricEvaluation)
	m.Inc(MetricDeny)

	if m.Value(MetricEvaluation) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", m.Value(MetricEvaluation))
	}

	snap := m.Snapshot()
	if snap.Counters[MetricEvaluation] != 2 || snap.Counters[MetricDeny] != 1 {
		t.Fatalf("unexpected snapshot counters: %v", snap.Counters)
	}
	if len(snap.Histograms) != 0 {
		t.Fatalf("expected no histograms without latency enabled")
	}
}

func TestMetricsLatencyHistogram(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Observe(MetricDecideLatency, 500*time.Nanosecond)
	m.Observe(MetricDecideLatency, 30*time.Microsecond)
	m.Observe(MetricDecideLatency, time.Second)

	// Only the decide latency metric carries a histogram.
	m.Observe(MetricAllow, time.Microsecond)

	snap := m.Snapshot()
	buckets, ok := snap.Histograms[MetricDecideLatency]
	if !ok {
		t.Fatalf("expected decide latency histogram")
	}
	if buckets[0] != 1 {
		t.Fatalf("expected 1 sample in the sub-microsecond bucket, got %d", buckets[0])
	}
	if buckets[4] != 1 {
		t.Fatalf("expected 1 sample in the 50us bucket, got %d", buckets[4])
	}
	if buckets[len(buckets)-1] != 1 {
		t.Fatalf("expected 1 sample in the overflow bucket, got %d", buckets[len(buckets)-1])
	}
}

func TestConfigValidateNormalizesHistograms(t *testing.T) {
	cfg := Config{Metrics: MetricsConfig{EnableLatencyHistograms: true}}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if cfg.Metrics.EnableLatencyHistograms {
		t.Fatalf("expected histograms switched off without metrics enabled")
	}
}
