package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(GenerationsTotal.WithLabelValues("metrics-test", "ok"))
	ObserveGeneration("metrics-test", "ok", 1500*time.Millisecond)
	after := testutil.ToFloat64(GenerationsTotal.WithLabelValues("metrics-test", "ok"))
	assert.Equal(t, before+1, after)
}

func TestObserveUsage_SkipsUnknownCost(t *testing.T) {
	ObserveUsage("metrics-test", "mock", 120, 30, 0)

	assert.Equal(t, float64(120), testutil.ToFloat64(ProviderTokens.WithLabelValues("metrics-test", "mock", "input")))
	assert.Equal(t, float64(30), testutil.ToFloat64(ProviderTokens.WithLabelValues("metrics-test", "mock", "output")))
	assert.Equal(t, float64(0), testutil.ToFloat64(ProviderCost.WithLabelValues("metrics-test", "mock")))
}

func TestObserveStrategy(t *testing.T) {
	ObserveStrategy("metrics-test", "embedded")
	ObserveStrategy("metrics-test", "embedded")
	assert.Equal(t, float64(2), testutil.ToFloat64(ExtractionStrategy.WithLabelValues("metrics-test", "embedded")))
}

func TestObserveRequest(t *testing.T) {
	ObserveRequest("POST", "/api/tools/metrics-test", 400)
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequests.WithLabelValues("POST", "/api/tools/metrics-test", "400")))
}
