package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	labels := map[string]string{"provider": "nfts2me", "chain": "8453", "outcome": "fallback"}
	rec.IncCounter("discovery", labels)
	rec.IncCounter("discovery", labels)
	rec.ObserveLatency("discovery", 120*time.Millisecond, labels)

	got := testutil.ToFloat64(rec.counters.WithLabelValues("discovery", "nfts2me", "8453", "fallback"))
	assert.Equal(t, float64(2), got)
	assert.Equal(t, 1, testutil.CollectAndCount(rec.histogram))
}

func TestPrometheusRecorder_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	_, err = NewPrometheusRecorder(reg)
	assert.Error(t, err)
}
