package metrics

import (
	"rewatch/internal/core/domain/metrics"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := NewPrometheus(registry)

	recorder.ObserveOperation("create_reminder", metrics.OutcomeSuccess, time.Millisecond)
	recorder.ObserveOperation("create_reminder", metrics.OutcomeError, time.Millisecond)
	recorder.ObserveOperation("create_reminder", metrics.OutcomeSuccess, time.Millisecond)
	recorder.ReminderFired(true)
	recorder.ReminderFired(false)
	recorder.RemindersCollected(3)

	require.Equal(t, 2.0, testutil.ToFloat64(recorder.operations.WithLabelValues("create_reminder", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(recorder.operations.WithLabelValues("create_reminder", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(recorder.fired.WithLabelValues("true")))
	require.Equal(t, 3.0, testutil.ToFloat64(recorder.collected))
	require.Equal(t, 1, testutil.CollectAndCount(recorder.durations))
}
