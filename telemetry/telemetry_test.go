package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, cv *prometheus.CounterVec, label string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, cv.WithLabelValues(label).Write(m))
	return m.GetCounter().GetValue()
}

func TestHistogramsRecordByLengthLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHistograms(reg, "sharesat_test")

	h.Admit(3)
	h.Admit(3)
	h.Admit(100)

	require.Equal(t, 2.0, counterValue(t, h.Admitted, "3"))
	require.Equal(t, 1.0, counterValue(t, h.Admitted, "64+"))
}

func TestNewLoggerHasComponentField(t *testing.T) {
	logger := NewLogger("cdb")
	require.NotNil(t, logger)
}
