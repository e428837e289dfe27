package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEngineMetrics_Record(t *testing.T) {
	m := NewEngineMetrics(prometheus.NewRegistry())

	m.RecordBreach("BELOW_TOR", "HIGH")
	m.RecordBreach("BELOW_TOR", "HIGH")
	m.RecordBreachSuppressed("BELOW_TOY")
	m.RecordOrderCreated("LOC-1", 120)
	m.RecordQualification("spike_capped", true)
	m.RecordItemFailure(OpRecalculate)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreachesDetectedTotal.WithLabelValues("BELOW_TOR", "HIGH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreachesSuppressedTotal.WithLabelValues("BELOW_TOY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReplenishmentOrdersTotal.WithLabelValues("LOC-1")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.ReplenishmentQtyTotal.WithLabelValues("LOC-1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QualificationsTotal.WithLabelValues("spike_capped", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ItemFailuresTotal.WithLabelValues(OpRecalculate)))
}

func TestEngineMetrics_NilReceiver(t *testing.T) {
	var m *EngineMetrics

	assert.NotPanics(t, func() {
		m.RecordBreach("BELOW_TOR", "HIGH")
		m.RecordOrderCreated("LOC-1", 1)
		m.RecordRecalculation("MANUAL", "ok")
		m.RecordDecouplingScore("", 0)
		m.ObserveRun(OpDetectBreaches, 0.1)
	})
}
