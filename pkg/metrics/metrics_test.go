package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("booking-engine", prometheus.NewRegistry())

	m.RecordSlots("open", 5)
	m.RecordSlots("open", 2)
	m.RecordPriceCalculation("ok")
	m.RecordSubsidised()
	m.RecordHoldsReleased(3)
	m.ObserveHTTP("GET", "/api/v1/treatments/{treatmentId}/available-slots", 200, 10*time.Millisecond)
	m.ObserveQuery("QueryContext", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 7.0, testutil.ToFloat64(m.SlotsGenerated.WithLabelValues("booking-engine", "open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PriceCalculations.WithLabelValues("booking-engine", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubsidisedBookings.WithLabelValues("booking-engine")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HoldsReleased.WithLabelValues("booking-engine")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("booking-engine", "GET", "/api/v1/treatments/{treatmentId}/available-slots", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryDuration))
}
