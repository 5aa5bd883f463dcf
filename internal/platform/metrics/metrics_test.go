package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRequest("GET", "/venues", "200", time.Now())
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestTrackInFlight(t *testing.T) {
	m := New(prometheus.NewRegistry())
	done := m.TrackInFlight()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.InFlight))
	done()
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", "200", time.Now())
	m.TrackInFlight()()
}
