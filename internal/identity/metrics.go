package identity

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Strategy labels.
const (
	StrategyToken  = "token"
	StrategyHeader = "header"
	StrategyJWT    = "jwt"
)

// Outcome labels.
const (
	OutcomeOK              = "ok"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeUnavailable     = "unavailable"
	OutcomeProtocolError   = "protocol_error"
	OutcomeCancelled       = "cancelled"
)

// Metrics tracks identity resolution.
type Metrics struct {
	Resolutions      *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "venues_identity_resolutions_total",
			Help: "Identity resolutions by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		UpstreamDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "venues_identity_upstream_duration_seconds",
			Help:    "Latency of identity service calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) IncResolution(strategy, outcome string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(strategy, outcome).Inc()
}

func (m *Metrics) ObserveUpstream(start time.Time) {
	if m == nil {
		return
	}
	m.UpstreamDuration.Observe(time.Since(start).Seconds())
}
