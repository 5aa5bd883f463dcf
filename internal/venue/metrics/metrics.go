package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the venue module.
type Metrics struct {
	Mutations      *prometheus.CounterVec
	AuthzDenials   *prometheus.CounterVec
	ListDuration   prometheus.Histogram
	ThumbnailSwaps prometheus.Counter
}

// New registers the venue collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "venues_mutations_total",
			Help: "Successful venue, image and schedule mutations by action",
		}, []string{"action"}),
		AuthzDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "venues_authz_denials_total",
			Help: "Ownership checks that rejected the caller, by reason",
		}, []string{"reason"}),
		ListDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "venues_list_duration_seconds",
			Help:    "Duration of venue search queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ThumbnailSwaps: factory.NewCounter(prometheus.CounterOpts{
			Name: "venues_thumbnail_assignments_total",
			Help: "Images flagged as thumbnail on create or update",
		}),
	}
}

func (m *Metrics) IncMutation(action string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(action).Inc()
}

func (m *Metrics) IncDenial(reason string) {
	if m == nil {
		return
	}
	m.AuthzDenials.WithLabelValues(reason).Inc()
}

// ObserveList records the duration of a search.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveList(start time.Time) {
	if m == nil {
		return
	}
	m.ListDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncThumbnail() {
	if m == nil {
		return
	}
	m.ThumbnailSwaps.Inc()
}
