package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "service_area"

// Metrics holds the Prometheus counters and histograms for serviceability checks.
type Metrics struct {
	// Validation metrics.
	Validations *prometheus.CounterVec // labels: tier={postcode,distance,inconclusive}, outcome={valid,invalid}

	// Geocoding metrics.
	GeocodeLookups  *prometheus.CounterVec // labels: outcome={hit,miss,error,cancelled}
	GeocodeDuration prometheus.Histogram
	GeocodeEnabled  prometheus.Gauge

	// Caller session metrics.
	SupersededRequests prometheus.Counter

	// Verdict event publishing.
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Validations,
		m.GeocodeLookups,
		m.GeocodeDuration,
		m.GeocodeEnabled,
		m.SupersededRequests,
		m.EventsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Serviceability checks by deciding tier and outcome.",
		}, []string{"tier", "outcome"}),
		GeocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_lookups_total",
			Help:      "Fallback geocoder lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_duration_seconds",
			Help:      "Fallback geocoder lookup duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when the geocoding fallback is enabled, 0 otherwise.",
		}),
		SupersededRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "superseded_requests_total",
			Help:      "Session validations discarded because newer input arrived.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Verdict events written to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Verdict events that failed to publish.",
		}),
	}
}
