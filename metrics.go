package kadmin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// prometheusRegisterer is the subset of *prometheus.Registry kadmin
// needs, narrowed so callers can pass prometheus.DefaultRegisterer or
// their own *prometheus.Registry interchangeably (grounded on
// plugin/kprom's registration pattern).
type prometheusRegisterer interface {
	MustRegister(...prometheus.Collector)
}

// metricsRecorder wraps the Prometheus collectors this engine exposes:
// per-kind request latency, in-flight request count, and throttle time
// observed from brokers. Unlike plugin/kprom (which instruments the
// data-plane produce/consume path), there is no teacher file for an
// admin-request metrics set; this is a from-scratch application of the
// same dependency to this engine's own request lifecycle.
type metricsRecorder struct {
	latency   *prometheus.HistogramVec
	inFlight  prometheus.Gauge
	throttle  prometheus.Gauge
}

func newMetricsRecorder(reg prometheusRegisterer) *metricsRecorder {
	m := &metricsRecorder{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kadmin",
			Name:      "request_latency_seconds",
			Help:      "Time from sending an admin request to decoding its response.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kadmin",
			Name:      "requests_in_flight",
			Help:      "Number of admin requests currently being driven by the engine.",
		}),
		throttle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kadmin",
			Name:      "last_throttle_seconds",
			Help:      "Most recently observed server-side throttle hint.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.latency, m.inFlight, m.throttle)
	}
	return m
}

func (m *metricsRecorder) observeLatency(kind RequestKind, d time.Duration) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(kind.String()).Observe(d.Seconds())
}

func (m *metricsRecorder) observeThrottle(d time.Duration) {
	if m == nil {
		return
	}
	m.throttle.Set(d.Seconds())
}

func (m *metricsRecorder) incInFlight() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *metricsRecorder) decInFlight() {
	if m == nil {
		return
	}
	m.inFlight.Dec()
}
