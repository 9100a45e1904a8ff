package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SearchesTotal    *prometheus.CounterVec
	SearchDuration   *prometheus.HistogramVec
	SearchesInFlight prometheus.Gauge

	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderRequestDuration *prometheus.HistogramVec

	PageFetchesTotal  *prometheus.CounterVec
	ExtractionsTotal  *prometheus.CounterVec
	RateLimitRejected prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		SearchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webagent_searches_total",
				Help: "Total number of search pipeline invocations",
			},
			[]string{"mode", "status"},
		),
		SearchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webagent_search_duration_seconds",
				Help:    "End-to-end pipeline duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"mode"},
		),
		SearchesInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "webagent_searches_in_flight",
				Help: "Number of pipeline invocations currently being processed",
			},
		),

		ProviderRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webagent_provider_requests_total",
				Help: "Total number of search provider API requests",
			},
			[]string{"status"},
		),
		ProviderRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webagent_provider_request_duration_seconds",
				Help:    "Search provider request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{},
		),

		PageFetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webagent_page_fetches_total",
				Help: "Total number of result page fetches",
			},
			[]string{"status"},
		),
		ExtractionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webagent_extractions_total",
				Help: "Total number of content extraction attempts",
			},
			[]string{"result"},
		),
		RateLimitRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webagent_rate_limit_rejected_total",
				Help: "Total number of calls rejected by the global rate limit",
			},
		),
	}

	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordSearch(mode, status string, duration time.Duration) {
	m.SearchesTotal.WithLabelValues(mode, status).Inc()
	m.SearchDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func (m *Metrics) RecordProviderRequest(status string, duration time.Duration) {
	m.ProviderRequestsTotal.WithLabelValues(status).Inc()
	m.ProviderRequestDuration.WithLabelValues().Observe(duration.Seconds())
}

func (m *Metrics) RecordPageFetch(status string) {
	m.PageFetchesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordExtraction(ok bool) {
	result := "success"
	if !ok {
		result = "empty"
	}
	m.ExtractionsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordRateLimitRejected() {
	m.RateLimitRejected.Inc()
}

func (m *Metrics) IncSearchesInFlight() {
	m.SearchesInFlight.Inc()
}

func (m *Metrics) DecSearchesInFlight() {
	m.SearchesInFlight.Dec()
}
