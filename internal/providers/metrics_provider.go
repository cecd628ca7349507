package providers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linguactl/internal/structures"
)

type MetricsProviderInterface interface {
	IncApiRequests(endpoint string, status int)
	ObserveApiDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRefreshes(outcome string)
	// Handler exposes the collected metrics for scraping; nil when disabled.
	Handler() http.Handler
}

type MetricsProvider struct {
	apiRequestsTotal *prometheus.CounterVec
	apiDuration      *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	refreshesTotal   *prometheus.CounterVec
}

func (m *MetricsProvider) IncApiRequests(endpoint string, status int) {
	m.apiRequestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveApiDuration(endpoint string, duration time.Duration) {
	m.apiDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRefreshes(outcome string) {
	m.refreshesTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) Handler() http.Handler {
	return promhttp.Handler()
}

func httpStatusBucket(code int) string {
	switch {
	case code <= 0:
		return "err"
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		apiRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lingua_api_requests_total",
			Help: "Total number of outbound API requests",
		}, []string{"endpoint", "status"}),

		apiDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lingua_api_request_duration_seconds",
			Help:    "Outbound API request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lingua_invite_cache_hits_total",
			Help: "Invite lookup cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lingua_invite_cache_misses_total",
			Help: "Invite lookup cache misses",
		}),

		refreshesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lingua_account_refreshes_total",
			Help: "Account snapshot refresh attempts by outcome",
		}, []string{"outcome"}),
	}

	return m
}

type noopMetrics struct{}

func (n *noopMetrics) IncApiRequests(_ string, _ int)               {}
func (n *noopMetrics) ObserveApiDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                {}
func (n *noopMetrics) IncCacheMisses()                              {}
func (n *noopMetrics) IncRefreshes(_ string)                        {}
func (n *noopMetrics) Handler() http.Handler                        { return nil }
