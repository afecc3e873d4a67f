package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"treport/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncCardCacheHits()
	IncCardCacheMisses()
	SetBoardCards(boardID string, count int)
	IncReportsWritten()
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cardCacheHits   prometheus.Counter
	cardCacheMisses prometheus.Counter
	boardCards      *prometheus.GaugeVec
	reportsWritten  prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncCardCacheHits() {
	m.cardCacheHits.Inc()
}

func (m *MetricsProvider) IncCardCacheMisses() {
	m.cardCacheMisses.Inc()
}

func (m *MetricsProvider) SetBoardCards(boardID string, count int) {
	m.boardCards.WithLabelValues(boardID).Set(float64(count))
}

func (m *MetricsProvider) IncReportsWritten() {
	m.reportsWritten.Inc()
}

func httpStatusBucket(code int) string {
	switch {
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

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "treport_fetch_requests_total",
			Help: "Total number of Trello API requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "treport_fetch_request_duration_seconds",
			Help:    "Trello API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "treport_board_cache_hits_total",
			Help: "Total number of hot board cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "treport_board_cache_misses_total",
			Help: "Total number of hot board cache misses",
		}),

		cardCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "treport_card_cache_hits_total",
			Help: "Total number of card movement lists served from the disk cache",
		}),

		cardCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "treport_card_cache_misses_total",
			Help: "Total number of card movement lists fetched from the API",
		}),

		boardCards: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "treport_board_cards",
			Help: "Number of cards seen per board",
		}, []string{"board"}),

		reportsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "treport_reports_written_total",
			Help: "Total number of report files written",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncCardCacheHits()                                {}
func (n *noopMetrics) IncCardCacheMisses()                              {}
func (n *noopMetrics) SetBoardCards(_ string, _ int)                    {}
func (n *noopMetrics) IncReportsWritten()                               {}
