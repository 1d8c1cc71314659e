package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DirectoryMetrics are the business counters exposed on /metrics.
// A nil *DirectoryMetrics records nothing.
type DirectoryMetrics struct {
	ReviewWrites          *prometheus.CounterVec
	RatingRecomputations  prometheus.Counter
	FavoriteWrites        *prometheus.CounterVec
	RecommendationResults *prometheus.CounterVec
	LoginAttempts         *prometheus.CounterVec
}

// NewDirectoryMetrics registers the directory counters on reg
func NewDirectoryMetrics(reg prometheus.Registerer) *DirectoryMetrics {
	factory := promauto.With(reg)

	return &DirectoryMetrics{
		ReviewWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_review_writes_total",
				Help: "Review writes by action",
			},
			[]string{"action"},
		),
		RatingRecomputations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "directory_rating_recomputations_total",
				Help: "Place rating projections written",
			},
		),
		FavoriteWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_favorite_writes_total",
				Help: "Favorite writes by action",
			},
			[]string{"action"},
		),
		RecommendationResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_recommendations_total",
				Help: "Category recommendation lookups by outcome (hit, generated, error)",
			},
			[]string{"outcome"},
		),
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// NewRegistry returns a registry carrying the Go and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func (m *DirectoryMetrics) ReviewWritten(action string) {
	if m == nil {
		return
	}
	m.ReviewWrites.WithLabelValues(action).Inc()
}

func (m *DirectoryMetrics) RatingRecomputed() {
	if m == nil {
		return
	}
	m.RatingRecomputations.Inc()
}

func (m *DirectoryMetrics) FavoriteWritten(action string) {
	if m == nil {
		return
	}
	m.FavoriteWrites.WithLabelValues(action).Inc()
}

func (m *DirectoryMetrics) Recommendation(outcome string) {
	if m == nil {
		return
	}
	m.RecommendationResults.WithLabelValues(outcome).Inc()
}

func (m *DirectoryMetrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}
