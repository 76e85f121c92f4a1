package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"commodity-forecast-engine/pipeline"
)

// Metrics holds the Prometheus instrumentation for the API layer plus the
// per-family fit quality gauges published once after the startup fit.
type Metrics struct {
	Requests          *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	Recomputations    prometheus.Counter
	RecomputeFailures prometheus.Counter
	ModelRMSE         *prometheus.GaugeVec
}

// NewMetrics registers the API collectors on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "forecast_http_requests_total",
			Help: "HTTP requests by path and method.",
		}, []string{"path", "method"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "forecast_http_request_duration_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		Recomputations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forecast_recomputations_total",
			Help: "Successful forecast recomputations.",
		}),
		RecomputeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forecast_recompute_failures_total",
			Help: "Rejected or failed forecast recomputations.",
		}),
		ModelRMSE: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "forecast_model_rmse",
			Help: "RMSE per fitted model family from the startup fit.",
		}, []string{"family", "kind"}),
	}
}

// ObserveWinners publishes the startup-fit scores. Called once; the values
// never change while the process runs.
func (m *Metrics) ObserveWinners(models *pipeline.FittedModels) {
	for _, res := range models.TimeSeriesReport {
		m.ModelRMSE.WithLabelValues(string(res.Family), "time_series").Set(res.Metrics.RMSE)
	}
	for _, res := range models.RegressionReport {
		m.ModelRMSE.WithLabelValues(string(res.Family), "regression").Set(res.Metrics.RMSE)
	}
}

// Middleware counts and times every API request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		m.Requests.WithLabelValues(r.URL.Path, r.Method).Inc()
		m.RequestDuration.WithLabelValues(r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
