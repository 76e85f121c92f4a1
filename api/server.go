package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/pipeline"
)

// Server exposes the fitted pipeline over HTTP. The models behind it are
// read-only; the only mutable state is the last recompute result, guarded
// by mu.
type Server struct {
	router  *mux.Router
	models  *pipeline.FittedModels
	log     logrus.FieldLogger
	metrics *Metrics

	mu   sync.Mutex
	last *pipeline.Result
}

// NewServer creates an API server over an already-fitted model bundle.
func NewServer(models *pipeline.FittedModels, log logrus.FieldLogger, rateLimit float64, rateBurst int) *Server {
	server := &Server{
		router:  mux.NewRouter(),
		models:  models,
		log:     log,
		metrics: NewMetrics(),
	}
	server.metrics.ObserveWinners(models)
	server.setupRoutes(rateLimit, rateBurst)
	return server
}

// ServeHTTP implements the http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	// Handle preflight requests
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	s.router.ServeHTTP(w, r)
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes(rateLimit float64, rateBurst int) {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(rateLimitMiddleware(rateLimit, rateBurst))
	api.Use(s.metrics.Middleware)

	api.HandleFunc("/recompute", s.recompute).Methods("POST")
	api.HandleFunc("/models", s.listModels).Methods("GET")
	api.HandleFunc("/features", s.listFeatures).Methods("GET")
	api.HandleFunc("/result", s.lastResult).Methods("GET")

	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	s.router.HandleFunc("/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/", s.rootHandler).Methods("GET")
}

var startTime = time.Now()

// recompute runs the dynamic forecast, optional sensitivity pass and alert
// check against the fitted models. Requests are serialized so the stored
// result always reflects exactly one recomputation; a failed request leaves
// the previous result in place.
func (s *Server) recompute(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %v", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.models.Recompute(req)
	if err != nil {
		s.metrics.RecomputeFailures.Inc()
		s.log.WithError(err).Warn("recompute rejected")
		if errors.Is(err, pipeline.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.last = result
	s.metrics.Recomputations.Inc()
	writeJSON(w, http.StatusOK, result)
}

// ModelsResponse lists every fitted family with its scores, plus the
// selected winners.
type ModelsResponse struct {
	TimeSeries       []familySummary `json:"time_series"`
	Regression       []familySummary `json:"regression"`
	TimeSeriesWinner string          `json:"time_series_winner"`
	RegressionWinner string          `json:"regression_winner"`
}

type familySummary struct {
	Family string  `json:"family"`
	RMSE   float64 `json:"rmse"`
	MAE    float64 `json:"mae"`
	MAPE   float64 `json:"mape,omitempty"`
	R2     float64 `json:"r2,omitempty"`
}

// listModels returns the per-family evaluation report from the startup fit.
func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	resp := ModelsResponse{
		TimeSeriesWinner: string(s.models.TimeSeriesWinner.Family),
		RegressionWinner: string(s.models.RegressionWinner.Family),
	}
	for _, res := range s.models.TimeSeriesReport {
		resp.TimeSeries = append(resp.TimeSeries, summarize(res))
	}
	for _, res := range s.models.RegressionReport {
		resp.Regression = append(resp.Regression, summarize(res))
	}
	writeJSON(w, http.StatusOK, resp)
}

// FeaturesResponse reports the importance ranking and the predictor subset
// the regression bank was trained on.
type FeaturesResponse struct {
	Ranking  []featureScore `json:"ranking"`
	Selected []string       `json:"selected"`
}

type featureScore struct {
	Feature string  `json:"feature"`
	Score   float64 `json:"score"`
}

// listFeatures returns the predictor importance ranking.
func (s *Server) listFeatures(w http.ResponseWriter, r *http.Request) {
	resp := FeaturesResponse{Selected: s.models.Selected}
	for _, fs := range s.models.Ranking {
		resp.Ranking = append(resp.Ranking, featureScore{Feature: fs.Feature, Score: fs.Score})
	}
	writeJSON(w, http.StatusOK, resp)
}

// lastResult returns the most recent successful recomputation.
func (s *Server) lastResult(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		writeError(w, http.StatusNotFound, "no recomputation has run yet")
		return
	}
	writeJSON(w, http.StatusOK, last)
}

// healthCheck returns health status
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
		"reference": s.models.Engine.Reference().String(),
	}
	writeJSON(w, http.StatusOK, health)
}

// rootHandler provides API information
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "Commodity Forecast Engine",
		"version":     "0.1.0",
		"description": "Commodity price-index model evaluation and dynamic forecasting",
		"endpoints": map[string]string{
			"POST /api/v1/recompute": "Recompute forecast, sensitivity and alert",
			"GET  /api/v1/models":    "Fitted model families and their scores",
			"GET  /api/v1/features":  "Predictor importance ranking",
			"GET  /api/v1/result":    "Last recomputation result",
			"GET  /metrics":          "Prometheus metrics",
			"GET  /health":           "Health check",
		},
	}
	writeJSON(w, http.StatusOK, info)
}

func summarize(res analytics.EvaluationResult) familySummary {
	s := familySummary{
		Family: string(res.Family),
		RMSE:   res.Metrics.RMSE,
		MAE:    res.Metrics.MAE,
	}
	if res.Metrics.MAPEDefined {
		s.MAPE = res.Metrics.MAPE
	}
	if res.Metrics.R2Defined {
		s.R2 = res.Metrics.R2
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
