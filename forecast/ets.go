package forecast

import (
	"errors"
	"fmt"
	"math"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/dataset"
)

// ETSConfig controls the exponential-smoothing form search.
type ETSConfig struct {
	Confidence float64 `json:"confidence"`
}

// DefaultETSConfig returns the standard 95% interval configuration.
func DefaultETSConfig() ETSConfig {
	return ETSConfig{Confidence: 0.95}
}

// ETS fits an exponential-smoothing model, automatically choosing between
// simple smoothing and Holt's linear trend and searching a fixed grid of
// smoothing parameters by one-step squared error.
type ETS struct {
	cfg    ETSConfig
	alpha  float64
	beta   float64
	trendy bool

	level  float64
	trend  float64
	fitted []float64
	sigma  float64
}

// NewETS creates an unfitted ETS family member.
func NewETS(cfg ETSConfig) *ETS {
	return &ETS{cfg: cfg}
}

func (e *ETS) Family() analytics.ModelFamily { return analytics.FamilyETS }

// Fit searches the smoothing grid for both forms and keeps the candidate
// with the lowest in-sample one-step SSE.
func (e *ETS) Fit(s *dataset.Series) error {
	values := s.Values()
	if len(values) < 8 {
		return fmt.Errorf("need at least 8 observations, have %d", len(values))
	}

	bestSSE := math.Inf(1)
	grid := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}

	for _, trendy := range []bool{false, true} {
		betas := []float64{0}
		if trendy {
			betas = grid
		}
		for _, alpha := range grid {
			for _, beta := range betas {
				fitted, level, trend, sse := smooth(values, alpha, beta, trendy)
				if sse < bestSSE {
					bestSSE = sse
					e.alpha, e.beta, e.trendy = alpha, beta, trendy
					e.level, e.trend = level, trend
					e.fitted = fitted
				}
			}
		}
	}

	if math.IsInf(bestSSE, 1) || math.IsNaN(bestSSE) {
		return errors.New("smoothing grid produced no finite candidate")
	}
	e.sigma = math.Sqrt(bestSSE / float64(len(e.fitted)))
	return nil
}

// smooth runs one smoothing pass. fitted[t] is the one-step prediction of
// values[t+1] made at t, so fitted aligns with the series at offset 1.
func smooth(values []float64, alpha, beta float64, trendy bool) (fitted []float64, level, trend, sse float64) {
	level = values[0]
	if trendy {
		trend = values[1] - values[0]
	}
	fitted = make([]float64, len(values)-1)
	for t := 1; t < len(values); t++ {
		pred := level + trend
		fitted[t-1] = pred
		err := values[t] - pred
		sse += err * err

		prevLevel := level
		level = alpha*values[t] + (1-alpha)*(level+trend)
		if trendy {
			trend = beta*(level-prevLevel) + (1-beta)*trend
		}
	}
	return fitted, level, trend, sse
}

func (e *ETS) Fitted() ([]float64, int) {
	fitted := make([]float64, len(e.fitted))
	copy(fitted, e.fitted)
	return fitted, 1
}

// Forecast extrapolates the final smoothing state h steps ahead.
func (e *ETS) Forecast(horizon int) (*analytics.Forecast, error) {
	if e.fitted == nil {
		return nil, errors.New("model not fitted")
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be at least 1, got %d", horizon)
	}
	z := zScore(e.cfg.Confidence)
	points := make([]float64, horizon)
	lower := make([]float64, horizon)
	upper := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		p := e.level + float64(h)*e.trend
		half := z * e.sigma * math.Sqrt(float64(h))
		points[h-1] = p
		lower[h-1] = p - half
		upper[h-1] = p + half
	}
	return &analytics.Forecast{Points: points, Lower: lower, Upper: upper, Horizon: horizon}, nil
}

// Form reports the selected smoothing form and parameters once fitted.
func (e *ETS) Form() (trend bool, alpha, beta float64) {
	return e.trendy, e.alpha, e.beta
}
