package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/goarima/autoarima"
	gots "github.com/sartorproj/goarima/timeseries"
	"gonum.org/v1/gonum/stat"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/dataset"
)

// ARIMAConfig bounds the automatic order search.
type ARIMAConfig struct {
	MaxP       int     `json:"max_p"`
	MaxD       int     `json:"max_d"`
	MaxQ       int     `json:"max_q"`
	Seasonal   bool    `json:"seasonal"`
	Period     int     `json:"period"`
	Confidence float64 `json:"confidence"`
}

// DefaultARIMAConfig returns the stepwise AIC search bounds used by the
// pipeline. Monthly runs stay non-seasonal by default; five years of
// observations is thin for a seasonal order search.
func DefaultARIMAConfig() ARIMAConfig {
	return ARIMAConfig{MaxP: 5, MaxD: 2, MaxQ: 5, Period: 12, Confidence: 0.95}
}

// ARIMA fits an automatically ordered ARIMA model to the index series.
type ARIMA struct {
	cfg    ARIMAConfig
	result *autoarima.Result
	fitted []float64
	offset int
	sigma  float64
}

// NewARIMA creates an unfitted ARIMA family member.
func NewARIMA(cfg ARIMAConfig) *ARIMA {
	return &ARIMA{cfg: cfg}
}

func (a *ARIMA) Family() analytics.ModelFamily { return analytics.FamilyARIMA }

// Fit runs the stepwise order search and derives one-step-ahead fitted
// values on the original scale. One-step residuals are identical on the
// differenced and original scales, so the reconstruction subtracts the
// residual from the observation it belongs to.
func (a *ARIMA) Fit(s *dataset.Series) error {
	values := s.Values()
	if len(values) < 20 {
		return fmt.Errorf("need at least 20 observations, have %d", len(values))
	}

	searchCfg := autoarima.DefaultConfig()
	searchCfg.MaxP = a.cfg.MaxP
	searchCfg.MaxD = a.cfg.MaxD
	searchCfg.MaxQ = a.cfg.MaxQ
	searchCfg.Seasonal = a.cfg.Seasonal
	searchCfg.SeasonalM = a.cfg.Period

	result, err := autoarima.AutoARIMA(gots.New(values), searchCfg)
	if err != nil {
		return err
	}
	if result == nil || (result.Model == nil && result.SeasonalModel == nil) {
		return errors.New("order search converged on no candidate model")
	}

	residuals := result.Residuals()
	if len(residuals) == 0 || len(residuals) > len(values) {
		return errors.New("fit produced no residuals")
	}

	offset := len(values) - len(residuals)
	fitted := make([]float64, len(residuals))
	for i := range residuals {
		fitted[i] = values[offset+i] - residuals[i]
	}

	a.result = result
	a.fitted = fitted
	a.offset = offset
	a.sigma = math.Sqrt(stat.Variance(residuals, nil))
	return nil
}

func (a *ARIMA) Fitted() ([]float64, int) {
	fitted := make([]float64, len(a.fitted))
	copy(fitted, a.fitted)
	return fitted, a.offset
}

// Forecast regenerates an h-step point forecast with normal-approximation
// interval bounds widening with √h. No refitting happens here.
func (a *ARIMA) Forecast(horizon int) (*analytics.Forecast, error) {
	if a.result == nil {
		return nil, errors.New("model not fitted")
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be at least 1, got %d", horizon)
	}
	points, err := a.result.Predict(horizon)
	if err != nil {
		return nil, err
	}
	z := zScore(a.cfg.Confidence)
	lower := make([]float64, horizon)
	upper := make([]float64, horizon)
	for i, p := range points {
		half := z * a.sigma * math.Sqrt(float64(i+1))
		lower[i] = p - half
		upper[i] = p + half
	}
	return &analytics.Forecast{Points: points, Lower: lower, Upper: upper, Horizon: horizon}, nil
}

// Order reports the selected (p, d, q) once fitted.
func (a *ARIMA) Order() (p, d, q int) {
	if a.result == nil {
		return 0, 0, 0
	}
	return a.result.P, a.result.D, a.result.Q
}
