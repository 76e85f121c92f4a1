package forecast

import (
	"math/rand"
	"testing"

	"commodity-forecast-engine/dataset"
)

func TestARIMA_TooShort(t *testing.T) {
	model := NewARIMA(DefaultARIMAConfig())
	if err := model.Fit(linearSeries(t, 12, 100, 1)); err == nil {
		t.Error("Fewer than 20 observations should fail the fit")
	}
}

func TestARIMA_ForecastBeforeFit(t *testing.T) {
	model := NewARIMA(DefaultARIMAConfig())
	if _, err := model.Forecast(12); err == nil {
		t.Error("Forecasting an unfitted model should fail")
	}
}

func TestARIMA_FitAndForecast(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 72)
	for i := range values {
		values[i] = 100 + 1.2*float64(i) + rng.NormFloat64()*3
	}
	s, err := dataset.NewSeries("index", dataset.Month{Year: 2018, Month: 1}, values)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}

	model := NewARIMA(DefaultARIMAConfig())
	if err := model.Fit(s); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fitted, offset := model.Fitted()
	if len(fitted) == 0 {
		t.Fatal("Fit should produce in-sample fitted values")
	}
	if offset < 0 || offset+len(fitted) != len(values) {
		t.Fatalf("Fitted values must align with the series tail: offset %d, %d values", offset, len(fitted))
	}

	fc, err := model.Forecast(12)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if fc.Horizon != 12 || len(fc.Points) != 12 {
		t.Fatalf("Expected a 12-step forecast, got %+v", fc)
	}
	for i := range fc.Points {
		if fc.Lower[i] > fc.Points[i] || fc.Upper[i] < fc.Points[i] {
			t.Fatalf("Point %d outside its own interval: [%f, %f] vs %f", i, fc.Lower[i], fc.Upper[i], fc.Points[i])
		}
	}
	first := fc.Upper[0] - fc.Lower[0]
	last := fc.Upper[11] - fc.Lower[11]
	if last < first {
		t.Errorf("Interval width should not shrink with horizon: %f vs %f", first, last)
	}
}
