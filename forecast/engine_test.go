package forecast

import (
	"errors"
	"fmt"
	"testing"

	"commodity-forecast-engine/analytics"
	"commodity-forecast-engine/dataset"
)

// stubModel returns canned fitted values and forecasts, or a canned error.
type stubModel struct {
	family  analytics.ModelFamily
	fitErr  error
	fitted  []float64
	offset  int
	horizon int
}

func (m *stubModel) Family() analytics.ModelFamily { return m.family }

func (m *stubModel) Fit(s *dataset.Series) error { return m.fitErr }

func (m *stubModel) Fitted() ([]float64, int) { return m.fitted, m.offset }

func (m *stubModel) Forecast(horizon int) (*analytics.Forecast, error) {
	m.horizon = horizon
	points := make([]float64, horizon)
	for i := range points {
		points[i] = 100 + float64(i)
	}
	return &analytics.Forecast{Points: points, Lower: points, Upper: points, Horizon: horizon}, nil
}

func TestHorizonBetween(t *testing.T) {
	ref := dataset.Month{Year: 2024, Month: 1}

	h, err := HorizonBetween(ref, dataset.Month{Year: 2025, Month: 12})
	if err != nil {
		t.Fatalf("HorizonBetween failed: %v", err)
	}
	if h != 23 {
		t.Errorf("2024-01 to 2025-12 should be horizon 23, got %d", h)
	}
}

func TestHorizonBetween_PastTarget(t *testing.T) {
	ref := dataset.Month{Year: 2024, Month: 1}

	for _, target := range []dataset.Month{
		{Year: 2023, Month: 6},
		{Year: 2024, Month: 1}, // same month is not in the future
	} {
		_, err := HorizonBetween(ref, target)
		if !errors.Is(err, ErrInvalidHorizon) {
			t.Errorf("Target %s should yield ErrInvalidHorizon, got %v", target, err)
		}
	}
}

func TestHorizonBetween_BadMonth(t *testing.T) {
	ref := dataset.Month{Year: 2024, Month: 1}

	for _, month := range []int{0, 13, -1} {
		_, err := HorizonBetween(ref, dataset.Month{Year: 2025, Month: month})
		if err == nil {
			t.Errorf("Month %d should be rejected", month)
		}
		if errors.Is(err, ErrInvalidHorizon) {
			t.Errorf("Month %d is malformed input, not a past target", month)
		}
	}
}

func newTestEngine(t *testing.T, n int) *Engine {
	t.Helper()
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(100 + i)
	}
	s, err := dataset.NewSeries("index", dataset.Month{Year: 2023, Month: 1}, values)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}
	return NewEngine(&stubModel{family: "stub"}, s)
}

func TestEngine_ReferenceIsSeriesEnd(t *testing.T) {
	engine := newTestEngine(t, 13) // 2023-01 .. 2024-01

	if engine.Reference() != (dataset.Month{Year: 2024, Month: 1}) {
		t.Errorf("Reference should be the series end, got %s", engine.Reference())
	}
}

func TestEngine_ForecastTo(t *testing.T) {
	engine := newTestEngine(t, 13) // reference 2024-01

	fc, err := engine.ForecastTo(dataset.Month{Year: 2024, Month: 7})
	if err != nil {
		t.Fatalf("ForecastTo failed: %v", err)
	}
	if fc.Horizon != 6 {
		t.Errorf("Expected horizon 6, got %d", fc.Horizon)
	}
}

func TestEngine_ForecastTo_Past(t *testing.T) {
	engine := newTestEngine(t, 13)

	_, err := engine.ForecastTo(dataset.Month{Year: 2023, Month: 6})
	if !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("Expected ErrInvalidHorizon, got %v", err)
	}
}

func TestEngine_WindowedForecastTo(t *testing.T) {
	engine := newTestEngine(t, 13)

	wf, err := engine.WindowedForecastTo(dataset.Month{Year: 2024, Month: 4}, 5)
	if err != nil {
		t.Fatalf("WindowedForecastTo failed: %v", err)
	}
	if wf.Horizon != 3 {
		t.Errorf("Expected horizon 3, got %d", wf.Horizon)
	}
	if len(wf.History) != 5 {
		t.Errorf("Expected 5 history points, got %d", len(wf.History))
	}
	if wf.History[4].Period != engine.Reference() {
		t.Errorf("History should end at the reference month, got %s", wf.History[4].Period)
	}
}

func TestEngine_WindowClampedToHistory(t *testing.T) {
	engine := newTestEngine(t, 13)

	wf, err := engine.WindowedForecastTo(dataset.Month{Year: 2024, Month: 4}, 500)
	if err != nil {
		t.Fatalf("WindowedForecastTo failed: %v", err)
	}
	if len(wf.History) != 13 {
		t.Errorf("Window should clamp to the 13 available points, got %d", len(wf.History))
	}
}

func TestEngine_RepeatedCallsIndependent(t *testing.T) {
	engine := newTestEngine(t, 13)

	for i, target := range []dataset.Month{
		{Year: 2024, Month: 3},
		{Year: 2024, Month: 13}, // invalid month
		{Year: 2025, Month: 1},
	} {
		fc, err := engine.ForecastTo(target)
		if i == 1 {
			if err == nil {
				t.Error("Invalid target should fail")
			}
			continue
		}
		if err != nil {
			t.Fatalf("Call %d failed: %v", i, err)
		}
		want := fmt.Sprintf("horizon %d", (target.Year-2024)*12+target.Month-1)
		got := fmt.Sprintf("horizon %d", fc.Horizon)
		if got != want {
			t.Errorf("Call %d: expected %s, got %s", i, want, got)
		}
	}
}
