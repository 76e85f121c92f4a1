package analytics

import "testing"

func TestEvaluateAlert_Triggered(t *testing.T) {
	state := EvaluateAlert([]float64{170, 175, 190}, 180)

	if !state.Triggered {
		t.Error("Alert should trigger when any point exceeds the threshold")
	}
	if state.Message != alertTriggeredMessage {
		t.Errorf("Unexpected message: %q", state.Message)
	}
	if state.Threshold != 180 {
		t.Errorf("State should echo the threshold, got %f", state.Threshold)
	}
}

func TestEvaluateAlert_Clear(t *testing.T) {
	state := EvaluateAlert([]float64{170, 175, 179}, 180)

	if state.Triggered {
		t.Error("Alert should not trigger when all points stay below the threshold")
	}
	if state.Message != alertClearMessage {
		t.Errorf("Unexpected message: %q", state.Message)
	}
}

func TestEvaluateAlert_ExactThreshold(t *testing.T) {
	// The comparison is strict: a point equal to the threshold is fine.
	state := EvaluateAlert([]float64{180, 180}, 180)
	if state.Triggered {
		t.Error("A point exactly at the threshold must not trigger")
	}
}

func TestEvaluateAlert_EmptyForecast(t *testing.T) {
	state := EvaluateAlert(nil, 180)
	if state.Triggered {
		t.Error("An empty forecast cannot trigger an alert")
	}
}
