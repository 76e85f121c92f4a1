package analytics

// AlertState is the outcome of checking a forecast against a threshold.
// It is derived, never persisted, and recomputed whenever the forecast
// changes.
type AlertState struct {
	Threshold float64 `json:"threshold"`
	Triggered bool    `json:"triggered"`
	Message   string  `json:"message"`
}

const (
	alertTriggeredMessage = "ALERT: forecasted index exceeds the configured threshold"
	alertClearMessage     = "Forecasted index stays within the configured threshold"
)

// EvaluateAlert reports whether any forecast point strictly exceeds the
// threshold. Pure and stateless.
func EvaluateAlert(points []float64, threshold float64) AlertState {
	state := AlertState{Threshold: threshold, Message: alertClearMessage}
	for _, p := range points {
		if p > threshold {
			state.Triggered = true
			state.Message = alertTriggeredMessage
			break
		}
	}
	return state
}
