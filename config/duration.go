package config

import (
	"encoding/json"
	"time"
)

// Duration wraps time.Duration so config files can spell timeouts as
// strings like "30s" or "2m".
type Duration struct {
	time.Duration
}

// MarshalJSON renders the duration in time.Duration's string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON parses a JSON string via time.ParseDuration.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
