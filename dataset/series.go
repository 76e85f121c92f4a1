package dataset

import (
	"fmt"
	"time"
)

// Month identifies one monthly observation period.
type Month struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1..12
}

// MonthOf extracts the period of a timestamp.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

// Valid reports whether the month number is in 1..12.
func (m Month) Valid() bool {
	return m.Month >= 1 && m.Month <= 12
}

// AddMonths returns the period n months after m. n may be negative.
func (m Month) AddMonths(n int) Month {
	idx := m.Year*12 + (m.Month - 1) + n
	return Month{Year: idx / 12, Month: idx%12 + 1}
}

// MonthsUntil returns the signed number of months from m to target.
func (m Month) MonthsUntil(target Month) int {
	return (target.Year-m.Year)*12 + (target.Month - m.Month)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Point is a single monthly observation.
type Point struct {
	Period Month   `json:"period"`
	Value  float64 `json:"value"`
}

// Series is an ordered monthly sequence with no gaps. It is immutable once
// constructed; accessors return copies.
type Series struct {
	name   string
	start  Month
	values []float64
}

// NewSeries builds a gap-free monthly series starting at start.
func NewSeries(name string, start Month, values []float64) (*Series, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("invalid start month %d", start.Month)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("series %q has no observations", name)
	}
	v := make([]float64, len(values))
	copy(v, values)
	return &Series{name: name, start: start, values: v}, nil
}

// Name returns the series identifier.
func (s *Series) Name() string { return s.name }

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.values) }

// Start returns the first observation period.
func (s *Series) Start() Month { return s.start }

// End returns the final observation period.
func (s *Series) End() Month {
	return s.start.AddMonths(len(s.values) - 1)
}

// Values returns a copy of the observation values in order.
func (s *Series) Values() []float64 {
	v := make([]float64, len(s.values))
	copy(v, s.values)
	return v
}

// At returns the i-th observation.
func (s *Series) At(i int) Point {
	return Point{Period: s.start.AddMonths(i), Value: s.values[i]}
}

// Latest returns up to count trailing points; count is clamped to the
// available history.
func (s *Series) Latest(count int) []Point {
	if count <= 0 {
		return nil
	}
	if count > len(s.values) {
		count = len(s.values)
	}
	offset := len(s.values) - count
	points := make([]Point, count)
	for i := 0; i < count; i++ {
		points[i] = s.At(offset + i)
	}
	return points
}
