/*
Package glucose owns the weekly glucose chart: the 7-day window the
patient is looking at, the readings shown for it, and how each reading
is classified for display.
*/
package glucose

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Reading is a single glucose measurement in mg/dL.
type Reading struct {
	Value float64   `json:"value"`
	Date  time.Time `json:"date"`
}

// Status is the display band a reading falls into.
type Status string

const (
	StatusNormal        Status = "normal"
	StatusElevated      Status = "elevated"
	StatusDangerousHigh Status = "dangerous_high"
	StatusDangerousLow  Status = "dangerous_low"
)

// Chart thresholds in mg/dL.
const (
	DangerousHighAbove = 180
	ElevatedAbove      = 140
	DangerousLowBelow  = 70

	// ChartMax is the value drawn as a full-height bar.
	ChartMax = 250
)

// Classify maps a reading to its band. 180 is still elevated and 70 is
// still normal; the dashboard colours depend on these exact edges.
func Classify(value float64) Status {
	switch {
	case value > DangerousHighAbove:
		return StatusDangerousHigh
	case value > ElevatedAbove:
		return StatusElevated
	case value < DangerousLowBelow:
		return StatusDangerousLow
	default:
		return StatusNormal
	}
}

// Label returns the Spanish legend text for the band.
func (s Status) Label() string {
	switch s {
	case StatusElevated:
		return "Elevado"
	case StatusDangerousHigh, StatusDangerousLow:
		return "Peligroso"
	default:
		return "Normal"
	}
}

// Color returns the CSS variable used to paint the band.
func (s Status) Color() string {
	switch s {
	case StatusElevated:
		return "--yellow-warning"
	case StatusDangerousHigh, StatusDangerousLow:
		return "--red-alert"
	default:
		return "--green-success"
	}
}

// IsDangerous reports whether the band needs the alert colour.
func (s Status) IsDangerous() bool {
	return s == StatusDangerousHigh || s == StatusDangerousLow
}

// BarHeightPercent is the bar height relative to ChartMax, capped at 100.
func BarHeightPercent(value float64) float64 {
	if value <= 0 {
		return 0
	}
	return math.Min(value/ChartMax*100, 100)
}

// ParseReadingValue parses user input for a new reading. ok is false for
// anything that is not a finite number; callers drop those silently.
func ParseReadingValue(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Average returns the mean value of the readings, or 0 for none.
func Average(readings []Reading) float64 {
	if len(readings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range readings {
		sum += r.Value
	}
	return sum / float64(len(readings))
}
