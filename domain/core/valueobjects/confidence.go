package valueobjects

import (
	"fmt"
	"math"
)

// Confidence is a detection score stored as a fraction in [0, 1].
// Conversion to a percentage happens only in Percent and Label.
type Confidence float64

// NewConfidence validates the fraction range
func NewConfidence(v float64) (Confidence, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("confidence must be within [0, 1], got %v", v)
	}
	return Confidence(v), nil
}

// Fraction returns the stored value
func (c Confidence) Fraction() float64 {
	return float64(c)
}

// Percent returns the score scaled to a whole percentage
func (c Confidence) Percent() int {
	return int(math.Round(float64(c) * 100))
}

// Label renders the score for display, e.g. 0.95 -> "95%"
func (c Confidence) Label() string {
	return fmt.Sprintf("%d%%", c.Percent())
}
