package kernel

import (
	"math"

	"courierhub/internal/pkg/errs"
)

const (
	minPercent = 0
	maxPercent = 100
)

// RoundAmount rounds a money amount half away from zero to two decimals.
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent is a share in [0, 100].
type Percent struct {
	value float64
}

// NewPercent validates v against [0, 100].
//
// Example:
//
//	p, err := kernel.NewPercent(12.5)
//	if err != nil {
//	    return err
//	}
//	fee := p.Of(40) // 5
func NewPercent(v float64) (Percent, error) {
	if math.IsNaN(v) || v < minPercent || v > maxPercent {
		return Percent{}, errs.NewValueIsOutOfRangeError("percent", v, minPercent, maxPercent)
	}
	return Percent{value: v}, nil
}

// Value returns the raw percentage.
func (p Percent) Value() float64 {
	return p.value
}

// Of returns amount × p / 100 rounded to two decimals.
func (p Percent) Of(amount float64) float64 {
	return RoundAmount(amount * p.value / maxPercent)
}
