// SPDX-License-Identifier: MIT

package viewer

import "math"

// Default mapping: positions [0, 140] ↔ coefficients [−70, 70].
const (
	DefaultBias  = 70
	DefaultRange = 140
)

// Mapping converts between signed coefficients and non-negative integer
// control positions: position = trunc(coefficient) + Bias, clipped into
// [0, Range]; coefficient = position − Bias.
type Mapping struct {
	Bias  int
	Range int
}

// DefaultMapping returns the 70/140 mapping.
func DefaultMapping() Mapping {
	return Mapping{Bias: DefaultBias, Range: DefaultRange}
}

// ToPosition maps a coefficient to a control position.
// The fractional part is truncated toward zero; NaN maps to Bias.
func (m Mapping) ToPosition(c float64) int {
	if math.IsNaN(c) {
		return m.clip(m.Bias)
	}
	shifted := math.Trunc(c) + float64(m.Bias)
	if shifted <= 0 {
		return 0
	}
	if shifted >= float64(m.Range) {
		return m.Range
	}

	return int(shifted)
}

// ToCoefficient maps a control position back to a signed coefficient.
// Positions outside [0, Range] are clipped first.
func (m Mapping) ToCoefficient(pos int) float64 {
	return float64(m.clip(pos) - m.Bias)
}

// Min returns the smallest representable coefficient.
func (m Mapping) Min() float64 { return float64(-m.Bias) }

// Max returns the largest representable coefficient.
func (m Mapping) Max() float64 { return float64(m.Range - m.Bias) }

func (m Mapping) clip(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > m.Range {
		return m.Range
	}

	return pos
}
