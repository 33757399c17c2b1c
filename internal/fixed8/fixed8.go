// Package fixed8 holds the 8 fractional bit fixed-point arithmetic shared by the
// table builder and the evaluator.
package fixed8

import "math"

const (
	// Shift is the number of fractional bits.
	Shift = 8

	// One is 1.0 in fixed point.
	One = 1 << Shift

	// Half is 0.5 in fixed point, added before shifting to round to nearest.
	Half = One >> 1
)

// FromFloat converts v to fixed point, rounding half away from zero.
// Values outside the int32 range are saturated.
func FromFloat(v float64) int32 {
	r := math.Round(v * One)
	switch {
	case math.IsNaN(r):
		return 0
	case r > math.MaxInt32:
		return math.MaxInt32
	case r < math.MinInt32:
		return math.MinInt32
	}
	return int32(r)
}

// ToFloat converts a fixed-point value back to floating point.
func ToFloat(v int32) float64 {
	return float64(v) / One
}

// Round drops the fractional bits of v, rounding to nearest.
// The shift is arithmetic, so negative values round toward +Inf on ties.
func Round(v int64) int64 {
	return (v + Half) >> Shift
}

// Fits16 reports whether v can be stored in a signed 16-bit field.
func Fits16(v int32) bool {
	return v >= math.MinInt16 && v <= math.MaxInt16
}
