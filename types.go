package lightscale

import "github.com/vearutop/lightscale/internal/fixed8"

// Config describes the transfer curve of a Scale.
type Config struct {
	MaxIn     uint    // inclusive upper bound of input intensity, > 0
	MaxOut    uint    // upper bound of output value, > 0
	InvertOut bool    // output decreases as intensity increases
	Gamma     float32 // curve exponent, > 0; 1 means linear
}

// Segment is a linear correction over one span of intensities.
//
// Output is (intensity*Scale + Offset) / 256, rounded to nearest.
// Both fields carry 8 fractional bits, so 0x100 is 1.0.
//
// Tables for 8-bit ranges with gamma correction can need intercepts well beyond
// the 16-bit range (about -265, or -67948 in fixed point, for gamma 2.2), so the
// fields are 32-bit. Use Fits16 to check whether a table can be stored narrower.
type Segment struct {
	Scale  int32 `json:"scale"`
	Offset int32 `json:"offset"`
}

// Fits16 reports whether both fields fit signed 16-bit storage.
func (s Segment) Fits16() bool {
	return fixed8.Fits16(s.Scale) && fixed8.Fits16(s.Offset)
}

// Apply evaluates the segment at intensity.
func (s Segment) Apply(intensity uint) int64 {
	return fixed8.Round(int64(intensity)*int64(s.Scale) + int64(s.Offset))
}

// Gradient returns the slope of the segment as a float.
func (s Segment) Gradient() float64 {
	return fixed8.ToFloat(s.Scale)
}

// Intercept returns the output of the segment at intensity 0 as a float.
func (s Segment) Intercept() float64 {
	return fixed8.ToFloat(s.Offset)
}
