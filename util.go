package lightscale

import "math"

// Reference evaluates the exact transfer curve of cfg at intensity.
//
// It uses floating point and math.Pow, so it belongs to table construction and
// tooling, never to the evaluation path.
func Reference(cfg Config, intensity float64) float64 {
	v := intensity / float64(cfg.MaxIn)
	if cfg.Gamma != 1 {
		v = math.Pow(v, float64(cfg.Gamma))
	}
	v *= float64(cfg.MaxOut)

	if cfg.InvertOut {
		v = float64(cfg.MaxOut) - v
	}
	return v
}

// Output evaluates the exact transfer curve at an integer intensity.
func (c Config) Output(intensity uint) float64 {
	return Reference(c, float64(intensity))
}

// IsIdentity reports whether the configuration maps every intensity to itself.
func (c Config) IsIdentity() bool {
	return c.Gamma == 1 && c.MaxIn == c.MaxOut && !c.InvertOut
}
