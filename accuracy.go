package lightscale

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Accuracy summarizes how closely a Scale follows its exact transfer curve over
// intensities 0..MaxIn. Errors are in output units, approximation minus exact.
type Accuracy struct {
	Samples int `json:"samples"`

	MaxAbsError   float64 `json:"max_abs_error"`
	MaxAbsErrorAt uint    `json:"max_abs_error_at"`
	MeanAbsError  float64 `json:"mean_abs_error"`
	StdDevError   float64 `json:"stddev_error"`
	P95AbsError   float64 `json:"p95_abs_error"`

	// BreakpointMaxAbsError is the largest error at the sampled breakpoints.
	BreakpointMaxAbsError float64 `json:"breakpoint_max_abs_error"`

	// Monotonic is true when outputs never move against the curve direction.
	Monotonic bool `json:"monotonic"`
	Fits16    bool `json:"fits16"`
}

// Accuracy evaluates the Scale at every intensity in 0..MaxIn and compares it
// with Reference. It is meant for tooling and tests, not for hot paths.
func (s *Scale) Accuracy() Accuracy {
	cfg := s.Config()
	res := Accuracy{
		Monotonic: true,
		Fits16:    s.Fits16(),
	}
	if cfg.MaxIn == 0 {
		return res
	}
	n := int(cfg.MaxIn) + 1
	signed := make([]float64, 0, n)
	abs := make([]float64, 0, n)

	prev := s.Raw(0)

	for x := uint(0); x <= cfg.MaxIn; x++ {
		got := s.Raw(x)
		e := float64(got) - cfg.Output(x)

		signed = append(signed, e)
		abs = append(abs, math.Abs(e))

		if math.Abs(e) > res.MaxAbsError {
			res.MaxAbsError = math.Abs(e)
			res.MaxAbsErrorAt = x
		}
		if (cfg.InvertOut && got > prev) || (!cfg.InvertOut && got < prev) {
			res.Monotonic = false
		}
		prev = got
	}
	for _, x := range s.Breakpoints() {
		if x >= uint(len(abs)) {
			continue
		}
		if e := abs[x]; e > res.BreakpointMaxAbsError {
			res.BreakpointMaxAbsError = e
		}
	}
	res.Samples = n
	res.MeanAbsError = stats.Mean(abs)
	res.StdDevError = stats.StdDev(signed)

	sample := stats.Sample{Xs: abs}
	res.P95AbsError = sample.Sort().Quantile(0.95)
	return res
}

// Breakpoints lists the intensities the table was sampled at, in increasing order.
// Identity scales have none.
func (s *Scale) Breakpoints() []uint {
	n := s.Len()
	if n == 0 {
		return nil
	}
	maxIn := s.Config().MaxIn
	if n == 1 {
		return []uint{0, maxIn}
	}
	points := make([]uint, 0, n+1)
	for i := 0; i < n; i++ {
		points = append(points, uint(i)*Step)
	}
	return append(points, maxIn)
}
