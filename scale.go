package lightscale

import (
	"log/slog"

	"github.com/vearutop/lightscale/internal/fixed8"
)

// Scale converts light intensity to output values using a precomputed table of
// linear segments.
//
// A Scale is immutable after construction and safe for concurrent use.
// The zero value and a nil *Scale pass intensity through unchanged.
type Scale struct {
	cfg         Config
	corrections []Segment
}

// Identity returns a Scale that applies no correction.
func Identity() *Scale {
	return &Scale{}
}

// New builds a Scale for the given ranges and gamma.
//
// maxIn, maxOut and gamma must be positive, otherwise the table is degenerate.
// Use Config.Validate to check values that come from outside the program.
func New(maxIn, maxOut uint, invertOut bool, gamma float32) *Scale {
	return NewWithConfig(Config{
		MaxIn:     maxIn,
		MaxOut:    maxOut,
		InvertOut: invertOut,
		Gamma:     gamma,
	})
}

// NewWithConfig builds a Scale from cfg, see New.
func NewWithConfig(cfg Config) *Scale {
	assertConfig(cfg)

	s := &Scale{
		cfg:         cfg,
		corrections: build(cfg),
	}
	Logger().Debug("lightscale: table built",
		slog.Uint64("max_in", uint64(cfg.MaxIn)),
		slog.Uint64("max_out", uint64(cfg.MaxOut)),
		slog.Bool("invert", cfg.InvertOut),
		slog.Float64("gamma", float64(cfg.Gamma)),
		slog.Int("segments", len(s.corrections)),
	)
	return s
}

func build(cfg Config) []Segment {
	if cfg.IsIdentity() {
		return nil
	}
	step := uint(Step)
	if cfg.Gamma == 1 {
		// The curve is a line, one segment reproduces it exactly.
		step = cfg.MaxIn
	}
	if step == 0 {
		return nil
	}
	corrections := make([]Segment, 0, (cfg.MaxIn+step-1)/step)

	prevIn := uint(0)
	prev := cfg.Output(prevIn)

	for prevIn < cfg.MaxIn {
		nextIn := prevIn + step
		if nextIn > cfg.MaxIn {
			nextIn = cfg.MaxIn
		}
		next := cfg.Output(nextIn)

		// Line through both samples, anchored at the far one.
		gradient := (next - prev) / float64(nextIn-prevIn)
		intercept := next - gradient*float64(nextIn)

		corrections = append(corrections, Segment{
			Scale:  fixed8.FromFloat(gradient),
			Offset: fixed8.FromFloat(intercept),
		})

		prevIn, prev = nextIn, next
	}
	return corrections
}

// Value returns the output value for intensity.
//
// The result is not clamped. Intensities beyond the tabulated range follow the
// last segment and can overshoot MaxOut. A negative result, which only an
// inverted curve can produce when extrapolated, wraps around as unsigned
// arithmetic does; use Raw to observe it.
func (s *Scale) Value(intensity uint) uint {
	return uint(s.Raw(intensity))
}

// Raw returns the signed output value for intensity, see Value.
func (s *Scale) Raw(intensity uint) int64 {
	if s == nil {
		return int64(intensity)
	}
	switch len(s.corrections) {
	case 0:
		return int64(intensity)
	case 1:
		return s.corrections[0].Apply(intensity)
	}
	index := intensity >> StepBits
	if index < uint(len(s.corrections)) {
		return s.corrections[index].Apply(intensity)
	}
	return s.corrections[len(s.corrections)-1].Apply(intensity)
}

// Len returns the number of segments in the table.
func (s *Scale) Len() int {
	if s == nil {
		return 0
	}
	return len(s.corrections)
}

// Segments returns a copy of the segment table.
func (s *Scale) Segments() []Segment {
	if s == nil || len(s.corrections) == 0 {
		return nil
	}
	return append([]Segment(nil), s.corrections...)
}

// Config returns the configuration the Scale was built from.
// It is the zero Config for identity scales made with Identity or a zero value.
func (s *Scale) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.cfg
}

// IsIdentity reports whether the Scale passes intensity through unchanged.
func (s *Scale) IsIdentity() bool {
	return s.Len() == 0
}

// Fits16 reports whether every segment fits signed 16-bit fields.
func (s *Scale) Fits16() bool {
	for _, c := range s.Segments() {
		if !c.Fits16() {
			return false
		}
	}
	return true
}
