package lightscale

import (
	"errors"
	"fmt"
)

// TableBundle captures a built table so it can be restored without evaluating
// the transfer curve, for example on a device without floating point support.
type TableBundle struct {
	Format    string    `json:"format"`
	MaxIn     uint      `json:"max_in"`
	MaxOut    uint      `json:"max_out"`
	InvertOut bool      `json:"invert_out,omitempty"`
	Gamma     float32   `json:"gamma"`
	Segments  []Segment `json:"segments,omitempty"`
}

// TableBundleFormat exposes the current bundle format identifier.
func TableBundleFormat() string {
	return tableBundleFormat
}

// Bundle returns a serializable copy of the table.
func (s *Scale) Bundle() *TableBundle {
	cfg := s.Config()
	return &TableBundle{
		Format:    tableBundleFormat,
		MaxIn:     cfg.MaxIn,
		MaxOut:    cfg.MaxOut,
		InvertOut: cfg.InvertOut,
		Gamma:     cfg.Gamma,
		Segments:  s.Segments(),
	}
}

// Config returns the configuration recorded in the bundle.
func (b *TableBundle) Config() Config {
	return Config{
		MaxIn:     b.MaxIn,
		MaxOut:    b.MaxOut,
		InvertOut: b.InvertOut,
		Gamma:     b.Gamma,
	}
}

// Validate ensures the bundle describes a table New could have built.
func (b *TableBundle) Validate() error {
	if b == nil {
		return errors.New("table bundle is nil")
	}
	if b.Format == "" {
		return errors.New("table bundle missing format")
	}
	if b.Format != tableBundleFormat {
		return fmt.Errorf("unsupported table bundle format %q", b.Format)
	}
	cfg := b.Config()

	// A zero bundle comes from an identity Scale.
	if cfg == (Config{}) && len(b.Segments) == 0 {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if want := expectedLen(cfg); len(b.Segments) != want {
		return fmt.Errorf("%w: %d segments, want %d", ErrInvalidConfig, len(b.Segments), want)
	}
	return nil
}

// FromBundle restores a Scale from a bundle without rebuilding the table.
func FromBundle(b *TableBundle) (*Scale, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("table bundle: %w", err)
	}
	return &Scale{
		cfg:         b.Config(),
		corrections: append([]Segment(nil), b.Segments...),
	}, nil
}

// expectedLen returns the table length build produces for cfg.
func expectedLen(cfg Config) int {
	switch {
	case cfg.IsIdentity():
		return 0
	case cfg.Gamma == 1:
		return 1
	default:
		return int((cfg.MaxIn + Step - 1) / Step)
	}
}
