package lightscale

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Config.Validate and FromBundle for
// configurations that cannot produce a meaningful table.
var ErrInvalidConfig = errors.New("invalid lightscale config")

// Validate checks the documented preconditions of New.
//
// New itself never fails, callers that take configuration from users or
// files should validate it first.
func (c Config) Validate() error {
	switch {
	case c.MaxIn == 0:
		return fmt.Errorf("%w: max in must be positive", ErrInvalidConfig)
	case c.MaxOut == 0:
		return fmt.Errorf("%w: max out must be positive", ErrInvalidConfig)
	case math.IsNaN(float64(c.Gamma)) || math.IsInf(float64(c.Gamma), 0):
		return fmt.Errorf("%w: gamma must be finite, got %v", ErrInvalidConfig, c.Gamma)
	case c.Gamma <= 0:
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidConfig, c.Gamma)
	}
	return nil
}
