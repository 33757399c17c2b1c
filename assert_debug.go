//go:build lightscale_debug

package lightscale

const debugAssertions = true

// assertConfig panics on configurations that produce degenerate tables.
func assertConfig(cfg Config) {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
}
