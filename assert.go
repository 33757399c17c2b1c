//go:build !lightscale_debug

package lightscale

const debugAssertions = false

func assertConfig(Config) {}
