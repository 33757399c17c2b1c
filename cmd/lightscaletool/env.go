package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/vearutop/lightscale"
)

// Environment values only provide flag defaults, explicit flags win.

func envUint(key string, def uint) uint {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 0)
	if err != nil {
		warnEnv(key, v, err)
		return def
	}
	return uint(u)
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		warnEnv(key, v, err)
		return def
	}
	return b
}

func envFloat(key string, def float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		warnEnv(key, v, err)
		return def
	}
	return f
}

func warnEnv(key, value string, err error) {
	lightscale.Logger().Warn("ignoring invalid environment value",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("error", err.Error()),
	)
}
