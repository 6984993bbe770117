// Package env reads configuration from environment variables.
package env

import (
	"os"
	"strconv"
	"time"
)

func GetOrDefault(name, def string) string {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def
	}
	return v
}

func GetIntOrDefault(name string, def int) int {
	n, err := strconv.Atoi(GetOrDefault(name, ""))
	if err != nil {
		return def
	}
	return n
}

// GetDurationOrDefault accepts time.ParseDuration syntax.
func GetDurationOrDefault(name string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(GetOrDefault(name, ""))
	if err != nil {
		return def
	}
	return d
}
