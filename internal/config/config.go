// Package config loads the ambient process-wide settings from the
// environment, grounded on the teacher's collector.DefaultConfig style
// (a plain struct of defaults, overridable by the caller) generalized
// from CLI-flag defaults to env-var defaults for the long-running MCP
// server entry point.
package config

import (
	"os"
	"strconv"
)

// Config holds the process-wide defaults read once at startup.
type Config struct {
	// MaxSessions bounds how many concurrent Sessions the MCP server will
	// keep alive at once.
	MaxSessions int
	// NumWorkers is the default case runner worker pool size for sessions
	// that don't override it explicitly.
	NumWorkers int
	// LiteVersion is read from LITE_VERSION. No entry point passes it on
	// to new sessions, and a session's own lite flag changes neither its
	// cases nor its duration.
	LiteVersion bool
}

// Default returns the built-in defaults, used when no environment
// variable is set.
func Default() Config {
	return Config{
		MaxSessions: 8,
		NumWorkers:  4,
		LiteVersion: false,
	}
}

// FromEnv loads Config, starting from Default and overriding each field
// from MAX_SESSIONS, NUM_WORKERS, and LITE_VERSION when present. A
// malformed numeric value is ignored and the default is kept, rather than
// failing startup over one bad env var.
func FromEnv() Config {
	cfg := Default()
	if v, ok := lookupInt("MAX_SESSIONS"); ok {
		cfg.MaxSessions = v
	}
	if v, ok := lookupInt("NUM_WORKERS"); ok {
		cfg.NumWorkers = v
	}
	if v, ok := lookupBool("LITE_VERSION"); ok {
		cfg.LiteVersion = v
	}
	return cfg
}

func lookupInt(name string) (int, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lookupBool(name string) (bool, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
