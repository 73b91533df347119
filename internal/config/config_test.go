package config

import "testing"

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.MaxSessions != 8 || cfg.NumWorkers != 4 || cfg.LiteVersion {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MAX_SESSIONS", "16")
	t.Setenv("NUM_WORKERS", "2")
	t.Setenv("LITE_VERSION", "true")

	cfg := FromEnv()
	if cfg.MaxSessions != 16 || cfg.NumWorkers != 2 || !cfg.LiteVersion {
		t.Errorf("got %+v", cfg)
	}
}

func TestFromEnvIgnoresMalformedValue(t *testing.T) {
	t.Setenv("MAX_SESSIONS", "not-a-number")
	cfg := FromEnv()
	if cfg.MaxSessions != Default().MaxSessions {
		t.Errorf("malformed MAX_SESSIONS should keep the default, got %d", cfg.MaxSessions)
	}
}
