package main

import "testing"

func TestResolveWorkerCountPrefersFlag(t *testing.T) {
	if got := resolveWorkerCount(8); got != 8 {
		t.Errorf("got %d, want 8", got)
	}
}

func TestResolveWorkerCountFallsBackToEnvDefault(t *testing.T) {
	t.Setenv("NUM_WORKERS", "")
	if got := resolveWorkerCount(0); got <= 0 {
		t.Errorf("expected a positive default worker count, got %d", got)
	}
}
