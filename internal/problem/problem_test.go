package problem

import (
	"errors"
	"testing"

	"github.com/heurithm/benchbox/internal/judge"
)

func TestFixtureLoaderFound(t *testing.T) {
	loader := NewFixtureLoader(&Problem{ID: "abc001", TimeLimitSeconds: 2.0, Type: judge.Batch})
	p, err := loader.Load("abc001")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.TimeLimitSeconds != 2.0 {
		t.Errorf("got %v, want 2.0", p.TimeLimitSeconds)
	}
}

func TestFixtureLoaderNotFound(t *testing.T) {
	loader := NewFixtureLoader()
	if _, err := loader.Load("missing"); err == nil {
		t.Error("expected an error for an unknown problem id")
	}
}

func TestDirLoaderDecodesDescriptor(t *testing.T) {
	loader := NewDirLoader("/problems", func(path string) ([]byte, error) {
		if path != "/problems/abc001/problem.json" {
			t.Fatalf("unexpected path %q", path)
		}
		return []byte(`{"time_limit_seconds":2.5,"type":"BATCH","score_type":"MAXIMIZE"}`), nil
	})
	p, err := loader.Load("abc001")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ID != "abc001" || p.TimeLimitSeconds != 2.5 || p.Type != judge.Batch {
		t.Errorf("got %+v", p)
	}
}

func TestDirLoaderPropagatesReadError(t *testing.T) {
	loader := NewDirLoader("/problems", func(path string) ([]byte, error) {
		return nil, errors.New("not found")
	})
	if _, err := loader.Load("abc001"); err == nil {
		t.Error("expected an error when the read callback fails")
	}
}
