package profile

import (
	"fmt"
	"testing"

	"github.com/heurithm/benchbox/internal/judge"
)

func recordJSON(exitStatus int, elapsed, user, system float64, rssKB int64) string {
	return fmt.Sprintf(
		`{"exit_status":%d,"elapsed_time_seconds":%g,"user_cpu_seconds":%g,"system_cpu_seconds":%g,"max_resident_set_size_kbytes":%d}`,
		exitStatus, elapsed, user, system, rssKB,
	)
}

// TestBatchACEndToEnd covers spec.md §8 scenario 4.
func TestBatchACEndToEnd(t *testing.T) {
	raw := recordJSON(0, 1.2, 1.1, 0.05, 16384)
	out := Parse(raw, 2.0, 1<<30, 0)
	if out.Verdict != nil {
		t.Fatalf("expected a usable profile, got verdict %+v", out.Verdict)
	}
	if got := out.Profile.ExecutionTime(); got != 1.2 {
		t.Errorf("execution time: got %v, want 1.2", got)
	}
	if got := out.Profile.MemoryUsageBytes(); got != 16777216 {
		t.Errorf("memory usage: got %v, want 16777216", got)
	}
}

// TestTLEViaSignal covers spec.md §8 scenario 5.
func TestTLEViaSignal(t *testing.T) {
	raw := "Command terminated by signal 9\n" + recordJSON(0, 2.00, 2.00, 0.00, 0)
	out := Parse(raw, 2.0, 1<<30, 0)
	if out.Verdict == nil {
		t.Fatal("expected a TLE verdict")
	}
	if out.Verdict.JudgeResult != judge.TimeLimitExceeded {
		t.Errorf("got %s, want TIME_LIMIT_EXCEEDED", out.Verdict.JudgeResult)
	}
	if out.Verdict.ExecutionTime != 2.00 {
		t.Errorf("got execution_time %v, want 2.00", out.Verdict.ExecutionTime)
	}
}

func TestEmptyContentWithinTimeLimit(t *testing.T) {
	out := Parse("", 2.0, 1<<30, 1.0)
	if out.Verdict == nil || out.Verdict.JudgeResult != judge.RuntimeError {
		t.Fatalf("expected RUNTIME_ERROR, got %+v", out.Verdict)
	}
}

func TestEmptyContentExceedsTimeLimit(t *testing.T) {
	out := Parse("", 2.0, 1<<30, 3.0)
	if out.Verdict == nil || out.Verdict.JudgeResult != judge.TimeLimitExceeded {
		t.Fatalf("expected TIME_LIMIT_EXCEEDED, got %+v", out.Verdict)
	}
	if out.Verdict.ExecutionTime != 2.1 {
		t.Errorf("expected clamped execution_time 2.1, got %v", out.Verdict.ExecutionTime)
	}
}

func TestNonZeroExitPrefixDropped(t *testing.T) {
	raw := "Command exited with non-zero status 1\n" + recordJSON(1, 0.5, 0.4, 0.05, 1024)
	out := Parse(raw, 2.0, 1<<30, 0)
	if out.Verdict == nil || out.Verdict.JudgeResult != judge.RuntimeError {
		t.Fatalf("expected RUNTIME_ERROR, got %+v", out.Verdict)
	}
}

func TestUnparseableContentIsWrongAnswer(t *testing.T) {
	out := Parse("not json at all", 2.0, 1<<30, 0)
	if out.Verdict == nil || out.Verdict.JudgeResult != judge.WrongAnswer {
		t.Fatalf("expected WRONG_ANSWER, got %+v", out.Verdict)
	}
}

func TestMissingFieldsIsInternalError(t *testing.T) {
	out := Parse(`{"exit_status":0}`, 2.0, 1<<30, 0)
	if out.Verdict == nil || out.Verdict.JudgeResult != judge.InternalError {
		t.Fatalf("expected INTERNAL_ERROR, got %+v", out.Verdict)
	}
}

func TestMemoryLimitExceeded(t *testing.T) {
	raw := recordJSON(0, 0.5, 0.4, 0.05, 2*1024*1024) // 2GB in KB
	out := Parse(raw, 2.0, 1<<30, 0)                  // 1 GiB limit
	if out.Verdict == nil || out.Verdict.JudgeResult != judge.MemoryLimitExceeded {
		t.Fatalf("expected MEMORY_LIMIT_EXCEEDED, got %+v", out.Verdict)
	}
}
