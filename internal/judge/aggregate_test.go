package judge

import "testing"

func TestReplicateCompilationError(t *testing.T) {
	got := ReplicateCompilationError(3, "gcc: fatal error")
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	for i, c := range got {
		if c.JudgeResult != CompilationError {
			t.Errorf("case %d: got %s, want COMPILATION_ERROR", i, c.JudgeResult)
		}
		if c.AbsoluteScore != RejectedSentinel {
			t.Errorf("case %d: got score %d, want sentinel %d", i, c.AbsoluteScore, RejectedSentinel)
		}
	}
}

func TestAggregateAllowScoreNonAC(t *testing.T) {
	cases := []CaseResult{
		{JudgeResult: Accepted, AbsoluteScore: 10},
		{JudgeResult: RuntimeError, AbsoluteScore: RejectedSentinel},
	}
	res := Aggregate(cases, ResourceUsage{NumCaseEval: 2}, true)
	if res.OverallAbsoluteScore() != 9 {
		t.Errorf("got %d, want 9", res.OverallAbsoluteScore())
	}
	if res.OverallJudgeResult() != RuntimeError {
		t.Errorf("got %s, want RUNTIME_ERROR", res.OverallJudgeResult())
	}
}
