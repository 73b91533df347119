package judge

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestOverallJudgeResultEmpty(t *testing.T) {
	r := Result{}
	if got := r.OverallJudgeResult(); got != Accepted {
		t.Errorf("empty result: got %s, want ACCEPTED", got)
	}
}

func TestOverallJudgeResultFirstNonAC(t *testing.T) {
	r := Result{CaseResults: []CaseResult{
		{JudgeResult: Accepted},
		{JudgeResult: WrongAnswer},
		{JudgeResult: TimeLimitExceeded},
	}}
	if got := r.OverallJudgeResult(); got != WrongAnswer {
		t.Errorf("got %s, want WRONG_ANSWER (first non-AC in list order)", got)
	}
}

func TestOverallAbsoluteScoreAllAC(t *testing.T) {
	r := Result{CaseResults: []CaseResult{
		{JudgeResult: Accepted, AbsoluteScore: 100},
		{JudgeResult: Accepted, AbsoluteScore: 200},
	}}
	if got := r.OverallAbsoluteScore(); got != 300 {
		t.Errorf("got %d, want 300", got)
	}
}

func TestOverallAbsoluteScoreRejectedWithoutAllowNonAC(t *testing.T) {
	r := Result{CaseResults: []CaseResult{
		{JudgeResult: Accepted, AbsoluteScore: 100},
		{JudgeResult: WrongAnswer, AbsoluteScore: RejectedSentinel},
	}}
	if got := r.OverallAbsoluteScore(); got != RejectedSentinel {
		t.Errorf("got %d, want %d", got, RejectedSentinel)
	}
}

func TestOverallAbsoluteScoreAllowNonAC(t *testing.T) {
	r := Result{
		AllowScoreNonAC: true,
		CaseResults: []CaseResult{
			{JudgeResult: Accepted, AbsoluteScore: 100},
			{JudgeResult: WrongAnswer, AbsoluteScore: RejectedSentinel},
		},
	}
	if got := r.OverallAbsoluteScore(); got != 99 {
		t.Errorf("got %d, want 99 (100 + -1)", got)
	}
}

func TestOverallRelativeScore(t *testing.T) {
	r := Result{CaseResults: []CaseResult{
		{RelativeScore: floatPtr(10)},
		{RelativeScore: floatPtr(20)},
	}}
	got := r.OverallRelativeScore()
	if got == nil || *got != 30 {
		t.Fatalf("got %v, want 30", got)
	}
}

func TestOverallRelativeScoreMissing(t *testing.T) {
	r := Result{CaseResults: []CaseResult{
		{RelativeScore: floatPtr(10)},
		{RelativeScore: nil},
	}}
	if got := r.OverallRelativeScore(); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestRedacted(t *testing.T) {
	in, out, errs := "input", "output", "stderr"
	r := Result{CaseResults: []CaseResult{
		{JudgeResult: Accepted, Message: "ok", InputStr: &in, OutputStr: &out, ErrorStr: &errs, Visualization: []byte("svg")},
	}}
	redacted := r.Redacted()
	c := redacted.CaseResults[0]
	if c.InputStr != nil || c.OutputStr != nil || c.ErrorStr != nil || c.Message != "" || c.Visualization != nil {
		t.Errorf("redacted case still carries detail fields: %+v", c)
	}
	if c.JudgeResult != Accepted {
		t.Errorf("redacted case lost judge result")
	}
}

func TestResourceUsageAddSub(t *testing.T) {
	a := ResourceUsage{NumCaseGen: 1, NumCaseEval: 2, ExecutionTimeCaseEval: 1.5}
	b := ResourceUsage{NumCaseGen: 3, NumCaseEval: 4, ExecutionTimeCaseEval: 0.5}
	sum := a.Add(b)
	if sum.NumCaseGen != 4 || sum.NumCaseEval != 6 || sum.ExecutionTimeCaseEval != 2.0 {
		t.Errorf("Add: got %+v", sum)
	}
	diff := sum.Sub(a)
	if diff != b {
		t.Errorf("Sub: got %+v, want %+v", diff, b)
	}
}

func TestResourceUsageGuards(t *testing.T) {
	max := ResourceUsage{NumCaseGen: 2, NumCaseEval: 2, ExecutionTimeCaseEval: 45.6}
	current := ResourceUsage{NumCaseGen: 2, NumCaseEval: 2, ExecutionTimeCaseEval: 45.6}
	// Pre-check for case_gen_eval must fail: num_case_gen is already at max, not strictly below.
	guarded := []Field{FieldNumCaseGen, FieldNumCaseEval, FieldExecutionTimeCaseEval}
	if current.StrictlyBelow(max, guarded) {
		t.Error("expected pre-check to fail when usage already equals the max")
	}
	if !current.AllLessEqual(max) {
		t.Error("current == max should satisfy the component-wise invariant")
	}
}
