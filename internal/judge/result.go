package judge

// Result is the aggregate of per-case CaseResults plus the ResourceUsage
// this action attributed to the session's budget.
type Result struct {
	CaseResults      []CaseResult
	ResourceUsage    ResourceUsage
	AllowScoreNonAC  bool
}

// OverallJudgeResult is the first non-AC verdict in list order, or
// ACCEPTED if every case is AC (or the list is empty), per spec.md §4.G.
func (r Result) OverallJudgeResult() JudgeResult {
	if len(r.CaseResults) == 0 {
		return Accepted
	}
	for _, c := range r.CaseResults {
		if c.JudgeResult != Accepted {
			return c.JudgeResult
		}
	}
	return Accepted
}

// OverallAbsoluteScore sums every case's absolute_score when all verdicts
// are ACCEPTED, or when AllowScoreNonAC is set; otherwise RejectedSentinel.
func (r Result) OverallAbsoluteScore() int {
	allAC := true
	for _, c := range r.CaseResults {
		if c.JudgeResult != Accepted {
			allAC = false
			break
		}
	}
	if !allAC && !r.AllowScoreNonAC {
		return RejectedSentinel
	}
	sum := 0
	for _, c := range r.CaseResults {
		sum += c.AbsoluteScore
	}
	return sum
}

// OverallRelativeScore sums every case's relative_score when every case
// carries one, analogous to OverallAbsoluteScore. Returns nil if any case
// lacks a relative score.
func (r Result) OverallRelativeScore() *float64 {
	sum := 0.0
	for _, c := range r.CaseResults {
		if c.RelativeScore == nil {
			return nil
		}
		sum += *c.RelativeScore
	}
	return &sum
}

// Redacted applies CaseResult.Redacted to every case, used for the Result
// returned by private_eval.
func (r Result) Redacted() Result {
	out := make([]CaseResult, len(r.CaseResults))
	for i, c := range r.CaseResults {
		out[i] = c.Redacted()
	}
	r.CaseResults = out
	return r
}
