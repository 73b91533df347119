package judge

// Aggregate combines a list of CaseResults and the ResourceUsage
// attributed to producing them into a single Result, applying the
// allowScoreNonAC rule from spec.md §4.G. This mirrors the teacher's
// AggregateByField reducer shape (group raw per-case data, fold into one
// summary struct) adapted from event counting to verdict folding.
func Aggregate(caseResults []CaseResult, resourceUsage ResourceUsage, allowScoreNonAC bool) Result {
	return Result{
		CaseResults:     caseResults,
		ResourceUsage:   resourceUsage,
		AllowScoreNonAC: allowScoreNonAC,
	}
}

// ReplicateCompilationError builds n identical COMPILATION_ERROR
// CaseResults, used when the case runner's compile phase fails
// (spec.md §4.C, invariant 4 in §8).
func ReplicateCompilationError(n int, message string) []CaseResult {
	out := make([]CaseResult, n)
	for i := range out {
		out[i] = CaseResult{
			JudgeResult:   CompilationError,
			Message:       message,
			AbsoluteScore: RejectedSentinel,
		}
	}
	return out
}
