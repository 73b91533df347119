package session

import (
	"context"

	"github.com/heurithm/benchbox/internal/bherr"
	"github.com/heurithm/benchbox/internal/caserunner"
	"github.com/heurithm/benchbox/internal/gen"
	"github.com/heurithm/benchbox/internal/judge"
)

// SubmissionArgs are the (code, language, version, limits) common to every
// guarded action that compiles and runs a submission.
type SubmissionArgs struct {
	Code        string
	Language    string
	Version     string
	TimeLimit   *float64
	MemoryLimit *int64
}

func (s *Session) resolvedLimits(a SubmissionArgs) (timeLimit float64, memoryLimit int64) {
	timeLimit = s.problem.TimeLimitSeconds
	if a.TimeLimit != nil {
		timeLimit = *a.TimeLimit
	}
	memoryLimit = s.problem.MemoryLimitBytes
	if a.MemoryLimit != nil {
		memoryLimit = *a.MemoryLimit
	}
	return timeLimit, memoryLimit
}

func (s *Session) runCases(ctx context.Context, a SubmissionArgs, inputs []string, returnDetails, skipVis bool) ([]judge.CaseResult, error) {
	lang, version, err := resolveLanguageVersion(a.Language, a.Version)
	if err != nil {
		return nil, err
	}
	timeLimit, memoryLimit := s.resolvedLimits(a)
	if err := validateCode(a.Code); err != nil {
		return nil, err
	}
	if err := validateLimits(timeLimit, memoryLimit); err != nil {
		return nil, err
	}
	return caserunner.RunCases(ctx, caserunner.Config{
		Inputs:            inputs,
		Code:              a.Code,
		Language:          lang,
		ToolchainVersion:  version,
		TimeLimit:         timeLimit,
		MemoryLimit:       memoryLimit,
		ProblemID:         s.problem.ID,
		ProblemType:       s.problem.Type,
		ToolDir:           s.toolDir,
		ReturnDetails:     returnDetails,
		SkipVisualisation: skipVis,
		NumWorkers:        s.numWorkers,
		Backend:           s.backend,
		Log:               s.log,
	})
}

// CodeRun runs a submission against a single ad hoc input (spec.md §4.F
// code_run): the quick-iteration entry point, charged only against the
// execution-time budget, never against num_case_eval.
func (s *Session) CodeRun(ctx context.Context, input string, a SubmissionArgs) (judge.CaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const action = ActionCodeRun
	if err := s.checkLiveness(action); err != nil {
		return judge.CaseResult{}, err
	}
	if err := s.checkResourceBudgetBefore(action); err != nil {
		return judge.CaseResult{}, err
	}

	results, err := s.runCases(ctx, a, []string{input}, true, false)
	if err != nil {
		return judge.CaseResult{}, err
	}
	if len(results) != 1 {
		return judge.CaseResult{}, bherr.NewInternalError("code_run produced an unexpected number of results", nil)
	}

	if cerr := s.commitResourceUsage(action, judge.ResourceUsage{ExecutionTimeCaseEval: results[0].ExecutionTime}); cerr != nil {
		return results[0], cerr
	}
	s.appendLog(string(action), map[string]any{"language": a.Language}, s.elapsedSeconds())
	return results[0], nil
}

// CaseGen generates inputs from seeds without evaluating them (spec.md
// §4.F case_gen), charged against num_case_gen.
func (s *Session) CaseGen(ctx context.Context, seeds []uint64, kwargs map[string]string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const action = ActionCaseGen
	if err := s.checkLiveness(action); err != nil {
		return nil, err
	}
	if err := s.checkResourceBudgetBefore(action); err != nil {
		return nil, err
	}

	inputs, err := gen.GenerateInputs(ctx, s.backend, seeds, kwargs, s.toolDir)
	if err != nil {
		return nil, bherr.NewInternalError("case_gen failed", err)
	}

	if cerr := s.commitResourceUsage(action, judge.ResourceUsage{NumCaseGen: len(seeds)}); cerr != nil {
		return inputs, cerr
	}
	s.appendLog(string(action), map[string]any{"num_seeds": len(seeds)}, s.elapsedSeconds())
	return inputs, nil
}

// CaseEval evaluates a submission against a subset of the pre-generated
// public inputs, selected by index (spec.md §4.F case_eval), charged
// against num_case_eval and execution_time_case_eval.
func (s *Session) CaseEval(ctx context.Context, indices []int, a SubmissionArgs, skipVis bool) (judge.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caseEvalLocked(ctx, ActionCaseEval, indices, a, skipVis)
}

func (s *Session) caseEvalLocked(ctx context.Context, action Action, indices []int, a SubmissionArgs, skipVis bool) (judge.Result, error) {
	if err := s.checkLiveness(action); err != nil {
		return judge.Result{}, err
	}
	inputs, err := s.selectPublicInputs(indices)
	if err != nil {
		return judge.Result{}, err
	}
	if err := s.checkResourceBudgetBefore(action); err != nil {
		return judge.Result{}, err
	}

	results, err := s.runCases(ctx, a, inputs, true, skipVis)
	if err != nil {
		return judge.Result{}, err
	}

	totalTime := 0.0
	for _, r := range results {
		totalTime += r.ExecutionTime
	}
	delta := judge.ResourceUsage{NumCaseEval: len(inputs), ExecutionTimeCaseEval: totalTime}
	result := judge.Aggregate(results, s.currentResourceUsage.Add(delta), s.problem.AllowScoreNonACPublic)
	if cerr := s.commitResourceUsage(action, delta); cerr != nil {
		return result, cerr
	}
	s.appendLog(string(action), map[string]any{"num_cases": len(inputs)}, s.elapsedSeconds())
	return result, nil
}

func (s *Session) selectPublicInputs(indices []int) ([]string, error) {
	if len(indices) == 0 {
		return s.publicInputs, nil
	}
	out := make([]string, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.publicInputs) {
			return nil, bherr.NewArgumentError("public input index %d out of range [0,%d)", i, len(s.publicInputs))
		}
		out = append(out, s.publicInputs[i])
	}
	return out, nil
}

// CaseGenEval generates fresh inputs from seeds and evaluates a
// submission against them in one guarded action (spec.md §4.F
// case_gen_eval). Both the generation and evaluation budgets are
// pre-checked before generation runs at all, so a rejection never
// triggers a partial generate-then-fail sequence.
func (s *Session) CaseGenEval(ctx context.Context, seeds []uint64, kwargs map[string]string, a SubmissionArgs, skipVis bool) (judge.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const action = ActionCaseGenEval
	if err := s.checkLiveness(action); err != nil {
		return judge.Result{}, err
	}
	if err := s.checkResourceBudgetBefore(action); err != nil {
		return judge.Result{}, err
	}

	inputs, err := gen.GenerateInputs(ctx, s.backend, seeds, kwargs, s.toolDir)
	if err != nil {
		return judge.Result{}, bherr.NewInternalError("case_gen_eval generation failed", err)
	}

	results, err := s.runCases(ctx, a, inputs, true, skipVis)
	if err != nil {
		return judge.Result{}, err
	}

	totalTime := 0.0
	for _, r := range results {
		totalTime += r.ExecutionTime
	}
	delta := judge.ResourceUsage{NumCaseGen: len(seeds), NumCaseEval: len(inputs), ExecutionTimeCaseEval: totalTime}
	result := judge.Aggregate(results, s.currentResourceUsage.Add(delta), s.problem.AllowScoreNonACPublic)
	if cerr := s.commitResourceUsage(action, delta); cerr != nil {
		return result, cerr
	}
	s.appendLog(string(action), map[string]any{"num_seeds": len(seeds)}, s.elapsedSeconds())
	return result, nil
}

// LocalVisualization runs one public input with visualisation enabled and
// returns the rendered artefact, uncharged against any budget field
// (spec.md §4.F local_visualization is not in the guard table).
func (s *Session) LocalVisualization(ctx context.Context, index int, a SubmissionArgs) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLiveness(ActionCodeRun); err != nil {
		return nil, err
	}
	if s.problem.NoVisualisation {
		return nil, bherr.NewArgumentError("problem %s has no visualiser", s.problem.ID)
	}
	inputs, err := s.selectPublicInputs([]int{index})
	if err != nil {
		return nil, err
	}
	results, err := s.runCases(ctx, a, inputs, true, false)
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, bherr.NewInternalError("local_visualization produced an unexpected number of results", nil)
	}
	return results[0].Visualization, nil
}

// PublicEval evaluates a submission against the full public input set
// (spec.md §4.F public_eval), gated by the submission-interval guard when
// use_same_time_scale is set.
func (s *Session) PublicEval(ctx context.Context, a SubmissionArgs) (judge.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const action = ActionPublicEval
	if err := s.checkLiveness(action); err != nil {
		return judge.Result{}, err
	}
	if err := s.checkSubmissionInterval(); err != nil {
		return judge.Result{}, err
	}
	if err := s.checkResourceBudgetBefore(action); err != nil {
		return judge.Result{}, err
	}

	results, err := s.runCases(ctx, a, s.publicInputs, false, false)
	if err != nil {
		return judge.Result{}, err
	}
	result := judge.Aggregate(results, s.currentResourceUsage, s.problem.AllowScoreNonACPublic)
	if cerr := s.commitResourceUsage(action, judge.ResourceUsage{NumCallPublicEval: 1}); cerr != nil {
		return result, cerr
	}
	s.lastPublicEvalTime = s.now()
	s.appendLog(string(action), map[string]any{}, s.elapsedSeconds())
	return result, nil
}

// PrivateEval evaluates a submission against the full private input set
// exactly once per session (spec.md §4.F private_eval), additionally
// computing the submission's standings rank and interpolated performance,
// and redacting per-case detail from the returned Result.
func (s *Session) PrivateEval(ctx context.Context, a SubmissionArgs) (result judge.Result, rank int, performance float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const action = ActionPrivateEval
	if err = s.checkLiveness(action); err != nil {
		return judge.Result{}, 0, 0, err
	}
	if s.privateEvalCalled {
		return judge.Result{}, 0, 0, bherr.NewBudgetError("private_eval may only be called once per session")
	}
	if err = s.checkResourceBudgetBefore(action); err != nil {
		return judge.Result{}, 0, 0, err
	}

	results, err := s.runCases(ctx, a, s.privateInputs, false, true)
	if err != nil {
		return judge.Result{}, 0, 0, err
	}

	var candidateScores []float64
	if s.relativeResults != nil {
		candidateScores = make([]float64, len(results))
		for i, c := range results {
			candidateScores[i] = float64(c.AbsoluteScore)
		}
		if perCase, rerr := s.relativeResults.CandidateRelativeScores(candidateScores); rerr == nil {
			for i := range results {
				v := perCase[i]
				results[i].RelativeScore = &v
			}
		}
	}
	result = judge.Aggregate(results, s.currentResourceUsage, s.problem.AllowScoreNonACPublic)

	switch {
	case s.relativeResults != nil:
		if r, fractional, rerr := s.relativeResults.RankAmong(candidateScores); rerr == nil {
			rank = r
			if s.rankPerformanceMap != nil {
				if p, perr := s.rankPerformanceMap.Performance(fractional); perr == nil {
					performance = p
				}
			}
		}
	case s.standings != nil:
		r, fractional := s.standings.Rank(float64(result.OverallAbsoluteScore()))
		rank = r
		if s.rankPerformanceMap != nil {
			if p, perr := s.rankPerformanceMap.Performance(fractional); perr == nil {
				performance = p
			}
		}
	}

	s.privateEvalCalled = true
	s.finished = true
	if cerr := s.commitResourceUsage(action, judge.ResourceUsage{NumCallPrivateEval: 1}); cerr != nil {
		return result.Redacted(), rank, performance, cerr
	}
	s.lastPrivateEvalTime = s.now()
	s.appendLog(string(action), map[string]any{}, s.elapsedSeconds())
	return result.Redacted(), rank, performance, nil
}
