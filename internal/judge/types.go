// Package judge defines the core verdict and scoring types shared by the
// case runner, the session state machine, and the result aggregator.
package judge

import "fmt"

// RejectedSentinel is the absolute score reported for any case that did not
// receive an ACCEPTED verdict.
const RejectedSentinel = -1

// JudgeResult is the verdict for a single case.
type JudgeResult string

const (
	Accepted            JudgeResult = "ACCEPTED"
	WrongAnswer         JudgeResult = "WRONG_ANSWER"
	RuntimeError        JudgeResult = "RUNTIME_ERROR"
	TimeLimitExceeded    JudgeResult = "TIME_LIMIT_EXCEEDED"
	MemoryLimitExceeded  JudgeResult = "MEMORY_LIMIT_EXCEEDED"
	CompilationError     JudgeResult = "COMPILATION_ERROR"
	InternalError        JudgeResult = "INTERNAL_ERROR"
)

func (r JudgeResult) String() string { return string(r) }

// Valid reports whether r is one of the defined verdicts.
func (r JudgeResult) Valid() bool {
	switch r {
	case Accepted, WrongAnswer, RuntimeError, TimeLimitExceeded, MemoryLimitExceeded, CompilationError, InternalError:
		return true
	default:
		return false
	}
}

// ProblemType distinguishes batch problems (stdin once, stdout once) from
// reactive ones (judge drives the solution interactively).
type ProblemType string

const (
	Batch    ProblemType = "BATCH"
	Reactive ProblemType = "REACTIVE"
)

// ScoreType tells the standings calculator which direction is "better".
type ScoreType string

const (
	Maximize ScoreType = "MAXIMIZE"
	Minimize ScoreType = "MINIMIZE"
)

// CaseResult is the per-case record produced by the case runner.
type CaseResult struct {
	JudgeResult    JudgeResult
	Message        string
	AbsoluteScore  int
	RelativeScore  *float64
	ExecutionTime  float64 // seconds, clamped to <= time_limit+0.1
	MemoryUsage    int64   // bytes
	InputStr       *string
	OutputStr      *string
	ErrorStr       *string
	Visualization  []byte // opaque media blob, nil if none/skipped
}

// clampExecutionTime enforces invariant 5/6 of spec.md §8: 0 <= execution_time <= time_limit+0.1.
func clampExecutionTime(t, timeLimit float64) float64 {
	max := timeLimit + 0.1
	if t > max {
		return max
	}
	if t < 0 {
		return 0
	}
	return t
}

// NewRejected builds a CaseResult for a non-AC verdict, applying the
// rejected sentinel and clamping execution time.
func NewRejected(jr JudgeResult, message string, execTime, timeLimit float64, memUsage int64) CaseResult {
	return CaseResult{
		JudgeResult:   jr,
		Message:       message,
		AbsoluteScore: RejectedSentinel,
		ExecutionTime: clampExecutionTime(execTime, timeLimit),
		MemoryUsage:   memUsage,
	}
}

// NewAccepted builds a CaseResult for an ACCEPTED verdict.
func NewAccepted(score int, execTime, timeLimit float64, memUsage int64) CaseResult {
	return CaseResult{
		JudgeResult:   Accepted,
		AbsoluteScore: score,
		ExecutionTime: clampExecutionTime(execTime, timeLimit),
		MemoryUsage:   memUsage,
	}
}

// Redacted returns a copy of c with input_str/output_str/error_str/message/
// visualisation dropped, as required for private_eval's returned Result
// (spec.md §4.F private_eval).
func (c CaseResult) Redacted() CaseResult {
	c.InputStr = nil
	c.OutputStr = nil
	c.ErrorStr = nil
	c.Message = ""
	c.Visualization = nil
	return c
}

// WithoutDetails nulls input/output/error strings, used when
// return_details=false is requested from the case runner.
func (c CaseResult) WithoutDetails() CaseResult {
	c.InputStr = nil
	c.OutputStr = nil
	c.ErrorStr = nil
	return c
}

func (c CaseResult) String() string {
	return fmt.Sprintf("CaseResult{%s score=%d time=%.3fs mem=%d}", c.JudgeResult, c.AbsoluteScore, c.ExecutionTime, c.MemoryUsage)
}
