// Package session implements the Session State Machine (spec.md §4.F):
// the guarded entry points a benchmarking run is driven through, each
// checked against liveness, resource budget, submission-interval, and
// argument-validation guards before anything executes. Grounded on
// src/ale_bench/session.py (original_source/) for the guard/action-log
// semantics, expressed in the teacher's idiom — typed guard errors via
// internal/bherr instead of one catch-all exception, and structured
// action-log records instead of freeform JSON strings, matching how the
// teacher's own Report/Metadata types are built (internal/model/types.go)
// rather than ad hoc maps.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/heurithm/benchbox/internal/backend"
	"github.com/heurithm/benchbox/internal/bherr"
	"github.com/heurithm/benchbox/internal/gen"
	"github.com/heurithm/benchbox/internal/judge"
	"github.com/heurithm/benchbox/internal/language"
	"github.com/heurithm/benchbox/internal/obslog"
	"github.com/heurithm/benchbox/internal/problem"
	"github.com/heurithm/benchbox/internal/standings"
)

// Action names the guarded entry points of the Session, matching
// AleBenchFunction in the original implementation.
type Action string

const (
	ActionCodeRun     Action = "code_run"
	ActionCaseGen     Action = "case_gen"
	ActionCaseEval    Action = "case_eval"
	ActionCaseGenEval Action = "case_gen_eval"
	ActionPublicEval  Action = "public_eval"
	ActionPrivateEval Action = "private_eval"
)

// guardedFields mirrors CHECK_RESOURCE_USAGE_FIELDS in session.py exactly
// (spec.md §4.F's guard table).
var guardedFields = map[Action][]judge.Field{
	ActionCodeRun:     {judge.FieldExecutionTimeCaseEval},
	ActionCaseGen:     {judge.FieldNumCaseGen},
	ActionCaseEval:    {judge.FieldNumCaseEval, judge.FieldExecutionTimeCaseEval},
	ActionCaseGenEval: {judge.FieldNumCaseGen, judge.FieldNumCaseEval, judge.FieldExecutionTimeCaseEval},
	ActionPublicEval:  {judge.FieldNumCallPublicEval},
	ActionPrivateEval: {judge.FieldNumCallPrivateEval},
}

// LogEntry is one action-log record: function name, sanitised arguments,
// and elapsed time since the session started (spec.md §4.F "Action log").
type LogEntry struct {
	Function       string
	Arguments      map[string]any
	ElapsedSeconds float64
}

// Config are the parameters a new Session is built from, equivalent to
// Session.__init__'s arguments in the original.
type Config struct {
	Problem              *problem.Problem
	LiteVersion          bool
	Standings            *standings.Standings
	RankPerformanceMap   *standings.RankPerformanceMap
	RelativeResults      *standings.RelativeResults
	ToolDir              string
	UseSameTimeScale     bool
	MaximumResourceUsage judge.ResourceUsage
	SessionDuration      time.Duration
	NumWorkers           int
	Backend              backend.Backend
	Log                  *obslog.Logger
	Now                  func() time.Time // injectable clock, defaults to time.Now
}

// Session is the single-threaded-per-action state machine guarding every
// compile/run/judge call a benchmarking run makes.
type Session struct {
	mu sync.Mutex

	problem            *problem.Problem
	liteVersion        bool
	standings          *standings.Standings
	rankPerformanceMap *standings.RankPerformanceMap
	relativeResults    *standings.RelativeResults
	toolDir            string
	useSameTimeScale   bool
	maxResourceUsage   judge.ResourceUsage
	sessionDuration    time.Duration
	numWorkers         int
	backend            backend.Backend
	log                *obslog.Logger
	now                func() time.Time

	currentResourceUsage judge.ResourceUsage
	actionLog            []LogEntry
	lastPublicEvalTime   time.Time
	lastPrivateEvalTime  time.Time
	sessionStartedAt     time.Time
	privateEvalCalled    bool
	finished             bool // set once a post-action budget check fails, or private_eval has run

	publicSeeds   []uint64
	privateSeeds  []uint64
	publicInputs  []string
	privateInputs []string
}

// New builds a Session, pre-generating the public and private inputs
// through the Input Generator Wrapper (spec.md §4.D), matching
// Session.__init__'s failure behaviour: generation failures abort
// construction entirely.
func New(ctx context.Context, cfg Config, publicSeeds, privateSeeds []uint64) (*Session, error) {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	publicInputs, err := gen.GenerateInputs(ctx, cfg.Backend, publicSeeds, nil, cfg.ToolDir)
	if err != nil || len(publicInputs) != len(publicSeeds) {
		return nil, bherr.NewInternalError("generating public inputs failed", err)
	}
	privateInputs, err := gen.GenerateInputs(ctx, cfg.Backend, privateSeeds, nil, cfg.ToolDir)
	if err != nil || len(privateInputs) != len(privateSeeds) {
		return nil, bherr.NewInternalError("generating private inputs failed", err)
	}

	epoch := time.Unix(0, 0).UTC()
	return &Session{
		problem:              cfg.Problem,
		liteVersion:          cfg.LiteVersion,
		standings:            cfg.Standings,
		rankPerformanceMap:   cfg.RankPerformanceMap,
		relativeResults:      cfg.RelativeResults,
		toolDir:              cfg.ToolDir,
		useSameTimeScale:     cfg.UseSameTimeScale,
		maxResourceUsage:     cfg.MaximumResourceUsage,
		sessionDuration:      cfg.SessionDuration,
		numWorkers:           cfg.NumWorkers,
		backend:              cfg.Backend,
		log:                  cfg.Log,
		now:                  now,
		lastPublicEvalTime:   epoch,
		lastPrivateEvalTime:  epoch,
		sessionStartedAt:     now(),
		publicSeeds:          publicSeeds,
		privateSeeds:         privateSeeds,
		publicInputs:         publicInputs,
		privateInputs:        privateInputs,
	}, nil
}

// Finished reports whether the session has finished, either because its
// duration elapsed, private_eval already ran, or a prior action's
// post-check budget violation poisoned it.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedLocked()
}

func (s *Session) finishedLocked() bool {
	if s.finished {
		return true
	}
	return !s.now().Before(s.sessionStartedAt.Add(s.sessionDuration))
}

// checkLiveness enforces spec.md §4.F's liveness guard, with the
// private_eval exception: it is allowed exactly once even past the
// session's nominal duration, provided the session has not already
// finished for some other reason.
func (s *Session) checkLiveness(action Action) error {
	if action == ActionPrivateEval {
		if s.finished {
			return bherr.NewBudgetError("the session has already finished")
		}
		return nil
	}
	if s.finishedLocked() {
		return bherr.NewBudgetError("the session has already finished")
	}
	return nil
}

// checkResourceBudgetBefore enforces the strictly-below-max pre-check.
func (s *Session) checkResourceBudgetBefore(action Action) error {
	fields := guardedFields[action]
	if !s.currentResourceUsage.StrictlyBelow(s.maxResourceUsage, fields) {
		return bherr.NewBudgetError("resource usage for %s would exceed the session budget", action)
	}
	return nil
}

// commitResourceUsage adds delta to the running total and enforces the
// less-or-equal post-check, poisoning the session (finished=true) if it
// fails — matching the original's "usage is already incurred, so it
// stays recorded" behaviour rather than rolling back a cost that was
// genuinely spent.
func (s *Session) commitResourceUsage(action Action, delta judge.ResourceUsage) error {
	s.currentResourceUsage = s.currentResourceUsage.Add(delta)
	fields := guardedFields[action]
	if !s.currentResourceUsage.LessEqual(s.maxResourceUsage, fields) {
		s.finished = true
		return bherr.NewBudgetError("resource usage for %s exceeded the session budget after execution", action)
	}
	return nil
}

// checkSubmissionInterval enforces spec.md §4.F's submission-interval
// guard, only active for public_eval under use_same_time_scale.
func (s *Session) checkSubmissionInterval() error {
	if !s.useSameTimeScale {
		return nil
	}
	if s.now().Before(s.lastPublicEvalTime.Add(time.Duration(s.problem.SubmissionIntervalSeconds * float64(time.Second)))) {
		return bherr.NewBudgetError("public_eval called before the submission interval elapsed")
	}
	return nil
}

func (s *Session) elapsedSeconds() float64 {
	return s.now().Sub(s.sessionStartedAt).Seconds()
}

func (s *Session) appendLog(function string, args map[string]any, elapsed float64) {
	s.actionLog = append(s.actionLog, LogEntry{Function: function, Arguments: args, ElapsedSeconds: elapsed})
}

// ActionLog returns a copy of the recorded action log.
func (s *Session) ActionLog() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogEntry, len(s.actionLog))
	copy(out, s.actionLog)
	return out
}

// CurrentResourceUsage returns the session's running resource totals.
func (s *Session) CurrentResourceUsage() judge.ResourceUsage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentResourceUsage
}

// ProblemID returns the session's problem identifier.
func (s *Session) ProblemID() string {
	return s.problem.ID
}

// resolveLanguageVersion applies spec.md §4.F argument-validation
// defaults/rejects for (lang, version).
func resolveLanguageVersion(lang string, version string) (language.CodeLanguage, language.ToolchainVersion, error) {
	codeLang, ok := language.ValidLanguage(lang)
	if !ok {
		return "", "", bherr.NewArgumentError("unknown code language %q", lang)
	}
	if version == "" {
		version = string(language.DefaultVersion)
	}
	v := language.ToolchainVersion(version)
	if _, err := language.Lookup(codeLang, v); err != nil {
		return "", "", bherr.NewArgumentError("%v", err)
	}
	return codeLang, v, nil
}
