// Package caserunner is the Case Runner (spec.md §4.C): it compiles a
// submission once, then runs it against every input in a bounded worker
// pool, judging each run and optionally rendering a visualisation. The
// worker pool is adapted — not copied verbatim — from the teacher's
// internal/orchestrator/orchestrator.go goroutine-per-collector +
// sync.WaitGroup + mutex-guarded-results-map pattern: the teacher never
// caps concurrency (every collector always runs), but spec.md's "at most
// num_workers in flight" contract needs a true semaphore cap, so the
// fan-out here is bounded with a buffered channel instead.
package caserunner

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/heurithm/benchbox/internal/backend"
	"github.com/heurithm/benchbox/internal/bherr"
	"github.com/heurithm/benchbox/internal/judge"
	"github.com/heurithm/benchbox/internal/language"
	"github.com/heurithm/benchbox/internal/obslog"
	"github.com/heurithm/benchbox/internal/profile"
)

// CompileTimeoutSeconds bounds the compilation phase (spec.md §4.C step 2).
const CompileTimeoutSeconds = 60.0

// Config describes one run_cases invocation.
type Config struct {
	Inputs            []string
	Code              string
	Language          language.CodeLanguage
	ToolchainVersion  language.ToolchainVersion
	TimeLimit         float64 // seconds
	MemoryLimit       int64   // bytes
	ProblemID         string
	ProblemType       judge.ProblemType
	ToolDir           string
	ReturnDetails     bool
	SkipVisualisation bool
	NumWorkers        int
	Backend           backend.Backend
	Log               *obslog.Logger
}

// RunCases implements spec.md §4.C end to end: compile once, then run
// every input's case pipeline, bounded to at most NumWorkers concurrent
// pipelines, preserving input order in the returned slice.
func RunCases(ctx context.Context, cfg Config) ([]judge.CaseResult, error) {
	spec, err := language.Lookup(cfg.Language, cfg.ToolchainVersion)
	if err != nil {
		return nil, bherr.NewArgumentError("%v", err)
	}

	ok, compileStderr, err := compile(ctx, cfg.Backend, cfg.Code, cfg.Language, spec)
	if err != nil {
		return nil, bherr.NewInternalError("compilation phase", err)
	}
	if !ok {
		cfg.Log.Printf("compilation failed for problem %s: %s", cfg.ProblemID, compileStderr)
		return judge.ReplicateCompilationError(len(cfg.Inputs), compileStderr), nil
	}

	results := make([]judge.CaseResult, len(cfg.Inputs))
	workers := cfg.NumWorkers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, input := range cfg.Inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, input string) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					results[i] = judge.NewRejected(judge.InternalError, fmt.Sprintf("case %d panicked: %v", i, r), 0, cfg.TimeLimit, 0)
				}
			}()
			results[i] = runOneCase(ctx, cfg, spec, i, input)
		}(i, input)
	}
	wg.Wait()

	if !cfg.ReturnDetails {
		for i := range results {
			results[i] = results[i].WithoutDetails()
		}
	}
	return results, nil
}

// compile stages the submission and compiles it once (spec.md §4.C
// "Compilation phase"). It returns whether compilation succeeded and
// whatever stderr was produced (used for the SyntaxError check on
// interpreted languages and surfaced as the COMPILATION_ERROR message).
func compile(ctx context.Context, b backend.Backend, code string, lang language.CodeLanguage, spec *language.Spec) (bool, string, error) {
	if err := b.WriteFile(ctx, spec.SubmissionFile, []byte(code)); err != nil {
		return false, "", fmt.Errorf("write submission: %w", err)
	}

	objectPath := ""
	if spec.ObjectFile != "" {
		objectPath = "tmp/" + spec.ObjectFile
		if err := b.WriteFile(ctx, objectPath, nil); err != nil {
			return false, "", fmt.Errorf("touch object file: %w", err)
		}
	}

	compileArgs := spec.BuildCompileArgs()
	var argv []string
	if lang.IsDynamicInterpreter() {
		argv = compileArgs
	} else {
		cmd := strings.Join(compileArgs, " ") +
			fmt.Sprintf("; cp /tmp/%s /tmp/%s; chmod 744 /tmp/%s", spec.ObjectFile, spec.ObjectFile, spec.ObjectFile)
		argv = []string{"sh", "-c", cmd}
	}

	result, err := b.ExecCommand(ctx, argv, ".", CompileTimeoutSeconds)
	if err != nil {
		return false, "", fmt.Errorf("run compile command: %w", err)
	}

	if lang.IsDynamicInterpreter() {
		failed := result.ExitCode != 0 || strings.Contains(result.Stderr, "SyntaxError")
		return !failed, result.Stderr, nil
	}

	failed := result.ExitCode != 0
	if !failed {
		size, sizeErr := b.FileSize(ctx, objectPath)
		if sizeErr != nil || size == 0 {
			failed = true
		}
	}
	return !failed, result.Stderr, nil
}

// caseDir derives each pipeline's private staging directory from a
// zero-padded index, per spec.md §5's "never shares mutable paths"
// requirement.
func caseDir(i int) string {
	return fmt.Sprintf("case%04d", i)
}

// runTimeoutSeconds mirrors spec.md §4.C's RUN_COMMAND envelope:
// ⌈T+0.1⌉+0.2 for the outer wall-clock timeout.
func runTimeoutSeconds(timeLimit float64) float64 {
	return math.Ceil(timeLimit+0.1) + 0.2
}

func runOneCase(ctx context.Context, cfg Config, spec *language.Spec, index int, input string) judge.CaseResult {
	dir := caseDir(index)
	if err := cfg.Backend.Mkdir(ctx, dir); err != nil {
		return judge.NewRejected(judge.InternalError, fmt.Sprintf("mkdir case dir: %v", err), 0, cfg.TimeLimit, 0)
	}

	files := map[string][]byte{
		dir + "/input.txt":    []byte(input),
		dir + "/output.txt":   nil,
		dir + "/profile.json": nil,
	}
	if err := cfg.Backend.WriteFiles(ctx, files); err != nil {
		return judge.NewRejected(judge.InternalError, fmt.Sprintf("stage case files: %v", err), 0, cfg.TimeLimit, 0)
	}

	runCommand := spec.BuildRunCommand("/tmp/" + spec.ObjectFile)
	var argv []string
	if cfg.ProblemType == judge.Reactive {
		argv = append([]string{"tester", "input.txt", "output.txt"}, runCommand...)
	} else {
		argv = runCommand
	}

	result, err := cfg.Backend.ExecCommand(ctx, argv, dir, runTimeoutSeconds(cfg.TimeLimit))
	if err != nil {
		return judge.NewRejected(judge.InternalError, fmt.Sprintf("run submission: %v", err), 0, cfg.TimeLimit, 0)
	}

	if result.ExitCode != 0 {
		if result.ElapsedSeconds > cfg.TimeLimit {
			v := judge.NewRejected(judge.TimeLimitExceeded, "run exceeded the time limit", cfg.TimeLimit+0.1, cfg.TimeLimit, 0)
			return withStrings(v, input, result.Stdout, result.Stderr)
		}
		v := judge.NewRejected(judge.RuntimeError, "submission exited with non-zero status", result.ElapsedSeconds, cfg.TimeLimit, 0)
		return withStrings(v, input, result.Stdout, result.Stderr)
	}

	profileRaw, err := cfg.Backend.ReadFile(ctx, dir+"/profile.json")
	if err != nil {
		return judge.NewRejected(judge.InternalError, fmt.Sprintf("read profile: %v", err), 0, cfg.TimeLimit, 0)
	}
	outcome := profile.Parse(string(profileRaw), cfg.TimeLimit, cfg.MemoryLimit, result.ElapsedSeconds)
	if outcome.Verdict != nil {
		return withStrings(*outcome.Verdict, input, result.Stdout, result.Stderr)
	}

	output, err := cfg.Backend.ReadFile(ctx, dir+"/output.txt")
	if err != nil {
		return judge.NewRejected(judge.InternalError, fmt.Sprintf("read output: %v", err), outcome.Profile.ExecutionTime(), cfg.TimeLimit, outcome.Profile.MemoryUsageBytes())
	}

	execTime, memUsage := outcome.Profile.ExecutionTime(), outcome.Profile.MemoryUsageBytes()
	var judged judge.CaseResult
	if cfg.ProblemType == judge.Reactive {
		// The tester already ran the solution and decided the verdict in
		// the single pass above; its stderr is the verdict source.
		judged = verdictFromTesterStderr(result.Stderr, execTime, cfg.TimeLimit, memUsage)
	} else {
		judged, err = judgeCase(ctx, cfg, dir, execTime, memUsage)
		if err != nil {
			return judge.NewRejected(judge.InternalError, fmt.Sprintf("judge case: %v", err), execTime, cfg.TimeLimit, memUsage)
		}
	}
	judged = withStrings(judged, input, string(output), "")

	if judged.JudgeResult == judge.Accepted && !cfg.SkipVisualisation {
		if vis, visErr := visualise(ctx, cfg, dir); visErr == nil {
			judged.Visualization = vis
		}
	}
	return judged
}

func withStrings(c judge.CaseResult, input, output, errStr string) judge.CaseResult {
	c.InputStr = &input
	c.OutputStr = &output
	if errStr != "" {
		c.ErrorStr = &errStr
	}
	return c
}

var scoreLinePattern = regexp.MustCompile(`^Score = (\d+)$`)

// judgeCase runs the tester (BATCH problems only: REACTIVE problems
// already ran the tester as the submission's driver, see
// verdictFromTesterStderr) and applies spec.md §4.C step 5's verdict
// rules.
func judgeCase(ctx context.Context, cfg Config, dir string, execTime float64, memUsage int64) (judge.CaseResult, error) {
	result, err := cfg.Backend.ExecCommand(ctx, []string{"tester", "input.txt", "output.txt"}, dir, runTimeoutSeconds(cfg.TimeLimit))
	if err != nil {
		return judge.CaseResult{}, err
	}
	if result.ExitCode != 0 {
		return judge.NewRejected(judge.WrongAnswer, result.Stderr, execTime, cfg.TimeLimit, memUsage), nil
	}
	return verdictFromTesterStderr(result.Stderr, execTime, cfg.TimeLimit, memUsage), nil
}

// verdictFromTesterStderr applies spec.md §4.C step 5's judge rules to a
// tester invocation that already exited 0 (a REACTIVE tester always has,
// by the time this is called, since a non-zero exit was already turned
// into RE/TLE by the caller).
func verdictFromTesterStderr(stderr string, execTime, timeLimit float64, memUsage int64) judge.CaseResult {
	if strings.Contains(stderr, "wrong answer: ") {
		idx := strings.Index(stderr, "wrong answer: ")
		return judge.NewRejected(judge.WrongAnswer, strings.TrimSpace(stderr[idx+len("wrong answer: "):]), execTime, timeLimit, memUsage)
	}
	if strings.TrimSpace(stderr) == "" {
		return judge.NewRejected(judge.WrongAnswer, "no score found", execTime, timeLimit, memUsage)
	}

	lines := strings.Split(strings.TrimRight(stderr, "\n"), "\n")
	last := lines[len(lines)-1]
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = strings.TrimSpace(lines[i])
			break
		}
	}
	if m := scoreLinePattern.FindStringSubmatch(last); m != nil {
		score, _ := strconv.Atoi(m[1])
		return judge.NewAccepted(score, execTime, timeLimit, memUsage)
	}
	return judge.NewRejected(judge.WrongAnswer, last, execTime, timeLimit, memUsage)
}

const htmlWrapperOpen = "<html><body>"
const htmlWrapperClose = "</body></html>"

// visualise runs the visualiser and strips the optional HTML wrapper
// (spec.md §4.C step 6).
func visualise(ctx context.Context, cfg Config, dir string) ([]byte, error) {
	result, err := cfg.Backend.ExecCommand(ctx, []string{"vis", "input.txt", "output.txt"}, dir, runTimeoutSeconds(cfg.TimeLimit))
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("visualiser exited with status %d", result.ExitCode)
	}
	artefact := strings.TrimSpace(result.Stdout)
	if artefact == "" {
		return nil, fmt.Errorf("visualiser produced an empty artefact")
	}
	if strings.HasPrefix(artefact, htmlWrapperOpen) && strings.HasSuffix(artefact, htmlWrapperClose) {
		artefact = artefact[len(htmlWrapperOpen) : len(artefact)-len(htmlWrapperClose)]
	}
	return []byte(artefact), nil
}
