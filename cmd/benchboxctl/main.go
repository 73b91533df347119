// benchboxctl — local benchmarking harness for score-based heuristic
// programming contests.
//
// Compiles and runs a candidate solution under strict CPU/memory/wall-time
// limits against a contest problem's inputs, judges the output via the
// problem's tester, and reports per-case and aggregate scores. Also starts
// the MCP tool surface over stdio for agent-driven use.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heurithm/benchbox/internal/backend"
	"github.com/heurithm/benchbox/internal/config"
	"github.com/heurithm/benchbox/internal/judge"
	"github.com/heurithm/benchbox/internal/obslog"
	"github.com/heurithm/benchbox/internal/problem"
	"github.com/heurithm/benchbox/internal/session"
)

var version = "0.1.0"

// runSessionDuration is generous enough to never be the reason a single
// CLI invocation's public_eval call is rejected as finished.
const runSessionDuration = 24 * time.Hour

func main() {
	rootCmd := &cobra.Command{
		Use:     "benchboxctl",
		Short:   "Local benchmarking harness for score-based heuristic programming contests",
		Version: version,
	}

	rootCmd.AddCommand(newRunCmd(), newMCPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		problemsDir string
		problemID   string
		codeFile    string
		language    string
		toolchain   string
		toolDir     string
		workDir     string
		numWorkers  int
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a submission against a problem's full public input set",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(codeFile)
			if err != nil {
				return fmt.Errorf("read submission %q: %w", codeFile, err)
			}

			p, err := problem.NewDirLoader(problemsDir, os.ReadFile).Load(problemID)
			if err != nil {
				return fmt.Errorf("load problem %q: %w", problemID, err)
			}

			if workDir == "" {
				workDir = os.TempDir() + "/benchboxctl-" + problemID
			}
			b, err := backend.NewLocal(workDir, !quiet)
			if err != nil {
				return fmt.Errorf("create local backend: %w", err)
			}
			defer b.Close()

			log := obslog.New("benchboxctl", os.Stderr, !quiet)

			sess, err := session.New(cmd.Context(), session.Config{
				Problem:            p,
				Standings:          p.BuildStandings(),
				RankPerformanceMap: p.BuildRankPerformanceMap(),
				RelativeResults:    p.BuildRelativeResults(),
				ToolDir:            toolDir,
				SessionDuration:    runSessionDuration,
				// One public_eval call is the whole budget of a run.
				MaximumResourceUsage: judge.ResourceUsage{NumCallPublicEval: 1},
				NumWorkers:           resolveWorkerCount(numWorkers),
				Backend:            b,
				Log:                log,
			}, p.PublicSeeds, p.PrivateSeeds)
			if err != nil {
				return fmt.Errorf("start session: %w", err)
			}

			result, err := sess.PublicEval(cmd.Context(), session.SubmissionArgs{
				Code:     string(code),
				Language: language,
				Version:  toolchain,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&problemsDir, "problems-dir", ".", "Directory containing <problem_id>/problem.json descriptors")
	cmd.Flags().StringVar(&problemID, "problem", "", "Problem identifier")
	cmd.Flags().StringVar(&codeFile, "code", "", "Path to the submission source file")
	cmd.Flags().StringVar(&language, "language", "cpp", "Submission language: cpp, cpp20, cpp23, rust, go, python")
	cmd.Flags().StringVar(&toolchain, "toolchain-version", "", "Toolchain version, defaults to the newest supported")
	cmd.Flags().StringVar(&toolDir, "tool-dir", "tools", "Directory with the problem's gen/tester/vis binaries")
	cmd.Flags().StringVar(&workDir, "work-dir", "", "Scratch directory for the local backend, defaults to a temp dir")
	cmd.Flags().IntVar(&numWorkers, "num-workers", 0, "Parallel case workers, defaults to NUM_WORKERS env or 4")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress logging")
	cmd.MarkFlagRequired("problem")
	cmd.MarkFlagRequired("code")

	return cmd
}

func newMCPCmd() *cobra.Command {
	var (
		problemsDir string
		toolDir     string
		workDirRoot string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the Model Context Protocol (MCP) server over stdio",
		Long: `Starts a JSON-RPC server implementing the Model Context Protocol (MCP).
This lets an AI agent drive a benchmarking session's actions interactively.

Communication happens over standard input/output (stdio).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.FromEnv()
			srv := newMCPServer(cfg, problemsDir, toolDir, workDirRoot)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&problemsDir, "problems-dir", ".", "Directory containing <problem_id>/problem.json descriptors")
	cmd.Flags().StringVar(&toolDir, "tool-dir", "tools", "Directory with each problem's gen/tester/vis binaries")
	cmd.Flags().StringVar(&workDirRoot, "work-dir-root", os.TempDir()+"/benchbox-sessions", "Root directory under which each session's local backend is rooted")

	return cmd
}

// resolveWorkerCount applies the CLI-flag-overrides-env-default rule
// shared by every NUM_WORKERS-consuming entry point.
func resolveWorkerCount(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return config.FromEnv().NumWorkers
}
