// Package gen wraps the problem's input generator binary, turning a list
// of seeds into a list of generated input strings (spec.md §4.D), in the
// same "compose an argv, run it under the backend, read files back"
// style the case runner uses for compile/run/judge — grounded on the
// teacher's executor.Run call shape generalized to one specific tool
// invocation (internal/executor/executor.go).
package gen

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/heurithm/benchbox/internal/backend"
	"github.com/heurithm/benchbox/internal/bherr"
)

// GenerationTimeoutSeconds bounds the generator invocation (spec.md §4.D
// step 4, a fixed GENERATION_TIMEOUT).
const GenerationTimeoutSeconds = 60.0

// reservedKwarg is rejected with a warning rather than passed through,
// since it would collide with the generator's own output directory flag.
const reservedKwarg = "dir"

// Warn is called for a rejected reserved kwarg; nil by default.
var Warn func(format string, args ...any)

func warn(format string, args ...any) {
	if Warn != nil {
		Warn(format, args...)
	}
}

// GenerateInputs runs the problem's generator over seeds, with gen_kwargs
// passed as --key=value flags, and returns the produced inputs in seed
// order (spec.md §4.D).
func GenerateInputs(ctx context.Context, b backend.Backend, seeds []uint64, kwargs map[string]string, toolDir string) ([]string, error) {
	var seedLines strings.Builder
	for _, s := range seeds {
		fmt.Fprintf(&seedLines, "%d\n", s)
	}
	if err := b.WriteFile(ctx, "seeds.txt", []byte(seedLines.String())); err != nil {
		return nil, bherr.NewInternalError("write seeds.txt", err)
	}

	// Clear and recreate in/.
	if _, err := b.ExecCommand(ctx, []string{"rm", "-rf", "in"}, ".", GenerationTimeoutSeconds); err != nil {
		return nil, bherr.NewInternalError("clear in/ directory", err)
	}
	if err := b.Mkdir(ctx, "in"); err != nil {
		return nil, bherr.NewInternalError("recreate in/ directory", err)
	}

	argv := []string{"gen"}
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == reservedKwarg {
			warn("generator kwarg %q is reserved and was dropped", k)
			continue
		}
		argv = append(argv, fmt.Sprintf("--%s=%s", k, kwargs[k]))
	}
	argv = append(argv, "seeds.txt")

	result, err := b.ExecCommand(ctx, argv, toolDir, GenerationTimeoutSeconds)
	if err != nil {
		return nil, bherr.NewInternalError("run generator", err)
	}
	if result.ExitCode != 0 {
		return nil, bherr.NewInternalError(fmt.Sprintf("generator exited with status %d: %s", result.ExitCode, result.Stderr), nil)
	}

	paths, err := b.ListFiles(ctx, "in", "*.txt")
	if err != nil {
		return nil, bherr.NewInternalError("list generated inputs", err)
	}
	if err := validateSequentialNaming(paths, len(seeds)); err != nil {
		return nil, err
	}

	contents, err := b.ReadFiles(ctx, paths)
	if err != nil {
		return nil, bherr.NewInternalError("read generated inputs", err)
	}
	out := make([]string, len(contents))
	for i, c := range contents {
		out[i] = string(c)
	}
	return out, nil
}

// validateSequentialNaming requires in/0000.txt, in/0001.txt, ... with no
// gaps and exactly n entries (spec.md §4.D step 5).
func validateSequentialNaming(paths []string, n int) error {
	if len(paths) != n {
		return bherr.NewInternalError(fmt.Sprintf("generator produced %d files, expected %d", len(paths), n), nil)
	}
	for i, p := range paths {
		want := fmt.Sprintf("in/%04d.txt", i)
		if p != want {
			return bherr.NewInternalError(fmt.Sprintf("generated file %q does not match the expected zero-padded sequence (wanted %q)", p, want), nil)
		}
	}
	return nil
}
