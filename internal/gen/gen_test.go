package gen

import (
	"context"
	"strings"
	"testing"

	"github.com/heurithm/benchbox/internal/backend"
)

// argvBackend records the argv of every ExecCommand call; every other
// primitive succeeds without doing anything.
type argvBackend struct{ argvs [][]string }

func (b *argvBackend) WriteFile(ctx context.Context, path string, data []byte) error { return nil }
func (b *argvBackend) ReadFile(ctx context.Context, path string) ([]byte, error)    { return nil, nil }
func (b *argvBackend) ReadFiles(ctx context.Context, paths []string) ([][]byte, error) {
	return make([][]byte, len(paths)), nil
}
func (b *argvBackend) WriteFiles(ctx context.Context, files map[string][]byte) error { return nil }
func (b *argvBackend) ListFiles(ctx context.Context, dir string, glob string) ([]string, error) {
	return nil, nil
}
func (b *argvBackend) FileSize(ctx context.Context, path string) (int64, error) { return 0, nil }
func (b *argvBackend) Mkdir(ctx context.Context, path string) error            { return nil }
func (b *argvBackend) ExecCommand(ctx context.Context, argv []string, workdir string, timeoutSeconds float64) (*backend.ExecResult, error) {
	b.argvs = append(b.argvs, argv)
	return &backend.ExecResult{}, nil
}
func (b *argvBackend) SetupToolLinks(ctx context.Context, toolDir string) error { return nil }
func (b *argvBackend) Close() error                                            { return nil }

func TestValidateSequentialNamingAccepts(t *testing.T) {
	paths := []string{"in/0000.txt", "in/0001.txt", "in/0002.txt"}
	if err := validateSequentialNaming(paths, 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateSequentialNamingRejectsGap(t *testing.T) {
	paths := []string{"in/0000.txt", "in/0002.txt"}
	if err := validateSequentialNaming(paths, 2); err == nil {
		t.Error("expected an error for a non-sequential name")
	}
}

func TestValidateSequentialNamingRejectsWrongCount(t *testing.T) {
	paths := []string{"in/0000.txt"}
	if err := validateSequentialNaming(paths, 3); err == nil {
		t.Error("expected an error when the count does not match the seed count")
	}
}

func TestReservedKwargIsDropped(t *testing.T) {
	var warned string
	Warn = func(format string, args ...any) { warned = format }
	defer func() { Warn = nil }()

	// With no seeds the generator is expected to produce no files, so
	// GenerateInputs runs to completion against the recording backend.
	b := &argvBackend{}
	kwargs := map[string]string{reservedKwarg: "x", "n": "5"}
	if _, err := GenerateInputs(context.Background(), b, nil, kwargs, "tools"); err != nil {
		t.Fatalf("GenerateInputs: %v", err)
	}
	if warned == "" {
		t.Error("expected the warn hook to fire")
	}
	var genArgv []string
	for _, argv := range b.argvs {
		if len(argv) > 0 && argv[0] == "gen" {
			genArgv = argv
		}
	}
	if got, want := strings.Join(genArgv, " "), "gen --n=5 seeds.txt"; got != want {
		t.Errorf("generator argv = %q, want %q", got, want)
	}
}
