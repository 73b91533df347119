package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	root := t.TempDir()
	l, err := NewLocal(root, false)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return l
}

func TestWriteReadFileRoundTrip(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()
	if err := l.WriteFile(ctx, "in/0000.txt", []byte("hello")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := l.ReadFile(ctx, "in/0000.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want hello", got)
	}
}

func TestListFilesSortedLexicographically(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()
	for _, name := range []string{"in/0002.txt", "in/0000.txt", "in/0001.txt"} {
		if err := l.WriteFile(ctx, name, []byte("x")); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}
	got, err := l.ListFiles(ctx, "in", "*.txt")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{"in/0000.txt", "in/0001.txt", "in/0002.txt"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFileSize(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()
	if err := l.WriteFile(ctx, "output.txt", []byte("12345")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	size, err := l.FileSize(ctx, "output.txt")
	if err != nil {
		t.Fatalf("FileSize: %v", err)
	}
	if size != 5 {
		t.Errorf("got %d, want 5", size)
	}
}

func TestMkdirIdempotent(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()
	if err := l.Mkdir(ctx, "case0000"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := l.Mkdir(ctx, "case0000"); err != nil {
		t.Fatalf("Mkdir (second call): %v", err)
	}
	if _, err := os.Stat(filepath.Join(l.Root, "case0000")); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestExecCommandCapturesOutputAndExitCode(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()
	result, err := l.ExecCommand(ctx, []string{"sh", "-c", "echo out; echo err 1>&2; exit 3"}, ".", 5.0)
	if err != nil {
		t.Fatalf("ExecCommand: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("exit code: got %d, want 3", result.ExitCode)
	}
	if result.Stdout != "out\n" {
		t.Errorf("stdout: got %q, want %q", result.Stdout, "out\n")
	}
	if result.Stderr != "err\n" {
		t.Errorf("stderr: got %q, want %q", result.Stderr, "err\n")
	}
}

func TestExecCommandTimeout(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()
	result, err := l.ExecCommand(ctx, []string{"sleep", "5"}, ".", 0.1)
	if err != nil {
		t.Fatalf("ExecCommand: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result even when timed out")
	}
}

func TestSetupToolLinksSkipsMissingBinaries(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()
	if err := l.SetupToolLinks(ctx, "tools"); err != nil {
		t.Fatalf("SetupToolLinks: %v", err)
	}
}
