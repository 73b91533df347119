// Package language maps a declared (language, toolchain version) pair to
// the concrete compile/run command templates the case runner needs,
// grounded directly on the teacher's tool registry
// (internal/executor/registry.go: ToolSpec / Registry / BuildArgs),
// generalized from "BCC tool name -> args builder" to
// "submission language -> compile/run command builder".
package language

import "fmt"

// CodeLanguage identifies a submission language, including standard-version
// variants that only some toolchain generations support (mirroring
// AtCoder's own 2019/2023 judge-environment split).
type CodeLanguage string

const (
	CPP    CodeLanguage = "cpp"
	CPP17  CodeLanguage = "cpp17"
	CPP20  CodeLanguage = "cpp20"
	CPP23  CodeLanguage = "cpp23"
	Rust   CodeLanguage = "rust"
	Go     CodeLanguage = "go"
	Python CodeLanguage = "python" // the dynamic interpreter (spec.md §4.C compilation rules)
)

// ToolchainVersion identifies the judge environment generation.
type ToolchainVersion string

const (
	Version201907 ToolchainVersion = "201907"
	Version202301 ToolchainVersion = "202301"

	DefaultVersion = Version202301
)

// IsDynamicInterpreter reports whether l is executed without a separate
// compile step (spec.md §4.C compilation-failure rule 3).
func (l CodeLanguage) IsDynamicInterpreter() bool {
	return l == Python
}

// Key identifies one registry entry.
type Key struct {
	Language CodeLanguage
	Version  ToolchainVersion
}

// Spec describes how to stage, compile, and run a submission in one
// language/toolchain combination.
type Spec struct {
	Language          CodeLanguage
	Version           ToolchainVersion
	SubmissionFile    string                      // relative path under the staging dir, e.g. "submission.cpp"
	ObjectFile        string                      // relative path under /tmp, e.g. "object.out"
	BuildCompileArgs  func() []string             // argv for the compiler/toolchain invocation
	BuildRunCommand   func(objectPath string) []string
}

// incompatible records (version, language) pairs the judge environment
// never supported — spec.md §4.F argument validation: "reject 201907 +
// cpp20/cpp23".
var incompatible = map[Key]bool{
	{Version: Version201907, Language: CPP20}: true,
	{Version: Version201907, Language: CPP23}: true,
}

// Registry maps a (language, version) pair to its build specification.
var Registry = map[Key]*Spec{
	{Language: CPP, Version: Version201907}: {
		Language: CPP, Version: Version201907,
		SubmissionFile: "submission.cpp", ObjectFile: "object.out",
		BuildCompileArgs: func() []string {
			return []string{"g++", "-std=gnu++17", "-O2", "-o", "/tmp/object.out", "submission.cpp"}
		},
		BuildRunCommand: func(obj string) []string { return []string{obj} },
	},
	{Language: CPP, Version: Version202301}: {
		Language: CPP, Version: Version202301,
		SubmissionFile: "submission.cpp", ObjectFile: "object.out",
		BuildCompileArgs: func() []string {
			return []string{"g++", "-std=gnu++20", "-O2", "-o", "/tmp/object.out", "submission.cpp"}
		},
		BuildRunCommand: func(obj string) []string { return []string{obj} },
	},
	{Language: CPP20, Version: Version202301}: {
		Language: CPP20, Version: Version202301,
		SubmissionFile: "submission.cpp", ObjectFile: "object.out",
		BuildCompileArgs: func() []string {
			return []string{"g++", "-std=gnu++20", "-O2", "-o", "/tmp/object.out", "submission.cpp"}
		},
		BuildRunCommand: func(obj string) []string { return []string{obj} },
	},
	{Language: CPP23, Version: Version202301}: {
		Language: CPP23, Version: Version202301,
		SubmissionFile: "submission.cpp", ObjectFile: "object.out",
		BuildCompileArgs: func() []string {
			return []string{"g++", "-std=gnu++23", "-O2", "-o", "/tmp/object.out", "submission.cpp"}
		},
		BuildRunCommand: func(obj string) []string { return []string{obj} },
	},
	{Language: Rust, Version: Version201907}: {
		Language: Rust, Version: Version201907,
		SubmissionFile: "submission.rs", ObjectFile: "object.out",
		BuildCompileArgs: func() []string {
			return []string{"rustc", "-O", "--edition", "2018", "-o", "/tmp/object.out", "submission.rs"}
		},
		BuildRunCommand: func(obj string) []string { return []string{obj} },
	},
	{Language: Rust, Version: Version202301}: {
		Language: Rust, Version: Version202301,
		SubmissionFile: "submission.rs", ObjectFile: "object.out",
		BuildCompileArgs: func() []string {
			return []string{"rustc", "-O", "--edition", "2021", "-o", "/tmp/object.out", "submission.rs"}
		},
		BuildRunCommand: func(obj string) []string { return []string{obj} },
	},
	{Language: Go, Version: Version202301}: {
		Language: Go, Version: Version202301,
		SubmissionFile: "submission.go", ObjectFile: "object.out",
		BuildCompileArgs: func() []string {
			return []string{"go", "build", "-o", "/tmp/object.out", "submission.go"}
		},
		BuildRunCommand: func(obj string) []string { return []string{obj} },
	},
	{Language: Python, Version: Version201907}: {
		Language: Python, Version: Version201907,
		SubmissionFile: "submission.py", ObjectFile: "",
		BuildCompileArgs: func() []string {
			return []string{"python3", "-m", "py_compile", "submission.py"}
		},
		BuildRunCommand: func(string) []string { return []string{"python3", "submission.py"} },
	},
	{Language: Python, Version: Version202301}: {
		Language: Python, Version: Version202301,
		SubmissionFile: "submission.py", ObjectFile: "",
		BuildCompileArgs: func() []string {
			return []string{"python3", "-m", "py_compile", "submission.py"}
		},
		BuildRunCommand: func(string) []string { return []string{"python3", "submission.py"} },
	},
}

// Lookup resolves a (language, version) pair, rejecting unknown
// combinations and the historically-incompatible (201907, cpp20/cpp23)
// pairs per spec.md §4.F.
func Lookup(lang CodeLanguage, version ToolchainVersion) (*Spec, error) {
	key := Key{Language: lang, Version: version}
	if incompatible[key] {
		return nil, fmt.Errorf("toolchain version %s does not support language %s", version, lang)
	}
	spec, ok := Registry[key]
	if !ok {
		return nil, fmt.Errorf("no compile/run spec registered for language %q version %q", lang, version)
	}
	return spec, nil
}

// ValidLanguage reports whether s names a known CodeLanguage.
func ValidLanguage(s string) (CodeLanguage, bool) {
	switch CodeLanguage(s) {
	case CPP, CPP17, CPP20, CPP23, Rust, Go, Python:
		return CodeLanguage(s), true
	default:
		return "", false
	}
}
