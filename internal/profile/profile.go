// Package profile parses the resource-usage record the timing wrapper
// writes alongside every solution run, converting it into either a
// structured Profile or a case verdict (spec.md §4.B), following the
// teacher's ordered-rule parsing style in internal/executor/parsers.go
// (ParseHistogram / ParseTabularEvents): strip noise lines, parse the
// structured remainder, fall back to a verdict/sentinel when the shape
// doesn't match.
package profile

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/heurithm/benchbox/internal/judge"
)

// Profile is the structured resource-usage record emitted by the timing
// wrapper (spec.md §6 "Profile file format").
type Profile struct {
	ExitStatus             int
	WallSeconds            float64
	UserCPUSeconds         float64
	SystemCPUSeconds       float64
	MaxRSSKilobytes        int64
}

// ExecutionTime is max(wall, user_cpu+system_cpu), per spec.md §4.B rule 5.
func (p Profile) ExecutionTime() float64 {
	return math.Max(p.WallSeconds, p.UserCPUSeconds+p.SystemCPUSeconds)
}

// MemoryUsageBytes converts the kilobyte RSS reading to bytes.
func (p Profile) MemoryUsageBytes() int64 {
	return p.MaxRSSKilobytes * 1024
}

const (
	sigKillPrefix    = "Command terminated by signal 9"
	nonZeroExitPrefix = "Command exited with non-zero status"
)

// record mirrors the on-disk JSON shape; pointer fields let Parse tell
// "absent" apart from "present and zero".
type record struct {
	ExitStatus            *int     `json:"exit_status"`
	ElapsedTimeSeconds     *float64 `json:"elapsed_time_seconds"`
	UserCPUSeconds         *float64 `json:"user_cpu_seconds"`
	SystemCPUSeconds       *float64 `json:"system_cpu_seconds"`
	MaxRSSKilobytes        *int64   `json:"max_resident_set_size_kbytes"`
}

// Outcome is the result of Parse: either a usable Profile (caller proceeds
// to judge the case), or a verdict that should be returned directly.
type Outcome struct {
	Profile *Profile
	Verdict *judge.CaseResult
}

// dropFirstLine removes the first line of s (used by rules 2 and 3).
func dropFirstLine(s string) string {
	idx := strings.IndexByte(s, '\n')
	if idx < 0 {
		return ""
	}
	return s[idx+1:]
}

// Parse applies the 9 ordered rules of spec.md §4.B to raw, the content of
// profile.json (possibly empty, possibly prefixed with one of the two
// informational lines). hostWallSeconds is the wall-clock time the case
// runner itself observed for the whole exec_command invocation, used only
// when raw is empty (rule 1).
func Parse(raw string, timeLimit float64, memoryLimitBytes int64, hostWallSeconds float64) Outcome {
	// Rule 1: empty content.
	if strings.TrimSpace(raw) == "" {
		if hostWallSeconds <= timeLimit {
			v := judge.NewRejected(judge.RuntimeError, "empty profile and no timeout observed", hostWallSeconds, timeLimit, 0)
			return Outcome{Verdict: &v}
		}
		v := judge.NewRejected(judge.TimeLimitExceeded, "empty profile, host wall exceeded time limit", timeLimit+0.1, timeLimit, 0)
		return Outcome{Verdict: &v}
	}

	content := raw
	tleFlag := false

	// Rule 2: signal-9 prefix.
	if strings.HasPrefix(content, sigKillPrefix) {
		content = dropFirstLine(content)
		tleFlag = true
	} else if strings.HasPrefix(content, nonZeroExitPrefix) {
		// Rule 3: non-zero-status prefix.
		content = dropFirstLine(content)
	}

	// Rule 4: parse the remainder.
	content = strings.TrimSpace(content)
	var rec record
	if err := json.Unmarshal([]byte(content), &rec); err != nil {
		v := judge.NewRejected(judge.WrongAnswer, "profile content could not be parsed", timeLimit+0.1, timeLimit, 0)
		return Outcome{Verdict: &v}
	}
	if rec.ExitStatus == nil || rec.ElapsedTimeSeconds == nil || rec.UserCPUSeconds == nil ||
		rec.SystemCPUSeconds == nil || rec.MaxRSSKilobytes == nil {
		v := judge.NewRejected(judge.InternalError, "profile record missing required fields", timeLimit+0.1, timeLimit, 0)
		return Outcome{Verdict: &v}
	}

	p := Profile{
		ExitStatus:       *rec.ExitStatus,
		WallSeconds:       *rec.ElapsedTimeSeconds,
		UserCPUSeconds:    *rec.UserCPUSeconds,
		SystemCPUSeconds:  *rec.SystemCPUSeconds,
		MaxRSSKilobytes:   *rec.MaxRSSKilobytes,
	}

	// Rule 5.
	execTime := p.ExecutionTime()
	memUsage := p.MemoryUsageBytes()

	// Rule 6.
	if p.ExitStatus != 0 {
		v := judge.NewRejected(judge.RuntimeError, "solution exited with non-zero status", execTime, timeLimit, memUsage)
		return Outcome{Verdict: &v}
	}

	// Rule 7.
	if execTime > timeLimit || tleFlag {
		v := judge.NewRejected(judge.TimeLimitExceeded, "execution time exceeded the time limit", execTime, timeLimit, memUsage)
		return Outcome{Verdict: &v}
	}

	// Rule 8.
	if memUsage > memoryLimitBytes {
		v := judge.NewRejected(judge.MemoryLimitExceeded, "memory usage exceeded the memory limit", execTime, timeLimit, memUsage)
		return Outcome{Verdict: &v}
	}

	// Rule 9.
	return Outcome{Profile: &p}
}
