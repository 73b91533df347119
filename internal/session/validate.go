package session

import (
	"github.com/heurithm/benchbox/internal/bherr"
)

// MaxCodeBytes is the submission size ceiling (spec.md §4.F argument
// validation, §8 boundary behaviour: 524288 bytes accepted, 524289
// rejected).
const MaxCodeBytes = 524288

// MinMemoryLimitBytes is the floor below which a requested memory limit
// is rejected (spec.md §8 boundary behaviour: 6MB-1 rejected, 6MB
// accepted).
const MinMemoryLimitBytes = 6 * 1024 * 1024

// MaxMemoryLimitBytes is the ceiling a requested memory limit may not
// exceed.
const MaxMemoryLimitBytes = 1024 * 1024 * 1024 * 1024 // 1TB, a generous upper bound

func validateCode(code string) error {
	if len(code) == 0 {
		return bherr.NewArgumentError("submission code must not be empty")
	}
	if len(code) > MaxCodeBytes {
		return bherr.NewArgumentError("submission code exceeds the %d byte limit (got %d)", MaxCodeBytes, len(code))
	}
	return nil
}

func validateLimits(timeLimit float64, memoryLimit int64) error {
	if timeLimit <= 0 {
		return bherr.NewArgumentError("time limit must be positive (got %v)", timeLimit)
	}
	if memoryLimit < MinMemoryLimitBytes {
		return bherr.NewArgumentError("memory limit must be at least %d bytes (got %d)", MinMemoryLimitBytes, memoryLimit)
	}
	if memoryLimit > MaxMemoryLimitBytes {
		return bherr.NewArgumentError("memory limit exceeds the %d byte ceiling (got %d)", MaxMemoryLimitBytes, memoryLimit)
	}
	return nil
}
