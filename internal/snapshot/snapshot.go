// Package snapshot is the Session Snapshot codec (spec.md/SPEC_FULL.md
// Component L): it serializes the durable fields of a session to JSON so
// a long-running MCP server can persist and later resume one, grounded on
// src/ale_bench/session.py's save() method (original_source/) for the
// exact field set, expressed via encoding/json + a uuid-tagged identifier
// the way the teacher tags its own reports (internal/model/types.go uses
// plain JSON-tagged structs; google/uuid supplies the identifier the
// teacher's Report type leaves to the caller).
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/heurithm/benchbox/internal/judge"
)

// LogEntry mirrors session.LogEntry without importing the session
// package, keeping snapshot a leaf dependency the way the teacher's
// internal/model is a leaf the rest of the tree depends on, never the
// reverse.
type LogEntry struct {
	Function       string         `json:"function"`
	Arguments      map[string]any `json:"arguments"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
}

// State is the full durable session record, matching session.py's save()
// field set.
type State struct {
	SessionID                 string              `json:"session_id"`
	ProblemID                 string              `json:"problem_id"`
	LiteVersion               bool                `json:"lite_version"`
	PublicSeeds               []uint64            `json:"public_seeds"`
	PrivateSeeds              []uint64            `json:"private_seeds"`
	UseSameTimeScale          bool                `json:"use_same_time_scale"`
	MaximumResourceUsage      judge.ResourceUsage `json:"maximum_resource_usage"`
	SessionDurationSeconds    float64             `json:"session_duration_seconds"`
	VisualizationServerPort   int                 `json:"visualization_server_port"`
	NumWorkers                int                 `json:"num_workers"`
	CurrentResourceUsage      judge.ResourceUsage `json:"current_resource_usage"`
	ActionLog                 []LogEntry          `json:"action_log"`
	LastPublicEvalUnixSeconds float64             `json:"last_public_eval_time"`
	LastPrivateEvalUnixSeconds float64            `json:"last_private_eval_time"`
	SessionStartedAtUnix      float64             `json:"session_started_at"`
	SessionPausedAtUnix       *float64            `json:"session_paused_at"`
	PrivateEvalCalled         bool                `json:"private_eval_called"`
	Finished                  bool                `json:"finished"`
}

// NewSessionID generates a fresh identifier for a State that doesn't have
// one yet.
func NewSessionID() string {
	return uuid.NewString()
}

// Save encodes state as indented JSON to w.
func Save(w io.Writer, state State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	return nil
}

// Load decodes a State previously written by Save.
func Load(r io.Reader) (State, error) {
	var state State
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return State{}, fmt.Errorf("decode session snapshot: %w", err)
	}
	if _, err := uuid.Parse(state.SessionID); err != nil {
		return State{}, fmt.Errorf("session snapshot has an invalid session_id %q: %w", state.SessionID, err)
	}
	return state, nil
}
