package session

import (
	"context"
	"time"

	"github.com/heurithm/benchbox/internal/snapshot"
)

// Snapshot exports the session's durable state for persistence (spec.md
// §4.L), tagged with sessionID.
func (s *Session) Snapshot(sessionID string) snapshot.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := make([]snapshot.LogEntry, len(s.actionLog))
	for i, e := range s.actionLog {
		log[i] = snapshot.LogEntry{Function: e.Function, Arguments: e.Arguments, ElapsedSeconds: e.ElapsedSeconds}
	}

	var pausedAt *float64
	return snapshot.State{
		SessionID:                  sessionID,
		ProblemID:                  s.problem.ID,
		LiteVersion:                s.liteVersion,
		PublicSeeds:                s.publicSeeds,
		PrivateSeeds:               s.privateSeeds,
		UseSameTimeScale:           s.useSameTimeScale,
		MaximumResourceUsage:       s.maxResourceUsage,
		SessionDurationSeconds:     s.sessionDuration.Seconds(),
		NumWorkers:                 s.numWorkers,
		CurrentResourceUsage:       s.currentResourceUsage,
		ActionLog:                  log,
		LastPublicEvalUnixSeconds:  float64(s.lastPublicEvalTime.Unix()),
		LastPrivateEvalUnixSeconds: float64(s.lastPrivateEvalTime.Unix()),
		SessionStartedAtUnix:       float64(s.sessionStartedAt.Unix()),
		SessionPausedAtUnix:        pausedAt,
		PrivateEvalCalled:          s.privateEvalCalled,
		Finished:                  s.finished,
	}
}

// Restore rebuilds a Session from a previously saved State, regenerating
// the public/private inputs from their seeds (spec.md §4.L: a snapshot
// stores seeds, not the generated input content) and then overlaying the
// persisted budget/log/timing fields.
func Restore(ctx context.Context, cfg Config, state snapshot.State) (*Session, error) {
	cfg.LiteVersion = state.LiteVersion
	cfg.UseSameTimeScale = state.UseSameTimeScale
	cfg.MaximumResourceUsage = state.MaximumResourceUsage
	cfg.SessionDuration = time.Duration(state.SessionDurationSeconds * float64(time.Second))
	cfg.NumWorkers = state.NumWorkers

	s, err := New(ctx, cfg, state.PublicSeeds, state.PrivateSeeds)
	if err != nil {
		return nil, err
	}

	s.currentResourceUsage = state.CurrentResourceUsage
	s.privateEvalCalled = state.PrivateEvalCalled
	s.finished = state.Finished
	s.lastPublicEvalTime = time.Unix(int64(state.LastPublicEvalUnixSeconds), 0).UTC()
	s.lastPrivateEvalTime = time.Unix(int64(state.LastPrivateEvalUnixSeconds), 0).UTC()
	s.sessionStartedAt = time.Unix(int64(state.SessionStartedAtUnix), 0).UTC()

	s.actionLog = make([]LogEntry, len(state.ActionLog))
	for i, e := range state.ActionLog {
		s.actionLog[i] = LogEntry{Function: e.Function, Arguments: e.Arguments, ElapsedSeconds: e.ElapsedSeconds}
	}

	return s, nil
}
