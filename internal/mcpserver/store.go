// Package mcpserver is the MCP tool surface (SPEC_FULL.md Component K):
// it exposes the Session State Machine's guarded actions as MCP tools
// over stdio, grounded on the teacher's internal/mcp package
// (server.go's NewServer/registerTools shape, handlers.go's
// getArgs/stringArg/newTextResult/errResult helper style) generalized
// from one-shot diagnostic tools to session-scoped benchmarking actions.
package mcpserver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/heurithm/benchbox/internal/backend"
	"github.com/heurithm/benchbox/internal/bherr"
	"github.com/heurithm/benchbox/internal/obslog"
	"github.com/heurithm/benchbox/internal/problem"
	"github.com/heurithm/benchbox/internal/session"
	"github.com/heurithm/benchbox/internal/snapshot"
)

// Deps are the collaborators the MCP server's tool handlers are built
// from; kept as a plain struct of function values and interfaces the way
// the teacher wires collector.DefaultConfig/orchestrator.New together in
// cmd/melisai/main.go, rather than a DI framework.
type Deps struct {
	ProblemLoader  problem.Loader
	NewBackend     func(sessionID string) (backend.Backend, error)
	ToolDir        string
	Log            *obslog.Logger
	MaxSessions    int
	NumWorkers     int
	SessionLength  float64 // seconds
}

// store is the in-memory session registry the MCP server's handlers
// operate on, bounded to Deps.MaxSessions concurrently alive sessions.
type store struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[string]*session.Session
}

func newStore(deps Deps) *store {
	return &store{deps: deps, sessions: map[string]*session.Session{}}
}

func (st *store) create(ctx context.Context, problemID string, liteVersion bool) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.deps.MaxSessions {
		return "", bherr.NewBudgetError("at most %d sessions may be alive at once", st.deps.MaxSessions)
	}

	p, err := st.deps.ProblemLoader.Load(problemID)
	if err != nil {
		return "", fmt.Errorf("load problem %q: %w", problemID, err)
	}

	sessionID := snapshot.NewSessionID()
	b, err := st.deps.NewBackend(sessionID)
	if err != nil {
		return "", fmt.Errorf("create backend for session %q: %w", sessionID, err)
	}

	sess, err := session.New(ctx, session.Config{
		Problem:            p,
		LiteVersion:        liteVersion,
		Standings:          p.BuildStandings(),
		RankPerformanceMap: p.BuildRankPerformanceMap(),
		RelativeResults:    p.BuildRelativeResults(),
		ToolDir:            st.deps.ToolDir,
		SessionDuration:    time.Duration(st.deps.SessionLength * float64(time.Second)),
		NumWorkers:         st.deps.NumWorkers,
		Backend:            b,
		Log:                st.deps.Log,
	}, p.PublicSeeds, p.PrivateSeeds)
	if err != nil {
		return "", err
	}

	st.sessions[sessionID] = sess
	return sessionID, nil
}

func (st *store) get(sessionID string) (*session.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[sessionID]
	if !ok {
		return nil, bherr.NewArgumentError("unknown session_id %q", sessionID)
	}
	return sess, nil
}

func (st *store) save(sessionID string) (snapshot.State, error) {
	sess, err := st.get(sessionID)
	if err != nil {
		return snapshot.State{}, err
	}
	return sess.Snapshot(sessionID), nil
}

func (st *store) restore(ctx context.Context, state snapshot.State) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.deps.MaxSessions {
		return "", bherr.NewBudgetError("at most %d sessions may be alive at once", st.deps.MaxSessions)
	}

	p, err := st.deps.ProblemLoader.Load(state.ProblemID)
	if err != nil {
		return "", fmt.Errorf("load problem %q: %w", state.ProblemID, err)
	}
	b, err := st.deps.NewBackend(state.SessionID)
	if err != nil {
		return "", fmt.Errorf("create backend for session %q: %w", state.SessionID, err)
	}

	sess, err := session.Restore(ctx, session.Config{
		Problem:            p,
		Standings:          p.BuildStandings(),
		RankPerformanceMap: p.BuildRankPerformanceMap(),
		RelativeResults:    p.BuildRelativeResults(),
		ToolDir:            st.deps.ToolDir,
		Backend:            b,
		Log:                st.deps.Log,
		NumWorkers:         st.deps.NumWorkers,
	}, state)
	if err != nil {
		return "", err
	}

	st.sessions[state.SessionID] = sess
	return state.SessionID, nil
}
