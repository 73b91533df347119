package main

import (
	"os"

	"github.com/heurithm/benchbox/internal/backend"
	"github.com/heurithm/benchbox/internal/config"
	"github.com/heurithm/benchbox/internal/mcpserver"
	"github.com/heurithm/benchbox/internal/obslog"
	"github.com/heurithm/benchbox/internal/problem"
)

// newMCPServer wires the MCP tool surface's dependencies: a directory-backed
// problem loader and a per-session Local backend rooted under workDirRoot.
func newMCPServer(cfg config.Config, problemsDir, toolDir, workDirRoot string) *mcpserver.Server {
	log := obslog.New("mcpserver", os.Stderr, true)

	deps := mcpserver.Deps{
		ProblemLoader: problem.NewDirLoader(problemsDir, os.ReadFile),
		NewBackend: func(sessionID string) (backend.Backend, error) {
			return backend.NewLocal(workDirRoot+"/"+sessionID, false)
		},
		ToolDir:       toolDir,
		Log:           log,
		MaxSessions:   cfg.MaxSessions,
		NumWorkers:    cfg.NumWorkers,
		SessionLength: 24 * 60 * 60,
	}

	return mcpserver.NewServer(version, deps)
}
