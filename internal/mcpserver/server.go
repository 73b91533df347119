package mcpserver

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server instance exposing the session state
// machine's actions as tools, mirroring the teacher's internal/mcp.Server
// wrapper shape.
type Server struct {
	mcpServer *server.MCPServer
	store     *store
}

// NewServer creates an MCP server with every session action registered
// as a tool, backed by deps.
func NewServer(version string, deps Deps) *Server {
	s := server.NewMCPServer("benchbox", version, server.WithLogging())
	st := newStore(deps)
	registerTools(s, st)
	return &Server{mcpServer: s, store: st}
}

// Start runs the server in stdio mode (blocking).
func (s *Server) Start(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcpServer)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

func registerTools(s *server.MCPServer, st *store) {
	s.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a new benchmarking session for a problem, pre-generating its public and private inputs. Returns a session_id to pass to every other tool."),
		mcp.WithString("problem_id", mcp.Required(), mcp.Description("Problem identifier, e.g. ahc001")),
		mcp.WithBoolean("lite_version", mcp.Description("Lite flag, recorded on the session and in its snapshots; it does not change the session's cases or duration"), mcp.DefaultBool(false)),
	), handleStartSession(st))

	s.AddTool(mcp.NewTool("code_run",
		mcp.WithDescription("Compile and run a submission against a single ad hoc input, for quick iteration. Charges only the execution-time budget."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithString("input", mcp.Required(), mcp.Description("Raw input text for the single case")),
		mcp.WithString("code", mcp.Required()),
		mcp.WithString("language", mcp.Required(), mcp.Description("cpp, cpp20, cpp23, rust, go, or python")),
		mcp.WithString("version", mcp.Description("Toolchain version, defaults to the newest supported")),
	), handleCodeRun(st))

	s.AddTool(mcp.NewTool("case_gen",
		mcp.WithDescription("Generate inputs from seeds without evaluating them. Charges the case-generation budget."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithString("seeds", mcp.Required(), mcp.Description("Comma-separated list of unsigned integer seeds")),
		mcp.WithString("kwargs_json", mcp.Description("JSON object of string generator flags, e.g. {\"n\":\"100\"}")),
	), handleCaseGen(st))

	s.AddTool(mcp.NewTool("case_eval",
		mcp.WithDescription("Evaluate a submission against a subset of the pre-generated public inputs, selected by index."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithString("indices", mcp.Description("Comma-separated zero-based public input indices; omit for every public input")),
		mcp.WithString("code", mcp.Required()),
		mcp.WithString("language", mcp.Required()),
		mcp.WithString("version", mcp.Description("Toolchain version, defaults to the newest supported")),
		mcp.WithBoolean("skip_visualization", mcp.DefaultBool(false)),
	), handleCaseEval(st))

	s.AddTool(mcp.NewTool("case_gen_eval",
		mcp.WithDescription("Generate fresh inputs from seeds and evaluate a submission against them in one guarded action."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithString("seeds", mcp.Required(), mcp.Description("Comma-separated list of unsigned integer seeds")),
		mcp.WithString("kwargs_json", mcp.Description("JSON object of string generator flags")),
		mcp.WithString("code", mcp.Required()),
		mcp.WithString("language", mcp.Required()),
		mcp.WithString("version", mcp.Description("Toolchain version, defaults to the newest supported")),
		mcp.WithBoolean("skip_visualization", mcp.DefaultBool(false)),
	), handleCaseGenEval(st))

	s.AddTool(mcp.NewTool("local_visualization",
		mcp.WithDescription("Run one public input with visualisation enabled and return the rendered artefact."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based public input index")),
		mcp.WithString("code", mcp.Required()),
		mcp.WithString("language", mcp.Required()),
		mcp.WithString("version", mcp.Description("Toolchain version, defaults to the newest supported")),
	), handleLocalVisualization(st))

	s.AddTool(mcp.NewTool("public_eval",
		mcp.WithDescription("Evaluate a submission against the full public input set. Gated by the submission-interval guard."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithString("code", mcp.Required()),
		mcp.WithString("language", mcp.Required()),
		mcp.WithString("version", mcp.Description("Toolchain version, defaults to the newest supported")),
	), handlePublicEval(st))

	s.AddTool(mcp.NewTool("private_eval",
		mcp.WithDescription("Evaluate a submission against the full private input set. Callable exactly once per session. Returns the redacted result, rank, and performance."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithString("code", mcp.Required()),
		mcp.WithString("language", mcp.Required()),
		mcp.WithString("version", mcp.Description("Toolchain version, defaults to the newest supported")),
	), handlePrivateEval(st))

	s.AddTool(mcp.NewTool("save_session",
		mcp.WithDescription("Export a session's durable state as a JSON snapshot, for later resumption."),
		mcp.WithString("session_id", mcp.Required()),
	), handleSaveSession(st))

	s.AddTool(mcp.NewTool("load_session",
		mcp.WithDescription("Resume a session from a JSON snapshot produced by save_session. Returns the restored session_id."),
		mcp.WithString("snapshot_json", mcp.Required()),
	), handleLoadSession(st))
}
