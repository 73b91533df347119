package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/heurithm/benchbox/internal/judge"
	"github.com/heurithm/benchbox/internal/session"
	"github.com/heurithm/benchbox/internal/snapshot"
)

// getArgs safely extracts the arguments map from a CallToolRequest,
// matching the teacher's handlers.go helper shape.
func getArgs(request mcp.CallToolRequest) map[string]interface{} {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

func stringArg(args map[string]interface{}, key, defaultVal string) string {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return defaultVal
	}
	return s
}

func boolArg(args map[string]interface{}, key string, defaultVal bool) bool {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

func intArg(args map[string]interface{}, key string, defaultVal int) int {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	f, ok := val.(float64)
	if !ok {
		return defaultVal
	}
	return int(f)
}

// parseSeeds parses a comma-separated seed list. An empty raw string is a
// valid, if unusual, empty seed list (spec.md §9 Open Question #2), not
// an error — mirroring parseKwargs' nil/nil-on-empty treatment.
func parseSeeds(raw string) ([]uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseIndices(raw string) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseKwargs(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var kwargs map[string]string
	if err := json.Unmarshal([]byte(raw), &kwargs); err != nil {
		return nil, fmt.Errorf("invalid kwargs_json: %w", err)
	}
	return kwargs, nil
}

func submissionArgs(args map[string]interface{}) session.SubmissionArgs {
	return session.SubmissionArgs{
		Code:     stringArg(args, "code", ""),
		Language: stringArg(args, "language", ""),
		Version:  stringArg(args, "version", ""),
	}
}

func newTextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}}}
}

func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{IsError: true, Content: []mcp.Content{mcp.TextContent{Type: "text", Text: msg}}}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errResult(fmt.Sprintf("json marshal failed: %v", err))
	}
	return newTextResult(string(data))
}

func handleStartSession(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		problemID := stringArg(args, "problem_id", "")
		if problemID == "" {
			return errResult("problem_id is required"), nil
		}
		sessionID, err := st.create(ctx, problemID, boolArg(args, "lite_version", false))
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(map[string]string{"session_id": sessionID}), nil
	}
}

func handleCodeRun(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		sess, err := st.get(stringArg(args, "session_id", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		result, err := sess.CodeRun(ctx, stringArg(args, "input", ""), submissionArgs(args))
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(result), nil
	}
}

func handleCaseGen(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		sess, err := st.get(stringArg(args, "session_id", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		seeds, err := parseSeeds(stringArg(args, "seeds", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		kwargs, err := parseKwargs(stringArg(args, "kwargs_json", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		inputs, err := sess.CaseGen(ctx, seeds, kwargs)
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(map[string]any{"num_inputs": len(inputs)}), nil
	}
}

func handleCaseEval(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		sess, err := st.get(stringArg(args, "session_id", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		indices := parseIndices(stringArg(args, "indices", ""))
		result, err := sess.CaseEval(ctx, indices, submissionArgs(args), boolArg(args, "skip_visualization", false))
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(result), nil
	}
}

func handleCaseGenEval(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		sess, err := st.get(stringArg(args, "session_id", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		seeds, err := parseSeeds(stringArg(args, "seeds", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		kwargs, err := parseKwargs(stringArg(args, "kwargs_json", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		result, err := sess.CaseGenEval(ctx, seeds, kwargs, submissionArgs(args), boolArg(args, "skip_visualization", false))
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(result), nil
	}
}

func handleLocalVisualization(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		sess, err := st.get(stringArg(args, "session_id", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		artefact, err := sess.LocalVisualization(ctx, intArg(args, "index", 0), submissionArgs(args))
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(map[string]any{"visualization": string(artefact)}), nil
	}
}

func handlePublicEval(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		sess, err := st.get(stringArg(args, "session_id", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		result, err := sess.PublicEval(ctx, submissionArgs(args))
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(result), nil
	}
}

func handlePrivateEval(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		sess, err := st.get(stringArg(args, "session_id", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		result, rank, performance, err := sess.PrivateEval(ctx, submissionArgs(args))
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(struct {
			Result      judge.Result `json:"result"`
			Rank        int          `json:"rank"`
			Performance float64      `json:"performance"`
		}{result, rank, performance}), nil
	}
}

func handleSaveSession(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		state, err := st.save(stringArg(args, "session_id", ""))
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(state), nil
	}
}

func handleLoadSession(st *store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := getArgs(request)
		raw := stringArg(args, "snapshot_json", "")
		if raw == "" {
			return errResult("snapshot_json is required"), nil
		}
		state, err := snapshot.Load(strings.NewReader(raw))
		if err != nil {
			return errResult(err.Error()), nil
		}
		sessionID, err := st.restore(ctx, state)
		if err != nil {
			return errResult(err.Error()), nil
		}
		return jsonResult(map[string]string{"session_id": sessionID}), nil
	}
}
