package backend

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// chunkSize is the approximate size of one base64-encoded transfer block
// (spec.md §4.A: "chunk size on the order of 50 KB").
const chunkSize = 50 * 1024

// Transport is the minimal request/response surface a Sandbox needs from
// whatever channel reaches the remote isolated root (a Unix socket, an
// HTTP endpoint, a message queue — the case runner and session never see
// past this interface). No concrete wire protocol is wired in here: the
// pack gives no grounding for a specific RPC stack for this concern, so
// rather than invent an ungrounded dependency, Sandbox is shipped as a
// pluggable strategy that any Transport implementation can back.
type Transport interface {
	// Call sends one request envelope and returns the response envelope.
	Call(ctx context.Context, op string, payload []byte) ([]byte, error)
}

// Sandbox is the remote-isolated-root execution strategy: every Backend
// primitive is forwarded over Transport, with file contents chunked into
// base64 blocks and reassembled on each side, per spec.md §4.A. It
// implements the identical Backend interface the Local strategy does, so
// the case runner is oblivious to which one it is driving.
type Sandbox struct {
	transport Transport
}

// NewSandbox wraps an existing Transport as a Backend.
func NewSandbox(t Transport) *Sandbox {
	return &Sandbox{transport: t}
}

type chunk struct {
	Data string `json:"data"` // base64
}

func encodeChunks(data []byte) []chunk {
	if len(data) == 0 {
		return []chunk{{Data: ""}}
	}
	var chunks []chunk
	for off := 0; off < len(data); off += chunkSize {
		end := off + chunkSize
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, chunk{Data: base64.StdEncoding.EncodeToString(data[off:end])})
	}
	return chunks
}

func decodeChunks(chunks []chunk) ([]byte, error) {
	var out []byte
	for _, c := range chunks {
		b, err := base64.StdEncoding.DecodeString(c.Data)
		if err != nil {
			return nil, fmt.Errorf("decode chunk: %w", err)
		}
		out = append(out, b...)
	}
	return out, nil
}

type writeFileRequest struct {
	Path   string  `json:"path"`
	Chunks []chunk `json:"chunks"`
}

type readFileResponse struct {
	Chunks []chunk `json:"chunks"`
}

func (s *Sandbox) call(ctx context.Context, op string, req any, resp any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", op, err)
	}
	raw, err := s.transport.Call(ctx, op, payload)
	if err != nil {
		return fmt.Errorf("sandbox %s: %w", op, err)
	}
	if resp == nil {
		return nil
	}
	if err := json.Unmarshal(raw, resp); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", op, err)
	}
	return nil
}

func (s *Sandbox) WriteFile(ctx context.Context, path string, data []byte) error {
	return s.call(ctx, "write_file", writeFileRequest{Path: path, Chunks: encodeChunks(data)}, nil)
}

func (s *Sandbox) ReadFile(ctx context.Context, path string) ([]byte, error) {
	var resp readFileResponse
	if err := s.call(ctx, "read_file", map[string]string{"path": path}, &resp); err != nil {
		return nil, err
	}
	return decodeChunks(resp.Chunks)
}

func (s *Sandbox) ReadFiles(ctx context.Context, paths []string) ([][]byte, error) {
	out := make([][]byte, len(paths))
	for i, p := range paths {
		data, err := s.ReadFile(ctx, p)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func (s *Sandbox) WriteFiles(ctx context.Context, files map[string][]byte) error {
	for path, data := range files {
		if err := s.WriteFile(ctx, path, data); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sandbox) ListFiles(ctx context.Context, dir string, glob string) ([]string, error) {
	var resp struct {
		Paths []string `json:"paths"`
	}
	if err := s.call(ctx, "list_files", map[string]string{"dir": dir, "glob": glob}, &resp); err != nil {
		return nil, err
	}
	return resp.Paths, nil
}

func (s *Sandbox) FileSize(ctx context.Context, path string) (int64, error) {
	var resp struct {
		Size int64 `json:"size"`
	}
	if err := s.call(ctx, "file_size", map[string]string{"path": path}, &resp); err != nil {
		return 0, err
	}
	return resp.Size, nil
}

func (s *Sandbox) Mkdir(ctx context.Context, path string) error {
	return s.call(ctx, "mkdir", map[string]string{"path": path}, nil)
}

func (s *Sandbox) ExecCommand(ctx context.Context, argv []string, workdir string, timeoutSeconds float64) (*ExecResult, error) {
	req := struct {
		Argv    []string `json:"argv"`
		Workdir string   `json:"workdir"`
		Timeout float64  `json:"timeout_seconds"`
	}{Argv: argv, Workdir: workdir, Timeout: timeoutSeconds}
	var resp ExecResult
	if err := s.call(ctx, "exec_command", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Sandbox) SetupToolLinks(ctx context.Context, toolDir string) error {
	return s.call(ctx, "setup_tool_links", map[string]string{"tool_dir": toolDir}, nil)
}

func (s *Sandbox) Close() error {
	return s.call(context.Background(), "close", map[string]string{}, nil)
}
