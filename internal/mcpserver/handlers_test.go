package mcpserver

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetArgsNilArguments(t *testing.T) {
	req := mcp.CallToolRequest{}
	args := getArgs(req)
	if len(args) != 0 {
		t.Fatalf("expected empty map, got %v", args)
	}
}

func TestGetArgsWrongType(t *testing.T) {
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: "not a map"}}
	if args := getArgs(req); len(args) != 0 {
		t.Fatalf("expected empty map for wrong type, got %v", args)
	}
}

func TestStringArgPresentAndMissing(t *testing.T) {
	args := map[string]interface{}{"name": "hello"}
	if got := stringArg(args, "name", "default"); got != "hello" {
		t.Errorf("got %q, want hello", got)
	}
	if got := stringArg(args, "missing", "default"); got != "default" {
		t.Errorf("got %q, want default", got)
	}
}

func TestBoolArg(t *testing.T) {
	args := map[string]interface{}{"skip": true}
	if !boolArg(args, "skip", false) {
		t.Error("expected true")
	}
	if boolArg(args, "missing", false) {
		t.Error("expected the default false")
	}
}

func TestParseSeedsEmptyStringIsEmptyList(t *testing.T) {
	seeds, err := parseSeeds("")
	if err != nil {
		t.Fatalf("an empty seed string should be allowed, got %v", err)
	}
	if len(seeds) != 0 {
		t.Errorf("expected zero seeds, got %v", seeds)
	}
}

func TestParseSeedsParsesCommaList(t *testing.T) {
	seeds, err := parseSeeds("0, 1,2")
	if err != nil {
		t.Fatalf("parseSeeds: %v", err)
	}
	want := []uint64{0, 1, 2}
	if len(seeds) != len(want) {
		t.Fatalf("got %v, want %v", seeds, want)
	}
	for i := range want {
		if seeds[i] != want[i] {
			t.Errorf("seed %d: got %d, want %d", i, seeds[i], want[i])
		}
	}
}

func TestParseIndicesSkipsMalformed(t *testing.T) {
	indices := parseIndices("0,x,2")
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 2 {
		t.Errorf("got %v, want [0 2]", indices)
	}
}

func TestParseKwargsEmptyReturnsNil(t *testing.T) {
	kwargs, err := parseKwargs("")
	if err != nil || kwargs != nil {
		t.Errorf("got %v, %v, want nil, nil", kwargs, err)
	}
}

func TestParseKwargsInvalidJSON(t *testing.T) {
	if _, err := parseKwargs("not json"); err == nil {
		t.Fatal("expected an error for invalid kwargs_json")
	}
}
