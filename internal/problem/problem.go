// Package problem defines the contest problem descriptor the session
// reads limits and scoring policy from, and a small Loader abstraction
// for fetching one. Dataset/problem-loader internals are explicitly out
// of scope for this module (spec.md Non-goals); this package carries
// only the fields the session and case runner actually consume, grounded
// on the teacher's plain JSON-tagged config-struct style
// (internal/model/types.go).
package problem

import (
	"fmt"

	"github.com/heurithm/benchbox/internal/judge"
	"github.com/heurithm/benchbox/internal/standings"
)

// Problem is the subset of contest metadata the session state machine
// and case runner need: limits, scoring policy, and the seed lists used
// to pre-generate public/private inputs.
type Problem struct {
	ID                        string            `json:"id"`
	Type                      judge.ProblemType `json:"type"`
	ScoreType                 judge.ScoreType   `json:"score_type"`
	TimeLimitSeconds          float64           `json:"time_limit_seconds"`
	MemoryLimitBytes          int64             `json:"memory_limit_bytes"`
	PublicSeeds               []uint64          `json:"public_seeds"`
	PrivateSeeds              []uint64          `json:"private_seeds"`
	SubmissionIntervalSeconds float64           `json:"submission_interval_seconds"`
	AllowScoreNonACPublic     bool              `json:"allow_score_non_ac_public"`
	NoVisualisation           bool              `json:"no_visualisation"`

	// Relative-scoring policy (spec.md §3 "RelativeResults"), published
	// alongside the contest's standings table and performance-anchor map.
	// All five are optional: a problem with none configured falls back to
	// absolute-score ranking, and private_eval reports rank 0 if neither
	// is set at all.
	RelativeScoreType     standings.RelativeScoreType `json:"relative_score_type,omitempty"`
	RelativeMaxScore      float64                     `json:"relative_max_score"`
	RelativeResultsScores [][]float64                 `json:"relative_results_scores,omitempty"`
	StandingsTable        []StandingsRow              `json:"standings_table,omitempty"`
	RankPerformanceTable  []RankPerformanceRow         `json:"rank_performance_table,omitempty"`
}

// StandingsRow is one published (lo, score) row of a contest's standings
// table, the wire/descriptor shape standings.LoScore is built from.
type StandingsRow struct {
	Lo    int     `json:"lo"`
	Score float64 `json:"score"`
}

// RankPerformanceRow is one published (rank, performance) anchor, the
// wire/descriptor shape standings.Anchor is built from.
type RankPerformanceRow struct {
	Rank        float64 `json:"rank"`
	Performance float64 `json:"performance"`
}

// BuildStandings constructs the contest's Standings from StandingsTable,
// or nil if the problem carries no standings table.
func (p *Problem) BuildStandings() *standings.Standings {
	if len(p.StandingsTable) == 0 {
		return nil
	}
	pairs := make([]standings.LoScore, len(p.StandingsTable))
	for i, row := range p.StandingsTable {
		pairs[i] = standings.LoScore{Lo: row.Lo, Score: row.Score}
	}
	return standings.NewFromLoScorePairs(pairs)
}

// BuildRankPerformanceMap constructs the contest's RankPerformanceMap
// from RankPerformanceTable, or nil if the problem carries no anchors.
func (p *Problem) BuildRankPerformanceMap() *standings.RankPerformanceMap {
	if len(p.RankPerformanceTable) == 0 {
		return nil
	}
	anchors := make([]standings.Anchor, len(p.RankPerformanceTable))
	for i, row := range p.RankPerformanceTable {
		anchors[i] = standings.Anchor{Rank: row.Rank, Performance: row.Performance}
	}
	return standings.NewRankPerformanceMap(anchors)
}

// BuildRelativeResults constructs the contest's RelativeResults table
// from RelativeResultsScores, or nil if the problem carries no historical
// score table (relative scoring is then unavailable and private_eval
// falls back to absolute-score ranking).
func (p *Problem) BuildRelativeResults() *standings.RelativeResults {
	if len(p.RelativeResultsScores) == 0 {
		return nil
	}
	return &standings.RelativeResults{
		Scores:    p.RelativeResultsScores,
		ScoreType: p.RelativeScoreType,
		MaxScore:  p.RelativeMaxScore,
	}
}

// Loader fetches a Problem by ID. Dataset storage/caching is out of
// scope; implementations only need to produce a populated Problem.
type Loader interface {
	Load(problemID string) (*Problem, error)
}

// FixtureLoader serves a fixed, in-memory set of problems — used for
// tests and local development without a dataset backend.
type FixtureLoader struct {
	problems map[string]*Problem
}

// NewFixtureLoader builds a FixtureLoader from a set of problems, keyed
// by their own ID field.
func NewFixtureLoader(problems ...*Problem) *FixtureLoader {
	m := make(map[string]*Problem, len(problems))
	for _, p := range problems {
		m[p.ID] = p
	}
	return &FixtureLoader{problems: m}
}

func (f *FixtureLoader) Load(problemID string) (*Problem, error) {
	p, ok := f.problems[problemID]
	if !ok {
		return nil, fmt.Errorf("problem %q not found", problemID)
	}
	return p, nil
}

// DirLoader reads <Root>/<problemID>/problem.json from disk and decodes
// it into a Problem. It reads only that one JSON descriptor; it does not
// parse a full dataset.
type DirLoader struct {
	Root string
	read func(path string) ([]byte, error)
}

// NewDirLoader builds a DirLoader rooted at root, using readFile to load
// the per-problem descriptor file (injected so tests don't need a real
// filesystem).
func NewDirLoader(root string, readFile func(path string) ([]byte, error)) *DirLoader {
	return &DirLoader{Root: root, read: readFile}
}
