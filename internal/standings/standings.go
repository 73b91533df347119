// Package standings computes a submission's rank from the contest's
// standings table and converts that rank into a performance number,
// following spec.md §4.E. The group/sort/locate shape is grounded on the
// teacher's AggregateByField-style reducers (internal/executor/
// aggregate.go: bucket, sort.Slice by a derived key, then take the entry
// that matters), generalized from "top-N event buckets" to "locate one
// row in a sorted standings table".
package standings

import (
	"fmt"
	"sort"
)

// Entry is one row of the internal standings table: a contestant
// achieving exactly score s is assigned integer rank lo; the table also
// carries hi, the last rank sharing that score (one less than the next
// row's lo), needed for the tie-break rule.
type Entry struct {
	Score float64
	Lo    int
	Hi    int
}

// Standings holds the contest's rank table, used to translate an
// absolute or relative overall score into a reported rank.
type Standings struct {
	entries []Entry // must be sorted by Score ascending
}

// New builds a Standings from entries, sorting a defensive copy by score.
func New(entries []Entry) *Standings {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Score < cp[j].Score })
	return &Standings{entries: cp}
}

// LoScore is one row of a contest's public standings as published:
// "rank lo is the best rank achieving this score".
type LoScore struct {
	Lo    int
	Score float64
}

// NewFromLoScorePairs builds a Standings from the published (lo, score)
// rows, deriving each row's hi as one less than the next row's lo (the
// last row's hi equals its own lo), so that every rank between a row's
// lo and hi is understood to share that row's score for tie-break
// purposes.
func NewFromLoScorePairs(pairs []LoScore) *Standings {
	cp := make([]LoScore, len(pairs))
	copy(cp, pairs)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Lo < cp[j].Lo })

	entries := make([]Entry, len(cp))
	for i, p := range cp {
		hi := p.Lo
		if i+1 < len(cp) {
			hi = cp[i+1].Lo - 1
		}
		entries[i] = Entry{Score: p.Score, Lo: p.Lo, Hi: hi}
	}
	return New(entries)
}

// Rank computes the integer rank and fractional rank for an absolute
// overall score s, per spec.md §4.E "Rank computation from an absolute
// overall score". The integer rank is always an int; the fractional rank
// feeds RankPerformanceMap.Performance.
func (s *Standings) Rank(score float64) (rank int, fractionalRank float64) {
	if len(s.entries) == 0 {
		return 1, 1
	}
	// Above the highest table entry.
	if score > s.entries[len(s.entries)-1].Score {
		return 1, 1
	}
	// Find the largest entry with Score <= s.
	best := -1
	for i, e := range s.entries {
		if e.Score <= score {
			best = i
		}
	}
	if best < 0 {
		// Below every table entry: fall back to the lowest-ranked row.
		last := s.entries[0]
		return last.Lo, float64(last.Lo)
	}
	e := s.entries[best]
	if e.Score == score {
		return e.Lo, float64(e.Lo+e.Hi) / 2
	}
	return e.Lo, float64(e.Lo)
}

// RelativeScoreType selects which of the four relative-scoring rules
// (spec.md §3 "RelativeResults") a table applies.
type RelativeScoreType string

const (
	RelativeMax     RelativeScoreType = "MAX"
	RelativeMin     RelativeScoreType = "MIN"
	RelativeRankMax RelativeScoreType = "RANK_MAX"
	RelativeRankMin RelativeScoreType = "RANK_MIN"
)

// RelativeResults is the per-participant, per-case absolute-score table
// used for relative scoring: Scores[p][c] is participant p's raw score on
// case c. Participants are otherwise unordered; RankAmong and
// CandidateRelativeScores append the candidate's own per-case scores as
// one more row before transforming each case column per ScoreType.
type RelativeResults struct {
	Scores    [][]float64
	ScoreType RelativeScoreType
	MaxScore  float64 // relative_max_score, the cap each case contributes
}

func (r *RelativeResults) checkShape(candidateScores []float64) error {
	for i, row := range r.Scores {
		if len(row) != len(candidateScores) {
			return fmt.Errorf("participant %d has %d case scores, candidate has %d", i, len(row), len(candidateScores))
		}
	}
	return nil
}

// transformColumn applies the MAX/MIN/RANK_MAX/RANK_MIN rule (spec.md §3)
// to one case's raw scores across every participant, returning each
// participant's relative score for that case. Invalid scores (<= 0 for
// MIN, negative for every other rule) are non-participating and score 0;
// they are excluded from the max/min/rank computation entirely.
func transformColumn(raw []float64, scoreType RelativeScoreType, maxScore float64) []float64 {
	valid := make([]bool, len(raw))
	for i, v := range raw {
		if scoreType == RelativeMin {
			valid[i] = v > 0
		} else {
			valid[i] = v >= 0
		}
	}

	out := make([]float64, len(raw))
	switch scoreType {
	case RelativeMax:
		max, any := 0.0, false
		for i, v := range raw {
			if valid[i] && (!any || v > max) {
				max, any = v, true
			}
		}
		if !any || max == 0 {
			return out
		}
		for i, v := range raw {
			if valid[i] {
				out[i] = maxScore * v / max
			}
		}
	case RelativeMin:
		min, any := 0.0, false
		for i, v := range raw {
			if valid[i] && (!any || v < min) {
				min, any = v, true
			}
		}
		if !any {
			return out
		}
		for i, v := range raw {
			if valid[i] {
				score := maxScore * min / v
				if score > maxScore {
					score = maxScore
				}
				out[i] = score
			}
		}
	case RelativeRankMax, RelativeRankMin:
		type ranked struct {
			idx int
			v   float64
		}
		pool := make([]ranked, 0, len(raw))
		for i, v := range raw {
			if valid[i] {
				pool = append(pool, ranked{idx: i, v: v})
			}
		}
		ascending := scoreType == RelativeRankMin
		sort.SliceStable(pool, func(i, j int) bool {
			if ascending {
				return pool[i].v < pool[j].v
			}
			return pool[i].v > pool[j].v
		})
		n := len(pool)
		for i := 0; i < n; {
			j := i
			for j+1 < n && pool[j+1].v == pool[i].v {
				j++
			}
			avgIndex := float64(i+j) / 2
			fraction := 1.0
			if n > 1 {
				fraction = (float64(n-1) - avgIndex) / float64(n-1)
			}
			for k := i; k <= j; k++ {
				out[pool[k].idx] = maxScore * fraction
			}
			i = j + 1
		}
	}
	return out
}

// CandidateRelativeScores substitutes candidateScores into the matrix (as
// an appended participant) and returns the candidate's own per-case
// relative score after the MAX/MIN/RANK_MAX/RANK_MIN transform, for
// populating judge.CaseResult.RelativeScore.
func (r *RelativeResults) CandidateRelativeScores(candidateScores []float64) ([]float64, error) {
	if err := r.checkShape(candidateScores); err != nil {
		return nil, err
	}
	out := make([]float64, len(candidateScores))
	for c := range candidateScores {
		column := make([]float64, len(r.Scores)+1)
		for p, row := range r.Scores {
			column[p] = row[c]
		}
		column[len(r.Scores)] = candidateScores[c]
		out[c] = transformColumn(column, r.ScoreType, r.MaxScore)[len(r.Scores)]
	}
	return out, nil
}

// RankAmong substitutes candidateScores into the matrix (as an appended
// participant), recomputes every participant's relative total case by
// case (MAX/MIN's shared max/min can shift once the candidate is added),
// sorts descending, and locates the candidate using the same lo/hi tie
// rule as Rank, per spec.md §4.E "Rank computation for relative scoring".
func (r *RelativeResults) RankAmong(candidateScores []float64) (rank int, fractionalRank float64, err error) {
	if err := r.checkShape(candidateScores); err != nil {
		return 0, 0, err
	}

	numParticipants := len(r.Scores) + 1
	totals := make([]float64, numParticipants)
	for c := range candidateScores {
		column := make([]float64, numParticipants)
		for p, row := range r.Scores {
			column[p] = row[c]
		}
		column[len(r.Scores)] = candidateScores[c]
		for p, v := range transformColumn(column, r.ScoreType, r.MaxScore) {
			totals[p] += v
		}
	}
	candidateTotal := totals[len(r.Scores)]

	type totalled struct {
		total       float64
		isCandidate bool
	}
	ranked := make([]totalled, numParticipants)
	for p, t := range totals {
		ranked[p] = totalled{total: t, isCandidate: p == len(r.Scores)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].total > ranked[j].total })

	pos := -1
	for i, t := range ranked {
		if t.isCandidate {
			pos = i
			break
		}
	}
	lo := pos + 1 // 1-indexed rank of the candidate's position
	hi := lo
	// Ties: every participant with the same total shares the lowest rank
	// among them as lo, and the candidate's own slot as hi.
	for i := pos - 1; i >= 0 && ranked[i].total == candidateTotal; i-- {
		lo = i + 1
	}
	for i := pos + 1; i < len(ranked) && ranked[i].total == candidateTotal; i++ {
		hi = i + 1
	}
	return lo, float64(lo+hi) / 2, nil
}
