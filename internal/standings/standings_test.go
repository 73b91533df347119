package standings

import "testing"

// TestRankPerformanceInterpolation covers spec.md §8 scenario 1.
func TestRankPerformanceInterpolation(t *testing.T) {
	m := NewRankPerformanceMap([]Anchor{
		{Rank: 1, Performance: 3200},
		{Rank: 2, Performance: 2800},
		{Rank: 3, Performance: 2000},
		{Rank: 4, Performance: 200},
	})

	cases := []struct {
		rank float64
		want float64
	}{
		{3.5, 1100},
		{1.0, 3200},
		{4.0, 200},
	}
	for _, c := range cases {
		got, err := m.Performance(c.rank)
		if err != nil {
			t.Fatalf("Performance(%v): %v", c.rank, err)
		}
		if got != c.want {
			t.Errorf("Performance(%v): got %v, want %v", c.rank, got, c.want)
		}
	}
}

func TestRankPerformanceOutOfRange(t *testing.T) {
	m := NewRankPerformanceMap([]Anchor{{Rank: 1, Performance: 3200}, {Rank: 4, Performance: 200}})
	if _, err := m.Performance(0.5); err == nil {
		t.Error("expected an error for rank below 1")
	}
	if _, err := m.Performance(4.5); err == nil {
		t.Error("expected an error for rank above the last anchor")
	}
}

// TestRankPerformanceMapTieMidpoint covers the gapped/tied-anchor fixture
// from the original implementation's test suite: raw anchors (1,3200),
// (2,2800), (4,2000), (8,200) key at ranks 1, 2.5, 5.5, 8 respectively,
// not at their raw low ranks.
func TestRankPerformanceMapTieMidpoint(t *testing.T) {
	m := NewRankPerformanceMap([]Anchor{
		{Rank: 1, Performance: 3200},
		{Rank: 2, Performance: 2800},
		{Rank: 4, Performance: 2000},
		{Rank: 8, Performance: 200},
	})
	cases := []struct {
		rank float64
		want float64
	}{
		{1, 3200},
		{2.5, 2800},
		{5.5, 2000},
		{8, 200},
	}
	for _, c := range cases {
		got, err := m.Performance(c.rank)
		if err != nil {
			t.Fatalf("Performance(%v): %v", c.rank, err)
		}
		if got != c.want {
			t.Errorf("Performance(%v): got %v, want %v", c.rank, got, c.want)
		}
	}
	// The raw low ranks 2 and 4 no longer coincide with an anchor; rank 2
	// now falls strictly inside the tied block between keys 1 and 2.5.
	got, err := m.Performance(2)
	if err != nil {
		t.Fatalf("Performance(2): %v", err)
	}
	frac := (2.0 - 1.0) / (2.5 - 1.0)
	want := 3200.0 + (2800.0-3200.0)*frac
	if got != want {
		t.Errorf("Performance(2): got %v, want %v", got, want)
	}
}

// TestStandingsWithTies covers spec.md §8 scenario 2.
func TestStandingsWithTies(t *testing.T) {
	s := NewFromLoScorePairs([]LoScore{
		{Lo: 1, Score: 100},
		{Lo: 2, Score: 98},
		{Lo: 4, Score: 96},
		{Lo: 8, Score: 94},
		{Lo: 16, Score: 0},
	})
	rank, fractional := s.Rank(96)
	if rank != 4 {
		t.Errorf("rank: got %d, want 4", rank)
	}
	if fractional != 5.5 {
		t.Errorf("fractional rank: got %v, want 5.5", fractional)
	}
}

func TestStandingsScoreAboveTop(t *testing.T) {
	s := NewFromLoScorePairs([]LoScore{{Lo: 1, Score: 100}, {Lo: 2, Score: 50}})
	rank, fractional := s.Rank(150)
	if rank != 1 || fractional != 1 {
		t.Errorf("got rank=%d fractional=%v, want 1, 1", rank, fractional)
	}
}

// TestRelativeMax covers spec.md §8 scenario 3: per case, each
// participant's score is rescaled against the max over all participants
// (including the candidate), with invalid (-1) scores excluded and
// scoring 0.
func TestRelativeMax(t *testing.T) {
	r := &RelativeResults{
		Scores: [][]float64{
			{100, 200, -1, 300, -1},
			{200, 400, -1, 100, 100},
		},
		ScoreType: RelativeMax,
		MaxScore:  1000,
	}
	candidate := []float64{400, 300, -1, -1, -1}

	perCase, err := r.CandidateRelativeScores(candidate)
	if err != nil {
		t.Fatalf("CandidateRelativeScores: %v", err)
	}
	wantPerCase := []float64{1000, 750, 0, 0, 0}
	for i := range wantPerCase {
		if perCase[i] != wantPerCase[i] {
			t.Errorf("case %d: got %v, want %v", i, perCase[i], wantPerCase[i])
		}
	}

	rank, fractional, err := r.RankAmong(candidate)
	if err != nil {
		t.Fatalf("RankAmong: %v", err)
	}
	// Relative totals: participant A = 1750 (250+500+0+1000+0),
	// participant B = 2833.33 (500+1000+0+333.33+1000), candidate = 1750
	// (1000+750+0+0+0). B ranks 1st outright; A and the candidate tie for
	// 2nd, so the candidate's reported rank is 2 with fractional rank
	// (2+3)/2 = 2.5.
	if rank != 2 {
		t.Errorf("rank: got %d, want 2", rank)
	}
	if fractional != 2.5 {
		t.Errorf("fractional rank: got %v, want 2.5", fractional)
	}
}

// TestRelativeMin covers the reciprocal MIN rule: relative score is
// relative_max_score * min / new_score, capped at relative_max_score, 0
// for new_score <= 0.
func TestRelativeMin(t *testing.T) {
	r := &RelativeResults{
		Scores:    [][]float64{{200}, {50}},
		ScoreType: RelativeMin,
		MaxScore:  1000,
	}
	perCase, err := r.CandidateRelativeScores([]float64{100})
	if err != nil {
		t.Fatalf("CandidateRelativeScores: %v", err)
	}
	// min over {200, 50, 100} is 50; candidate's score is 1000*50/100 = 500.
	if perCase[0] != 500 {
		t.Errorf("got %v, want 500", perCase[0])
	}

	// The participant achieving the min itself is capped at relative_max_score.
	perCase, err = r.CandidateRelativeScores([]float64{10})
	if err != nil {
		t.Fatalf("CandidateRelativeScores: %v", err)
	}
	if perCase[0] != 1000 {
		t.Errorf("min scorer should cap at relative_max_score, got %v", perCase[0])
	}

	perCase, err = r.CandidateRelativeScores([]float64{0})
	if err != nil {
		t.Fatalf("CandidateRelativeScores: %v", err)
	}
	if perCase[0] != 0 {
		t.Errorf("new_score <= 0 must score 0, got %v", perCase[0])
	}
}

// TestRelativeRankMax covers the RANK_MAX rule, including the
// average-index tie-break.
func TestRelativeRankMax(t *testing.T) {
	r := &RelativeResults{
		Scores:    [][]float64{{100}, {100}, {50}},
		ScoreType: RelativeRankMax,
		MaxScore:  1000,
	}
	// Candidate ties the two 100-scorers for best; the 50-scorer is last.
	// Four participants total; descending order places the three 100s at
	// indices 0..2, so the tie shares the average index (0+2)/2 = 1.
	perCase, err := r.CandidateRelativeScores([]float64{100})
	if err != nil {
		t.Fatalf("CandidateRelativeScores: %v", err)
	}
	want := 1000.0 * ((3.0 - 1.0) / 3.0)
	if perCase[0] != want {
		t.Errorf("got %v, want %v", perCase[0], want)
	}
}

func TestRelativeResultsMismatchedCaseCount(t *testing.T) {
	r := &RelativeResults{Scores: [][]float64{{1, 2, 3}}}
	if _, _, err := r.RankAmong([]float64{1, 2}); err == nil {
		t.Error("expected an error for mismatched case counts")
	}
}
