package solver

import (
	"reflect"
	"testing"
)

func collectCandidates(parts []Part, budget int, constraints []Constraint) [][]int {
	var out [][]int
	for counts := range Candidates(parts, budget, constraints) {
		out = append(out, counts)
	}
	return out
}

func TestCandidatesExact(t *testing.T) {
	parts := []Part{
		// Super Armor: one unit of attribute 0, lost when bugged.
		{Effects: []Effect{{Bugless: 1, Bugged: 0}, {}}},
		// HP +100: always applies.
		{Effects: []Effect{{}, {Bugless: 100, Bugged: 100}}},
	}
	got := collectCandidates(parts, 4, []Constraint{
		{Target: 1, Cap: 1},
		{Target: 300, Cap: 300},
	})
	want := [][]int{{1, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestCandidatesInexact(t *testing.T) {
	parts := []Part{
		{Effects: []Effect{{Bugless: 1, Bugged: 0}, {}}},
		{Effects: []Effect{{}, {Bugless: 100, Bugged: 100}}},
	}
	got := collectCandidates(parts, 10, []Constraint{
		{Target: 1, Cap: 1},
		{Target: 350, Cap: 500},
	})
	want := [][]int{{1, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestCandidatesCapPrunesOvershoot(t *testing.T) {
	parts := []Part{
		{Effects: []Effect{{Bugless: 100, Bugged: 100}}},
	}
	got := collectCandidates(parts, 10, []Constraint{{Target: 50, Cap: 50}})
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestCandidatesLargestContributionFirst(t *testing.T) {
	parts := []Part{
		{Effects: []Effect{{Bugless: 10, Bugged: 10}}},
		{Effects: []Effect{{Bugless: 50, Bugged: 50}}},
		{Effects: []Effect{{Bugless: 100, Bugged: 100}}},
	}
	got := collectCandidates(parts, 2, []Constraint{{Target: 100, Cap: 100}})
	want := [][]int{{0, 0, 1}, {0, 2, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestCandidatesMultipleEffects(t *testing.T) {
	parts := []Part{
		// Body Pack: one unit of each attribute when unbugged.
		{Effects: []Effect{{Bugless: 1}, {Bugless: 1}}},
		// Super Armor: attribute 0 only.
		{Effects: []Effect{{Bugless: 1}, {}}},
		// Air Shoes: attribute 1 only.
		{Effects: []Effect{{}, {Bugless: 1}}},
	}
	got := collectCandidates(parts, 2, []Constraint{
		{Target: 1, Cap: 1},
		{Target: 0, Cap: 1},
	})
	want := [][]int{{1, 0, 0}, {0, 1, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestCandidatesMultipleEffectsCap(t *testing.T) {
	parts := []Part{
		{Effects: []Effect{{Bugless: 1, Bugged: 1}, {Bugless: 1, Bugged: 1}}},
		{Effects: []Effect{{Bugless: 1, Bugged: 1}, {}}},
		{Effects: []Effect{{}, {Bugless: 1, Bugged: 1}}},
	}
	got := collectCandidates(parts, 2, []Constraint{
		{Target: 1, Cap: 1},
		{Target: 0, Cap: 0},
	})
	want := [][]int{{0, 1, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestCandidatesZeroBudgetStillYieldsSatisfied(t *testing.T) {
	parts := []Part{
		{Effects: []Effect{{Bugless: 1, Bugged: 1}}},
	}
	got := collectCandidates(parts, 0, []Constraint{{Target: 0, Cap: 10}})
	want := [][]int{{0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}
