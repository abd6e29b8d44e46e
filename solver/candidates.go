package solver

import (
	"iter"
	"sort"
)

// bounds tracks what one attribute can still reach. guaranteed accumulates
// the placement-independent contribution (lower bound, used for the cap
// prune); worstCase accumulates the optimistic contribution (upper bound,
// used for the target satisfiability test).
type bounds struct {
	guaranteed int
	worstCase  int
}

// Candidates enumerates, lazily and in a fixed order, every multiplicity
// vector (one count per part) whose optimistic attribute totals meet every
// constraint's target. The cap is only used to prune: arrangements whose
// guaranteed total already exceeds a cap are cut, but enumeration does not
// otherwise explore up to the cap. partBudget bounds the total number of
// selected parts and guarantees termination.
//
// The returned sequence restarts from scratch each time it is ranged.
func Candidates(parts []Part, partBudget int, constraints []Constraint) iter.Seq[[]int] {
	// For each attribute, the parts that can move it, tried largest
	// guaranteed-contribution first, ties in part order.
	partsByAttribute := make([][]int, len(constraints))
	for i, part := range parts {
		for attr, effect := range part.Effects {
			if attr >= len(constraints) || (effect.Bugless == 0 && effect.Bugged == 0) {
				continue
			}
			partsByAttribute[attr] = append(partsByAttribute[attr], i)
		}
	}
	for attr, indexes := range partsByAttribute {
		sort.SliceStable(indexes, func(a, b int) bool {
			ea := parts[indexes[a]].Effects[attr]
			eb := parts[indexes[b]].Effects[attr]
			return min(ea.Bugless, ea.Bugged) > min(eb.Bugless, eb.Bugged)
		})
	}

	return func(yield func([]int) bool) {
		s := &candidateSearch{
			parts:            parts,
			constraints:      constraints,
			partsByAttribute: partsByAttribute,
		}
		s.run(partBudget, make([]bounds, len(constraints)), yield)
	}
}

type candidateSearch struct {
	parts            []Part
	constraints      []Constraint
	partsByAttribute [][]int
}

// run yields every completion reachable from the current bound state. Each
// completion is yielded as a fresh count vector; the recursion increments the
// chosen part's count on the way back up. Returns false once the consumer
// stops pulling.
func (s *candidateSearch) run(budget int, state []bounds, yield func([]int) bool) bool {
	// First attribute that is not yet satisfiable and still has cap headroom.
	attr := -1
	for i, b := range state {
		if b.worstCase < s.constraints[i].Target && b.guaranteed < s.constraints[i].Cap {
			attr = i
			break
		}
	}
	if attr < 0 {
		// Every attribute is satisfied or out of headroom: this is a
		// completion. The zero vector is filled out by the callers above.
		return yield(make([]int, len(s.parts)))
	}

	if budget == 0 {
		return true
	}

partLoop:
	for _, partIdx := range s.partsByAttribute[attr] {
		effects := s.parts[partIdx].Effects

		next := make([]bounds, len(state))
		copy(next, state)
		for i, effect := range effects {
			if i >= len(next) {
				break
			}
			next[i].guaranteed += min(effect.Bugless, effect.Bugged)
			if next[i].guaranteed > s.constraints[i].Cap {
				continue partLoop
			}
			next[i].worstCase += max(effect.Bugless, effect.Bugged)
		}

		ok := s.run(budget-1, next, func(counts []int) bool {
			counts[partIdx]++
			return yield(counts)
		})
		if !ok {
			return false
		}
	}

	return true
}
