package kst

import "sort"

// LearningSpace is a KnowledgeSpace additionally satisfying accessibility
// (axiom L): every non-empty state has an item whose removal yields
// another state in the family. Every learning space is a knowledge space
// but not conversely — accessibility rules out spaces where a state can
// only be reached by learning several items simultaneously.
type LearningSpace struct {
	KnowledgeSpace
}

// NewLearningSpace validates (domain, states) against the knowledge space
// axioms plus accessibility and returns the first violation as a typed
// error: *AxiomViolationError for S1/S2/S3, *InaccessibleStateError for
// the accessibility check.
func NewLearningSpace(domain Domain, states []KnowledgeState) (LearningSpace, error) {
	report := ValidateLearningSpace(domain, states)
	for _, f := range report.Failures() {
		if f.PropertyName == "Accessibility (antimatroid)" {
			witness := findInaccessibleState(domain, states)
			return LearningSpace{}, &InaccessibleStateError{StateIDs: witness}
		}
		return LearningSpace{}, firstAxiomFailure(ValidationReport{Results: []ValidationResult{f}})
	}
	return LearningSpace{KnowledgeSpace: KnowledgeSpace{domain: domain, states: indexStates(states)}}, nil
}

// findInaccessibleState returns the item ids of the smallest non-empty
// state that has no removable item, or nil if every state is accessible.
func findInaccessibleState(_ Domain, states []KnowledgeState) []string {
	byKey := indexStates(states)
	for _, s := range sortedStates(states) {
		if s.IsEmpty() {
			continue
		}
		found := false
		for _, it := range s.Items() {
			if _, ok := byKey[s.WithoutItem(it).Key()]; ok {
				found = true
				break
			}
		}
		if !found {
			return s.ItemIDs()
		}
	}
	return nil
}

// LearningPaths enumerates learning paths: maximal chains ∅ = K0 ⊂ K1 ⊂
// ... ⊂ Kn = Q where each Ki is in the space and |Ki+1| = |Ki|+1. Search
// is depth-first from ∅, exploring successors in ascending item-id order
// for determinism, and stops early once maxPaths paths have been found —
// truncated reports whether more paths exist beyond that cap.
func (s LearningSpace) LearningPaths(maxPaths int) (paths [][]Item, truncated bool) {
	full := s.domain.FullState()
	var walk func(current KnowledgeState, prefix []Item)
	walk = func(current KnowledgeState, prefix []Item) {
		if len(paths) >= maxPaths {
			truncated = true
			return
		}
		if current.Equal(full) {
			paths = append(paths, append([]Item(nil), prefix...))
			return
		}
		outer, err := s.OuterFringe(current)
		if err != nil {
			return
		}
		sort.Slice(outer, func(i, j int) bool { return outer[i].Less(outer[j]) })
		for _, it := range outer {
			if len(paths) >= maxPaths {
				truncated = true
				return
			}
			walk(current.WithItem(it), append(prefix, it))
		}
	}
	walk(s.domain.EmptyState(), nil)
	return paths, truncated
}
