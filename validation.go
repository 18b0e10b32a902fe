package kst

import "fmt"

// ValidationResult is a single named check: whether it passed, a
// human-readable message, and a bibliographic reference for the property
// being checked.
type ValidationResult struct {
	PropertyName string
	Passed       bool
	Message      string
	Reference    string
}

// ValidationReport aggregates the results of one or more ValidationResult
// checks. Reports never mutate their inputs and are produced only by the
// validators in this file.
type ValidationReport struct {
	Results []ValidationResult
}

// IsValid reports whether every check in the report passed.
func (r ValidationReport) IsValid() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Failures returns the subset of checks that did not pass.
func (r ValidationReport) Failures() []ValidationResult {
	var out []ValidationResult
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Summary renders "<passed>/<total> checks passed".
func (r ValidationReport) Summary() string {
	total := len(r.Results)
	passed := 0
	for _, res := range r.Results {
		if res.Passed {
			passed++
		}
	}
	return fmt.Sprintf("%d/%d checks passed", passed, total)
}

// ValidateKnowledgeSpace checks that (domain, states) satisfies the
// knowledge space axioms S1 (∅ ∈ K), S2 (Q ∈ K), S3 (closure under union),
// and that every state is a subset of Q. It never mutates its arguments
// and never returns an error — failures are reported, not raised.
func ValidateKnowledgeSpace(domain Domain, states []KnowledgeState) ValidationReport {
	var results []ValidationResult

	results = append(results, ValidationResult{
		PropertyName: "Non-emptiness",
		Passed:       len(states) > 0,
		Message:      nonEmptyMessage(len(states) > 0, "K"),
		Reference:    "Doignon & Falmagne (1999), Definition 1.1.1",
	})

	byKey := make(map[string]KnowledgeState, len(states))
	for _, s := range states {
		byKey[s.Key()] = s
	}

	empty := domain.EmptyState()
	_, hasEmpty := byKey[empty.Key()]
	results = append(results, ValidationResult{
		PropertyName: "S1: Empty set",
		Passed:       hasEmpty,
		Message:      axiomMessage(hasEmpty, "∅ ∈ K", "∅ ∉ K — axiom S1 violated"),
		Reference:    "Doignon & Falmagne (1999), Definition 1.1.1 (i)",
	})

	full := domain.FullState()
	_, hasFull := byKey[full.Key()]
	results = append(results, ValidationResult{
		PropertyName: "S2: Full domain",
		Passed:       hasFull,
		Message:      axiomMessage(hasFull, "Q ∈ K", "Q ∉ K — axiom S2 violated"),
		Reference:    "Doignon & Falmagne (1999), Definition 1.1.1 (ii)",
	})

	allSubsets := true
	for _, s := range states {
		if !domain.ContainsState(s) {
			allSubsets = false
			break
		}
	}
	results = append(results, ValidationResult{
		PropertyName: "States ⊆ Q",
		Passed:       allSubsets,
		Message:      axiomMessage(allSubsets, "All states are subsets of Q", "Some states contain items not in Q"),
		Reference:    "Doignon & Falmagne (1999), Definition 1.1.1",
	})

	unionClosed, witness := checkUnionClosed(states, byKey)
	results = append(results, ValidationResult{
		PropertyName: "S3: Closure under union",
		Passed:       unionClosed,
		Message:      axiomMessage(unionClosed, "K is closed under ∪", witness),
		Reference:    "Doignon & Falmagne (1999), Definition 1.1.1 (iii)",
	})

	return ValidationReport{Results: results}
}

// checkUnionClosed tests every unordered pair of states for union closure,
// short-circuiting at the first counterexample found while scanning states
// in increasing, then lexicographic, order — so the reported counterexample
// is deterministic and of the smallest cardinality reachable by that scan.
func checkUnionClosed(states []KnowledgeState, byKey map[string]KnowledgeState) (bool, string) {
	ordered := sortedStates(states)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			union := ordered[i].Union(ordered[j])
			if _, ok := byKey[union.Key()]; !ok {
				return false, fmt.Sprintf("Not closed under ∪: %s ∪ %s = %s ∉ K", ordered[i], ordered[j], union)
			}
		}
	}
	return true, ""
}

// ValidateLearningSpace checks the knowledge space axioms plus
// accessibility: every non-empty state has an item whose removal yields
// another state in the family.
func ValidateLearningSpace(domain Domain, states []KnowledgeState) ValidationReport {
	report := ValidateKnowledgeSpace(domain, states)
	results := append([]ValidationResult(nil), report.Results...)

	byKey := make(map[string]KnowledgeState, len(states))
	for _, s := range states {
		byKey[s.Key()] = s
	}

	accessible := true
	witness := ""
	for _, s := range sortedStates(states) {
		if s.IsEmpty() {
			continue
		}
		found := false
		for _, it := range s.Items() {
			reduced := s.WithoutItem(it)
			if _, ok := byKey[reduced.Key()]; ok {
				found = true
				break
			}
		}
		if !found {
			accessible = false
			witness = fmt.Sprintf("State %s has no removable item", s)
			break
		}
	}

	results = append(results, ValidationResult{
		PropertyName: "Accessibility (antimatroid)",
		Passed:       accessible,
		Message:      axiomMessage(accessible, "All non-empty states are accessible", "Not accessible: "+witness),
		Reference:    "Falmagne & Doignon (2011), Definition 2.1.1",
	})

	return ValidationReport{Results: results}
}

func nonEmptyMessage(ok bool, name string) string {
	if ok {
		return name + " is non-empty"
	}
	return name + " is empty"
}

func axiomMessage(ok bool, passMsg, failMsg string) string {
	if ok {
		return passMsg
	}
	return failMsg
}
