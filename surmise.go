package kst

import (
	"fmt"
	"sort"
)

// Edge is a direct prerequisite relationship: From must be mastered
// before To, i.e. From is a direct prerequisite of To.
type Edge struct {
	From, To string
}

// SurmiseRelation is a quasi-order (reflexive, transitive) σ ⊆ Q × Q on a
// domain. (p, q) ∈ σ means p is a prerequisite of q — mastering q surmises
// mastering p.
type SurmiseRelation struct {
	domain      Domain
	prereqOf    map[string][]string // q -> sorted {p : (p,q) ∈ σ}, includes q itself
	dependentOf map[string][]string // p -> sorted {q : (p,q) ∈ σ}, includes p itself
}

// NewSurmiseRelation builds a SurmiseRelation from an explicit pair set.
// It fails with UnknownItemError if an endpoint is outside the domain, and
// with ErrNotAQuasiOrder if the pairs are not reflexive-and-transitively
// closed.
func NewSurmiseRelation(domain Domain, pairs []Edge) (SurmiseRelation, error) {
	set := make(map[[2]string]struct{}, len(pairs))
	for _, p := range pairs {
		if err := domain.checkIDs(p.From, p.To); err != nil {
			return SurmiseRelation{}, err
		}
		set[[2]string{p.From, p.To}] = struct{}{}
	}

	for _, id := range domain.ItemIDs() {
		if _, ok := set[[2]string{id, id}]; !ok {
			return SurmiseRelation{}, fmt.Errorf("%w: reflexivity violated at %q", ErrNotAQuasiOrder, id)
		}
	}

	for ab := range set {
		a, b := ab[0], ab[1]
		for _, c := range domain.ItemIDs() {
			if _, ok := set[[2]string{b, c}]; ok {
				if _, ok := set[[2]string{a, c}]; !ok {
					return SurmiseRelation{}, fmt.Errorf(
						"%w: transitivity violated: (%s,%s) and (%s,%s) in σ but (%s,%s) is not",
						ErrNotAQuasiOrder, a, b, b, c, a, c)
				}
			}
		}
	}

	return buildSurmiseRelation(domain, set), nil
}

func buildSurmiseRelation(domain Domain, set map[[2]string]struct{}) SurmiseRelation {
	prereqOf := make(map[string][]string)
	dependentOf := make(map[string][]string)
	for ab := range set {
		a, b := ab[0], ab[1]
		prereqOf[b] = append(prereqOf[b], a)
		dependentOf[a] = append(dependentOf[a], b)
	}
	for _, id := range domain.ItemIDs() {
		sort.Strings(prereqOf[id])
		sort.Strings(dependentOf[id])
	}
	return SurmiseRelation{domain: domain, prereqOf: prereqOf, dependentOf: dependentOf}
}

// Domain returns the underlying domain.
func (r SurmiseRelation) Domain() Domain {
	return r.domain
}

// Pairs returns every (p, q) pair in σ, including reflexive pairs, sorted
// by (p, q).
func (r SurmiseRelation) Pairs() []Edge {
	var out []Edge
	for _, q := range r.domain.ItemIDs() {
		for _, p := range r.prereqOf[q] {
			out = append(out, Edge{From: p, To: q})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// PrerequisitesOf returns {p : p ≼ q}, excluding q itself, sorted by id.
func (r SurmiseRelation) PrerequisitesOf(q string) []string {
	out := make([]string, 0, len(r.prereqOf[q]))
	for _, p := range r.prereqOf[q] {
		if p != q {
			out = append(out, p)
		}
	}
	return out
}

// DependentsOf returns {s : q ≼ s}, excluding q itself, sorted by id.
func (r SurmiseRelation) DependentsOf(q string) []string {
	out := make([]string, 0, len(r.dependentOf[q]))
	for _, s := range r.dependentOf[q] {
		if s != q {
			out = append(out, s)
		}
	}
	return out
}

// IsDownset reports whether state is closed under taking prerequisites:
// q ∈ K ⟹ prerequisites_of(q) ⊆ K.
func (r SurmiseRelation) IsDownset(state KnowledgeState) bool {
	for _, id := range state.ItemIDs() {
		for _, prereq := range r.PrerequisitesOf(id) {
			if !state.ContainsID(prereq) {
				return false
			}
		}
	}
	return true
}

// ToKnowledgeSpaceStates enumerates every downset of σ (the Birkhoff
// correspondence): the family of all K ⊆ Q with prerequisites_of(q) ⊆ K
// for every q ∈ K. The result always contains ∅ and Q and is closed under
// both union and intersection.
//
// Enumeration tests every one of the 2^n subsets of the n = |Q| items
// (as a bitmask) for the downset property, so its cost grows with 2^n
// however few downsets there are; it does not expand closures
// NextClosure-style.
func (r SurmiseRelation) ToKnowledgeSpaceStates() []KnowledgeState {
	items := r.domain.Items()
	n := len(items)
	var out []KnowledgeState
	for mask := 0; mask < (1 << n); mask++ {
		var picked []Item
		for i, it := range items {
			if mask&(1<<i) != 0 {
				picked = append(picked, it)
			}
		}
		candidate := NewKnowledgeState(picked...)
		if r.IsDownset(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}
