package kst

import "sort"

// KnowledgeSpace is a pair (Q, K) where K is a family of knowledge states
// containing ∅ and Q and closed under arbitrary union (axioms S1-S3).
type KnowledgeSpace struct {
	domain Domain
	states map[string]KnowledgeState // by Key()
}

// NewKnowledgeSpace validates (domain, states) against the knowledge space
// axioms (strict build mode: see ValidateKnowledgeSpace for the
// non-failing, reporting-mode equivalent) and returns the first violated
// axiom as an *AxiomViolationError.
func NewKnowledgeSpace(domain Domain, states []KnowledgeState) (KnowledgeSpace, error) {
	report := ValidateKnowledgeSpace(domain, states)
	if err := firstAxiomFailure(report); err != nil {
		return KnowledgeSpace{}, err
	}
	return KnowledgeSpace{domain: domain, states: indexStates(states)}, nil
}

func firstAxiomFailure(report ValidationReport) error {
	failures := report.Failures()
	if len(failures) == 0 {
		return nil
	}
	f := failures[0]
	which := f.PropertyName
	switch {
	case which == "S1: Empty set":
		which = "S1"
	case which == "S2: Full domain":
		which = "S2"
	case which == "S3: Closure under union":
		which = "S3"
	case which == "States ⊆ Q":
		which = "subset"
	case which == "Accessibility (antimatroid)":
		return &InaccessibleStateError{StateIDs: nil}
	case which == "Non-emptiness":
		which = "non-empty"
	}
	return &AxiomViolationError{Which: which, Witness: f.Message}
}

func indexStates(states []KnowledgeState) map[string]KnowledgeState {
	m := make(map[string]KnowledgeState, len(states))
	for _, s := range states {
		m[s.Key()] = s
	}
	return m
}

func sortedStates(states []KnowledgeState) []KnowledgeState {
	out := append([]KnowledgeState(nil), states...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Len() != out[j].Len() {
			return out[i].Len() < out[j].Len()
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

// Domain returns the underlying domain Q.
func (s KnowledgeSpace) Domain() Domain {
	return s.domain
}

// States returns every state in K, sorted by (cardinality, id set).
func (s KnowledgeSpace) States() []KnowledgeState {
	out := make([]KnowledgeState, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, st)
	}
	return sortedStates(out)
}

// Contains reports whether state ∈ K.
func (s KnowledgeSpace) Contains(state KnowledgeState) bool {
	_, ok := s.states[state.Key()]
	return ok
}

// Len returns |K|.
func (s KnowledgeSpace) Len() int {
	return len(s.states)
}

// InnerFringe returns K^I = {q ∈ K : K \ {q} ∈ K}. Returns an
// *InaccessibleStateError if state ∉ K.
func (s KnowledgeSpace) InnerFringe(state KnowledgeState) ([]Item, error) {
	if !s.Contains(state) {
		return nil, &InaccessibleStateError{StateIDs: state.ItemIDs()}
	}
	var out []Item
	for _, it := range state.Items() {
		if s.Contains(state.WithoutItem(it)) {
			out = append(out, it)
		}
	}
	return out, nil
}

// OuterFringe returns K^O = {q ∈ Q\K : K ∪ {q} ∈ K}.
func (s KnowledgeSpace) OuterFringe(state KnowledgeState) ([]Item, error) {
	if !s.Contains(state) {
		return nil, &InaccessibleStateError{StateIDs: state.ItemIDs()}
	}
	var out []Item
	for _, it := range s.domain.Items() {
		if state.ContainsID(it.ID) {
			continue
		}
		if s.Contains(state.WithItem(it)) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Atoms returns the minimal non-empty states: A ≠ ∅ such that no state in
// K is a proper, non-empty subset of A.
func (s KnowledgeSpace) Atoms() []KnowledgeState {
	nonEmpty := make([]KnowledgeState, 0, len(s.states))
	for _, st := range s.states {
		if !st.IsEmpty() {
			nonEmpty = append(nonEmpty, st)
		}
	}
	var atoms []KnowledgeState
	for _, a := range nonEmpty {
		minimal := true
		for _, b := range nonEmpty {
			if b.IsProperSubsetOf(a) {
				minimal = false
				break
			}
		}
		if minimal {
			atoms = append(atoms, a)
		}
	}
	return sortedStates(atoms)
}

// Gradation partitions K into layers by cardinality, in increasing
// cardinality order; each layer holds every state of one size. Sizes with
// no state are skipped rather than returned as empty layers, so a layer's
// index equals its cardinality only when no size is skipped.
func (s KnowledgeSpace) Gradation() [][]KnowledgeState {
	maxSize := s.domain.Len()
	layers := make([][]KnowledgeState, maxSize+1)
	for _, st := range s.states {
		layers[st.Len()] = append(layers[st.Len()], st)
	}
	var out [][]KnowledgeState
	for _, layer := range layers {
		if len(layer) > 0 {
			out = append(out, sortedStates(layer))
		}
	}
	return out
}

// CoveringPair is one edge (L, K) of the covering relation L ⋖ K: |K| =
// |L|+1, L ⊂ K, and both are in the space.
type CoveringPair struct {
	Lower, Upper KnowledgeState
	ItemAdded    Item
}

// CoveringEdges returns every covering pair in K, grouping states by
// cardinality and comparing only states in consecutive levels —
// O(Σ |layer_i|·|layer_i+1|) rather than the O(|K|²) all-pairs scan.
func (s KnowledgeSpace) CoveringEdges() []CoveringPair {
	layers := s.Gradation()
	var out []CoveringPair
	for li := 0; li+1 < len(layers); li++ {
		lower, upper := layers[li], layers[li+1]
		// Layers returned by Gradation skip empty cardinalities, so only
		// compare adjacent layers whose sizes actually differ by 1.
		if upper[0].Len() != lower[0].Len()+1 {
			continue
		}
		for _, l := range lower {
			for _, u := range upper {
				if l.IsProperSubsetOf(u) {
					diff := u.Difference(l)
					if diff.Len() == 1 {
						out = append(out, CoveringPair{Lower: l, Upper: u, ItemAdded: diff.Items()[0]})
					}
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lower.Key() != out[j].Lower.Key() {
			return out[i].Lower.Key() < out[j].Lower.Key()
		}
		return out[i].Upper.Key() < out[j].Upper.Key()
	})
	return out
}
