package learning

import (
	"fmt"

	"github.com/latticecourse/kst"
	"gonum.org/v1/gonum/mat"
)

// Model is a Markov learning model over a learning space: from each
// non-full state K, the learner moves to K ∪ {q} for q in the outer
// fringe with probability proportional to λ_q; the full state Q is
// absorbing.
type Model struct {
	space  kst.LearningSpace
	rates  LearningRate
	states []kst.KnowledgeState // cardinality then id order, index == matrix row/col
	index  map[string]int
}

// NewModel builds a Model over space with the given per-item learning
// rates.
func NewModel(space kst.LearningSpace, rates LearningRate) Model {
	states := space.States()
	index := make(map[string]int, len(states))
	for i, s := range states {
		index[s.Key()] = i
	}
	return Model{space: space, rates: rates, states: states, index: index}
}

// States returns the states in the fixed (cardinality, id) order used to
// index the transition matrix.
func (m Model) States() []kst.KnowledgeState {
	return m.states
}

// TransitionProbability returns P(from -> to): λ_q / Σ_{q'∈from^O} λ_{q'}
// if to = from ∪ {q} for some q in from's outer fringe, 1 if from == to
// == Q, and 0 otherwise.
func (m Model) TransitionProbability(from, to kst.KnowledgeState) float64 {
	full := m.space.Domain().FullState()
	if from.Equal(full) {
		if to.Equal(full) {
			return 1
		}
		return 0
	}
	outer, err := m.space.OuterFringe(from)
	if err != nil {
		return 0
	}
	total := 0.0
	for _, it := range outer {
		total += m.rates.Rate(it.ID)
	}
	if total == 0 {
		return 0
	}
	diff := to.Difference(from)
	if diff.Len() != 1 || !from.IsSubsetOf(to) {
		return 0
	}
	addedID := diff.ItemIDs()[0]
	for _, it := range outer {
		if it.ID == addedID && from.WithItem(it).Equal(to) {
			return m.rates.Rate(addedID) / total
		}
	}
	return 0
}

// TransitionMatrix returns the full |K|x|K| row-stochastic transition
// matrix, indexed by States().
func (m Model) TransitionMatrix() *mat.Dense {
	n := len(m.states)
	data := make([]float64, n*n)
	for i, from := range m.states {
		for j, to := range m.states {
			data[i*n+j] = m.TransitionProbability(from, to)
		}
	}
	return mat.NewDense(n, n, data)
}

// ExpectedStepsToMastery returns, for every state, the expected number
// of transitions until the full state Q is reached. Q itself maps to 0.
// Computed by solving (I-T)x = 1 over the transient submatrix T (every
// state except Q) rather than forming an explicit inverse.
func (m Model) ExpectedStepsToMastery() (map[string]float64, error) {
	full := m.space.Domain().FullState()
	var transient []kst.KnowledgeState
	for _, s := range m.states {
		if !s.Equal(full) {
			transient = append(transient, s)
		}
	}
	n := len(transient)
	out := make(map[string]float64, len(m.states))
	out[full.Key()] = 0
	if n == 0 {
		return out, nil
	}

	tIdx := make(map[string]int, n)
	for i, s := range transient {
		tIdx[s.Key()] = i
	}

	iMinusT := make([]float64, n*n)
	for i, s := range transient {
		for j, t := range transient {
			v := m.TransitionProbability(s, t)
			if i == j {
				v = 1 - v
			} else {
				v = -v
			}
			iMinusT[i*n+j] = v
		}
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}

	a := mat.NewDense(n, n, iMinusT)
	b := mat.NewDense(n, 1, ones)
	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularFundamentalMatrix, err)
	}

	for i, s := range transient {
		out[s.Key()] = x.At(i, 0)
	}
	return out, nil
}
