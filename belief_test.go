package kst

import (
	"errors"
	"math"
	"testing"
)

const beliefEpsilon = 1e-9

func assertFloatClose(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %.9f, want %.9f (diff %.9f)", name, got, want, math.Abs(got-want))
	}
}

func candidateStates(d Domain) []KnowledgeState {
	a, _ := d.Item("a")
	b, _ := d.Item("b")
	return []KnowledgeState{d.EmptyState(), NewKnowledgeState(a), NewKnowledgeState(b), NewKnowledgeState(a, b)}
}

func TestUniformBeliefStateEntropy(t *testing.T) {
	d := pairDomain(t)
	states := candidateStates(d)
	belief := UniformBeliefState(states)
	assertFloatClose(t, "entropy", belief.Entropy(), 2.0, beliefEpsilon) // log2(4)
}

func TestBeliefStateProbabilityOf(t *testing.T) {
	d := pairDomain(t)
	states := candidateStates(d)
	belief := UniformBeliefState(states)
	for _, s := range states {
		assertFloatClose(t, "P("+s.String()+")", belief.ProbabilityOf(s), 0.25, beliefEpsilon)
	}
}

func TestBeliefStateUpdateNoiseless(t *testing.T) {
	d := pairDomain(t)
	states := candidateStates(d)
	belief := UniformBeliefState(states)
	params, _ := UniformBLIMParameters(d, 0, 0) // noiseless: slip=guess=0

	updated, err := belief.Update("a", true, params)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	// Only states containing a should retain any mass.
	for _, s := range states {
		a, _ := d.Item("a")
		if s.ContainsID(a.ID) {
			if updated.ProbabilityOf(s) <= 0 {
				t.Errorf("state %s should retain mass after observing a correct", s)
			}
		} else if updated.ProbabilityOf(s) != 0 {
			t.Errorf("state %s should have zero mass after observing a correct", s)
		}
	}
}

func TestBeliefStateUpdateInconsistentObservation(t *testing.T) {
	d := pairDomain(t)
	a, _ := d.Item("a")
	states := []KnowledgeState{NewKnowledgeState(a)} // only {a} possible
	belief := UniformBeliefState(states)
	params, _ := UniformBLIMParameters(d, 0, 0) // noiseless

	// a is mastered in every candidate state, so an incorrect response is impossible.
	_, err := belief.Update("a", false, params)
	if !errors.Is(err, ErrInconsistentObservation) {
		t.Errorf("Update() error = %v, want ErrInconsistentObservation", err)
	}
}

func TestBeliefStateMapEstimate(t *testing.T) {
	d := pairDomain(t)
	states := candidateStates(d)
	probs := []float64{0.1, 0.6, 0.2, 0.1}
	belief, err := NewBeliefState(states, probs)
	if err != nil {
		t.Fatalf("NewBeliefState() error = %v", err)
	}
	if !belief.MapEstimate().Equal(states[1]) {
		t.Errorf("MapEstimate() = %s, want %s", belief.MapEstimate(), states[1])
	}
}

func TestBeliefStateInformationGainNonNegative(t *testing.T) {
	d := pairDomain(t)
	states := candidateStates(d)
	belief := UniformBeliefState(states)
	params, _ := UniformBLIMParameters(d, 0.05, 0.1)

	gain := belief.InformationGain("a", params)
	if gain < -beliefEpsilon {
		t.Errorf("InformationGain() = %v, should be non-negative", gain)
	}
}

func TestNewBeliefStateRejectsBadMass(t *testing.T) {
	d := pairDomain(t)
	states := candidateStates(d)
	_, err := NewBeliefState(states, []float64{0.5, 0.5, 0.5, 0.5})
	if !errors.Is(err, ErrParameterOutOfRange) {
		t.Errorf("NewBeliefState() error = %v, want ErrParameterOutOfRange", err)
	}
}
