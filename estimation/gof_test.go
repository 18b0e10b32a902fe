package estimation

import (
	"math/rand"
	"testing"

	"github.com/latticecourse/kst"
)

func TestEvaluateGoodnessOfFitDegreesOfFreedomFloor(t *testing.T) {
	d := pairDomain(t)
	params, _ := kst.UniformBLIMParameters(d, 0.1, 0.1)
	a, _ := d.Item("a")
	truth := kst.NewKnowledgeState(a)
	rng := rand.New(rand.NewSource(11))

	// A single response pattern yields far fewer distinct patterns than
	// free parameters, so degrees of freedom should floor at 0 rather
	// than go negative.
	data, err := kst.SimulateResponses(d, truth, params, 1, rng)
	if err != nil {
		t.Fatalf("SimulateResponses() error = %v", err)
	}
	estimate, err := Fit(d, candidateStates(d), data, FitConfig{}, nil, nil, rng)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	gof := EvaluateGoodnessOfFit(estimate, data)
	if gof.DF != 0 {
		t.Errorf("DF = %d, want 0 (floored)", gof.DF)
	}
	if gof.G2 < 0 {
		t.Errorf("G2 = %v, should be non-negative", gof.G2)
	}
}

func TestEvaluateGoodnessOfFitCountsDistinctPatterns(t *testing.T) {
	d := pairDomain(t)
	params, _ := kst.UniformBLIMParameters(d, 0.1, 0.1)
	a, _ := d.Item("a")
	truth := kst.NewKnowledgeState(a)
	rng := rand.New(rand.NewSource(5))
	data, err := kst.SimulateResponses(d, truth, params, 50, rng)
	if err != nil {
		t.Fatalf("SimulateResponses() error = %v", err)
	}
	estimate, err := Fit(d, candidateStates(d), data, FitConfig{}, nil, nil, rng)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	gof := EvaluateGoodnessOfFit(estimate, data)
	if gof.Counts == 0 || gof.Counts > 4 {
		t.Errorf("Counts = %d, want between 1 and 4 distinct response patterns over 2 items", gof.Counts)
	}
}
