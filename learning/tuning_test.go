package learning

import (
	"errors"
	"testing"

	"github.com/latticecourse/kst"
)

func TestTuneRatesRejectsNonCoverStep(t *testing.T) {
	d, space := pairLearningSpace(t)
	bad := [][]kst.KnowledgeState{{d.EmptyState(), d.FullState()}} // skips a middle state
	_, err := TuneRates(space, bad, TuningConfig{})
	if !errors.Is(err, ErrNotACoverStep) {
		t.Errorf("TuneRates() error = %v, want ErrNotACoverStep", err)
	}
}

func TestTuneRatesRecoversSkew(t *testing.T) {
	d, space := pairLearningSpace(t)
	a, _ := d.Item("a")
	b, _ := d.Item("b")

	// Item b is learned three times as often as item a across trajectories.
	var trajectories [][]kst.KnowledgeState
	for i := 0; i < 30; i++ {
		trajectories = append(trajectories, []kst.KnowledgeState{d.EmptyState(), kst.NewKnowledgeState(b), d.FullState()})
	}
	for i := 0; i < 10; i++ {
		trajectories = append(trajectories, []kst.KnowledgeState{d.EmptyState(), kst.NewKnowledgeState(a), d.FullState()})
	}

	result, err := TuneRates(space, trajectories, TuningConfig{MaxIterations: 200, Tolerance: 1e-10})
	if err != nil {
		t.Fatalf("TuneRates() error = %v", err)
	}
	if !result.Converged {
		t.Error("TuneRates() should converge on this small, consistent dataset")
	}
	if result.Rates.Rate("b") <= result.Rates.Rate("a") {
		t.Errorf("Rate(b)=%v should exceed Rate(a)=%v given b is learned 3x as often", result.Rates.Rate("b"), result.Rates.Rate("a"))
	}
}
