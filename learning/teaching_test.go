package learning

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestOptimalValuesFullStateIsZero(t *testing.T) {
	d, space := pairLearningSpace(t)
	rates := UniformLearningRate(d)
	m := NewModel(space, rates)
	values := m.OptimalValues()
	if values[d.FullState().Key()] != 0 {
		t.Errorf("V*(Q) = %v, want 0", values[d.FullState().Key()])
	}
	if values[d.EmptyState().Key()] != 2 {
		t.Errorf("V*(∅) = %v, want 2 for a two-item discrete poset", values[d.EmptyState().Key()])
	}
}

func TestOptimalTeachingPlanReachesMastery(t *testing.T) {
	d, space := pairLearningSpace(t)
	rates := UniformLearningRate(d)
	m := NewModel(space, rates)

	plan := m.OptimalTeachingPlan(d.EmptyState())
	if len(plan.Steps) != 2 {
		t.Fatalf("plan has %d steps, want 2", len(plan.Steps))
	}
	if !plan.Steps[len(plan.Steps)-1].After.Equal(d.FullState()) {
		t.Error("the last step should reach the full state")
	}
}

func TestSimulateTrajectoryReachesFullStateOrCap(t *testing.T) {
	d, space := pairLearningSpace(t)
	rates := UniformLearningRate(d)
	m := NewModel(space, rates)

	traj := m.SimulateTrajectory(d.EmptyState(), 10, rand.New(rand.NewSource(3)))
	last := traj[len(traj)-1]
	if !last.Equal(d.FullState()) {
		t.Errorf("trajectory should reach the full state within the cap, ended at %s", last)
	}
	for i := 0; i+1 < len(traj); i++ {
		if traj[i+1].Len() != traj[i].Len()+1 {
			t.Errorf("trajectory step %d->%d is not a single-item cover", i, i+1)
		}
	}
}

func TestTeachingPlanMarshalJSONRoundTrip(t *testing.T) {
	d, space := pairLearningSpace(t)
	rates := UniformLearningRate(d)
	m := NewModel(space, rates)
	plan := m.OptimalTeachingPlan(d.EmptyState())

	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got TeachingPlan
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(got.Steps) != len(plan.Steps) {
		t.Fatalf("round trip has %d steps, want %d", len(got.Steps), len(plan.Steps))
	}
	for i, step := range plan.Steps {
		if got.Steps[i].ItemID != step.ItemID || !got.Steps[i].After.Equal(step.After) {
			t.Errorf("step %d = %+v, want %+v", i, got.Steps[i], step)
		}
	}
}

