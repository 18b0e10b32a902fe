package learning

import (
	"encoding/json"
	"math"
	"math/rand"
	"sort"

	"github.com/latticecourse/kst"
)

var (
	_ json.Marshaler   = TeachingPlan{}
	_ json.Unmarshaler = (*TeachingPlan)(nil)
)

// defaultTrajectoryCap bounds trajectory simulation against an
// unreachable absorbing state.
const defaultTrajectoryCap = 1000

// TeachingStep is one step of a TeachingPlan: the item taught, the
// state before and after, and the expected number of remaining steps
// from the post-state.
type TeachingStep struct {
	ItemID         string             `json:"item_id"`
	Before         kst.KnowledgeState `json:"before"`
	After          kst.KnowledgeState `json:"after"`
	ExpectedRemain float64            `json:"expected_remain"`
}

// TeachingPlan is an ordered sequence of teaching steps from a start
// state to full mastery, each chosen to minimize expected remaining
// steps.
type TeachingPlan struct {
	Steps []TeachingStep
}

// teachingPlanJSON is the serialized form of TeachingPlan.
type teachingPlanJSON struct {
	Steps []TeachingStep `json:"steps"`
}

// MarshalJSON implements json.Marshaler.
func (p TeachingPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal(teachingPlanJSON{Steps: p.Steps})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *TeachingPlan) UnmarshalJSON(data []byte) error {
	var j teachingPlanJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	p.Steps = j.Steps
	return nil
}

// OptimalValues solves the Bellman equation V*(Q)=0,
// V*(K)=1+min_{q∈K^O} V*(K∪{q}) by backward induction on
// cardinality-descending order, and returns V* for every state.
func (m Model) OptimalValues() map[string]float64 {
	v := make(map[string]float64, len(m.states))
	full := m.space.Domain().FullState()
	v[full.Key()] = 0

	layers := m.space.Gradation()
	for li := len(layers) - 1; li >= 0; li-- {
		for _, s := range layers[li] {
			if s.Equal(full) {
				continue
			}
			outer, err := m.space.OuterFringe(s)
			if err != nil || len(outer) == 0 {
				continue
			}
			sort.Slice(outer, func(i, j int) bool { return outer[i].Less(outer[j]) })
			best := math.Inf(1)
			for _, it := range outer {
				next := s.WithItem(it)
				if nv, ok := v[next.Key()]; ok && nv < best {
					best = nv
				}
			}
			v[s.Key()] = 1 + best
		}
	}
	return v
}

// OptimalTeachingPlan greedily follows argmin V* from start to the full
// state, producing a TeachingPlan. start defaults to ∅ when the caller
// passes the domain's empty state.
func (m Model) OptimalTeachingPlan(start kst.KnowledgeState) TeachingPlan {
	values := m.OptimalValues()
	full := m.space.Domain().FullState()

	var plan TeachingPlan
	cur := start
	for !cur.Equal(full) {
		outer, err := m.space.OuterFringe(cur)
		if err != nil || len(outer) == 0 {
			break
		}
		sort.Slice(outer, func(i, j int) bool { return outer[i].Less(outer[j]) })
		bestItem := outer[0]
		bestVal := math.Inf(1)
		for _, it := range outer {
			next := cur.WithItem(it)
			if v, ok := values[next.Key()]; ok && v < bestVal {
				bestVal, bestItem = v, it
			}
		}
		next := cur.WithItem(bestItem)
		plan.Steps = append(plan.Steps, TeachingStep{
			ItemID:         bestItem.ID,
			Before:         cur,
			After:          next,
			ExpectedRemain: values[next.Key()],
		})
		cur = next
	}
	return plan
}

// SimulateTrajectory starts at `start` (the empty state if the zero
// value is passed) and repeatedly samples the next item from the outer
// fringe distribution, weighted by learning rate, until absorbing at Q
// or maxSteps is reached (0 selects the default cap of 1000). rng must
// be supplied by the caller for reproducibility.
func (m Model) SimulateTrajectory(start kst.KnowledgeState, maxSteps int, rng *rand.Rand) []kst.KnowledgeState {
	if maxSteps <= 0 {
		maxSteps = defaultTrajectoryCap
	}
	full := m.space.Domain().FullState()
	trajectory := []kst.KnowledgeState{start}
	cur := start
	for step := 0; step < maxSteps && !cur.Equal(full); step++ {
		outer, err := m.space.OuterFringe(cur)
		if err != nil || len(outer) == 0 {
			break
		}
		sort.Slice(outer, func(i, j int) bool { return outer[i].Less(outer[j]) })
		total := 0.0
		for _, it := range outer {
			total += m.rates.Rate(it.ID)
		}
		draw := rng.Float64() * total
		cum := 0.0
		chosen := outer[len(outer)-1]
		for _, it := range outer {
			cum += m.rates.Rate(it.ID)
			if draw <= cum {
				chosen = it
				break
			}
		}
		cur = cur.WithItem(chosen)
		trajectory = append(trajectory, cur)
	}
	return trajectory
}
