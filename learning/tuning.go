package learning

import (
	"fmt"
	"math"

	"github.com/latticecourse/kst"
)

// TuningConfig configures TuneRates. Zero values are replaced with
// sensible defaults: MaxIterations=100, Tolerance=1e-6.
type TuningConfig struct {
	MaxIterations int
	Tolerance     float64
}

func (c TuningConfig) withDefaults() TuningConfig {
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-6
	}
	return c
}

// TuningResult is the outcome of fitting learning rates to observed
// trajectories: the fitted (mean-1 normalized) rates, final
// log-likelihood, iteration count, and convergence flag.
type TuningResult struct {
	Rates         LearningRate
	LogLikelihood float64
	Iterations    int
	Converged     bool
}

// step is one observed covering-relation transition: the item that was
// learned and the outer fringe of the state it was learned from (the
// choice set the Luce model competes over).
type step struct {
	outerFringe []string
	chosenID    string
}

// TuneRates fits per-item learning rates to a set of observed
// trajectories (each a sequence of states whose consecutive pairs must
// be covering-relation steps in space) by maximizing
//
//	Σ_t log(λ_{q_t} / Σ_{q'∈K_t^O} λ_{q'})
//
// via the iterative fixed-point update of the Luce choice model (the
// same family of update as Zermelo's algorithm for pairwise comparison
// models), using the same convergence criterion as EM: stop when the
// log-likelihood delta falls below Tolerance or the iteration cap is
// reached. Rates start uniform and are normalized to mean 1 for
// reporting.
func TuneRates(space kst.LearningSpace, trajectories [][]kst.KnowledgeState, cfg TuningConfig) (TuningResult, error) {
	cfg = cfg.withDefaults()
	domain := space.Domain()

	var steps []step
	for _, traj := range trajectories {
		for i := 0; i+1 < len(traj); i++ {
			from, to := traj[i], traj[i+1]
			outer, err := space.OuterFringe(from)
			if err != nil {
				return TuningResult{}, err
			}
			diff := to.Difference(from)
			if diff.Len() != 1 || !from.IsSubsetOf(to) {
				return TuningResult{}, fmt.Errorf("%w: %s -> %s", ErrNotACoverStep, from, to)
			}
			chosen := diff.ItemIDs()[0]
			found := false
			ids := make([]string, 0, len(outer))
			for _, it := range outer {
				ids = append(ids, it.ID)
				if it.ID == chosen {
					found = true
				}
			}
			if !found {
				return TuningResult{}, fmt.Errorf("%w: item %q not in outer fringe of %s", ErrNotACoverStep, chosen, from)
			}
			steps = append(steps, step{outerFringe: ids, chosenID: chosen})
		}
	}

	lambda := make(map[string]float64, domain.Len())
	for _, id := range domain.ItemIDs() {
		lambda[id] = 1.0
	}

	prevLL := math.Inf(-1)
	converged := false
	iter := 0
	for ; iter < cfg.MaxIterations; iter++ {
		ll := logLikelihood(lambda, steps)
		if iter > 0 && ll-prevLL < cfg.Tolerance {
			converged = true
			prevLL = ll
			break
		}
		prevLL = ll
		lambda = fixedPointUpdate(domain.ItemIDs(), lambda, steps)
	}
	if !converged {
		prevLL = logLikelihood(lambda, steps)
	}

	lr, buildErr := NewLearningRate(domain, lambda)
	if buildErr != nil {
		return TuningResult{}, buildErr
	}

	return TuningResult{
		Rates:         lr.Normalized(),
		LogLikelihood: prevLL,
		Iterations:    iter,
		Converged:     converged,
	}, nil
}

// logLikelihood evaluates Σ_t log(λ_{q_t} / Σ_{q'∈choice set} λ_{q'}) at
// the current rate estimate.
func logLikelihood(lambda map[string]float64, steps []step) float64 {
	ll := 0.0
	for _, st := range steps {
		total := 0.0
		for _, id := range st.outerFringe {
			total += lambda[id]
		}
		if total <= 0 {
			continue
		}
		ll += math.Log(lambda[st.chosenID]) - math.Log(total)
	}
	return ll
}

// fixedPointUpdate performs one Luce-model fixed-point iteration:
//
//	λ_q ← count(q chosen) / Σ_t [ 1{q∈choice set_t} / Σ_{q'∈choice set_t} λ_{q'} ]
func fixedPointUpdate(ids []string, lambda map[string]float64, steps []step) map[string]float64 {
	counts := make(map[string]float64, len(ids))
	denom := make(map[string]float64, len(ids))
	for _, st := range steps {
		total := 0.0
		for _, id := range st.outerFringe {
			total += lambda[id]
		}
		if total <= 0 {
			continue
		}
		counts[st.chosenID]++
		for _, id := range st.outerFringe {
			denom[id] += 1.0 / total
		}
	}
	next := make(map[string]float64, len(ids))
	for _, id := range ids {
		if denom[id] > 0 {
			next[id] = counts[id] / denom[id]
		} else {
			next[id] = lambda[id]
		}
		if next[id] <= 0 {
			next[id] = 1e-6
		}
	}
	return next
}
