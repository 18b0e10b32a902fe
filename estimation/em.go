package estimation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/latticecourse/kst"
)

// FitConfig configures one EM run. Zero values are replaced with
// sensible defaults: MaxIterations=100, Tolerance=1e-6.
type FitConfig struct {
	MaxIterations int     `json:"max_iterations"`
	Tolerance     float64 `json:"tolerance"`
}

func (c FitConfig) withDefaults() FitConfig {
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-6
	}
	return c
}

// paramClampLow and paramClampHigh keep β/η away from the boundary of
// [0, 0.5) where the model becomes unidentifiable and the log-likelihood
// can diverge to -∞.
const (
	paramClampLow  = 1e-6
	paramClampHigh = 0.5 - 1e-6
)

// BLIMEstimate is the outcome of one EM fit: the fitted BLIM parameters,
// the estimated marginal belief π over the candidate states, the final
// log-likelihood, the iteration count, and whether the run converged
// (log-likelihood delta below tolerance) before the iteration cap.
type BLIMEstimate struct {
	Params        kst.BLIMParameters
	Pi            kst.BeliefState
	LogLikelihood float64
	Iterations    int
	Converged     bool
}

// Fit runs EM to fit BLIM parameters to data over the candidate state
// family states. initBeta/initEta seed the starting β/η per item id; a
// nil map initializes every item to 0.1. rng seeds the initial π.
func Fit(domain kst.Domain, states []kst.KnowledgeState, data kst.ResponseData, cfg FitConfig, initBeta, initEta map[string]float64, rng *rand.Rand) (BLIMEstimate, error) {
	cfg = cfg.withDefaults()
	if data.Len() == 0 {
		return BLIMEstimate{}, ErrEmptyResponseData
	}

	ids := domain.ItemIDs()
	beta := seedOrDefault(ids, initBeta, 0.1)
	eta := seedOrDefault(ids, initEta, 0.1)
	pi := randomPi(len(states), rng)

	params, err := kst.NewBLIMParameters(domain, beta, eta)
	if err != nil {
		return BLIMEstimate{}, err
	}

	patterns := data.Patterns()
	prevLL := math.Inf(-1)
	converged := false
	iter := 0

	for ; iter < cfg.MaxIterations; iter++ {
		responsibilities, prevLLNext := eStep(ids, states, patterns, pi, params)
		if prevLLNext < prevLL-1e-9 {
			return BLIMEstimate{}, fmt.Errorf("%w: %.9f -> %.9f at iteration %d", ErrEMDiverged, prevLL, prevLLNext, iter)
		}
		delta := prevLLNext - prevLL
		prevLL = prevLLNext

		pi, beta, eta = mStep(domain, states, patterns, responsibilities)
		params, err = kst.NewBLIMParameters(domain, beta, eta)
		if err != nil {
			return BLIMEstimate{}, err
		}

		if iter > 0 && delta < cfg.Tolerance {
			converged = true
			iter++
			break
		}
	}

	// One final E-step at the converged parameters to report the belief
	// and log-likelihood consistent with the returned params.
	_, finalLL := eStep(ids, states, patterns, pi, params)
	belief, err := kst.NewBeliefState(states, pi)
	if err != nil {
		return BLIMEstimate{}, err
	}

	return BLIMEstimate{
		Params:        params,
		Pi:            belief,
		LogLikelihood: finalLL,
		Iterations:    iter,
		Converged:     converged,
	}, nil
}

func seedOrDefault(ids []string, seed map[string]float64, def float64) map[string]float64 {
	out := make(map[string]float64, len(ids))
	for _, id := range ids {
		if v, ok := seed[id]; ok {
			out[id] = v
		} else {
			out[id] = def
		}
	}
	return out
}

func randomPi(n int, rng *rand.Rand) []float64 {
	raw := make([]float64, n)
	sum := 0.0
	for i := range raw {
		raw[i] = rng.Float64() + 1e-6
		sum += raw[i]
	}
	for i := range raw {
		raw[i] /= sum
	}
	return raw
}

// eStep computes the posterior responsibility matrix w[j][k] = π(K)
// P(R_j|K) / Z_j for every learner j and candidate state k, using
// log-sum-exp for the per-learner normalizer, and returns the matrix
// alongside the data log-likelihood Σ_j log Z_j. ids fixes the item
// summation order so the float accumulation is reproducible across
// calls; ranging over a response pattern map directly would vary that
// order run to run.
func eStep(ids []string, states []kst.KnowledgeState, patterns []map[string]bool, pi []float64, params kst.BLIMParameters) ([][]float64, float64) {
	n := len(states)
	w := make([][]float64, len(patterns))
	logLik := 0.0

	for j, pat := range patterns {
		logJoint := make([]float64, n)
		maxLog := math.Inf(-1)
		for k, s := range states {
			lp := math.Log(pi[k] + 1e-300)
			for _, id := range ids {
				p := params.PResponse(id, s, pat[id])
				lp += math.Log(p + 1e-300)
			}
			logJoint[k] = lp
			if lp > maxLog {
				maxLog = lp
			}
		}
		sumExp := 0.0
		for _, lp := range logJoint {
			sumExp += math.Exp(lp - maxLog)
		}
		logZ := maxLog + math.Log(sumExp)
		logLik += logZ

		row := make([]float64, n)
		for k, lp := range logJoint {
			row[k] = math.Exp(lp - logZ)
		}
		w[j] = row
	}
	return w, logLik
}

// mStep computes the closed-form parameter updates given responsibility
// matrix w: π(K) = mean over learners of w[.][K]; β_q and η_q as ratios
// of responsibility mass consistent with an incorrect/correct response,
// clamped to keep the model identifiable.
func mStep(domain kst.Domain, states []kst.KnowledgeState, patterns []map[string]bool, w [][]float64) (pi []float64, beta, eta map[string]float64) {
	n := len(states)
	nLearners := len(patterns)

	pi = make([]float64, n)
	for k := 0; k < n; k++ {
		sum := 0.0
		for j := 0; j < nLearners; j++ {
			sum += w[j][k]
		}
		pi[k] = sum / float64(nLearners)
	}

	beta = make(map[string]float64, domain.Len())
	eta = make(map[string]float64, domain.Len())
	for _, id := range domain.ItemIDs() {
		var massMastered, massIncorrectGivenMastered float64
		var massUnmastered, massCorrectGivenUnmastered float64
		for k, s := range states {
			mastered := s.ContainsID(id)
			for j, pat := range patterns {
				wjk := w[j][k]
				if mastered {
					massMastered += wjk
					if !pat[id] {
						massIncorrectGivenMastered += wjk
					}
				} else {
					massUnmastered += wjk
					if pat[id] {
						massCorrectGivenUnmastered += wjk
					}
				}
			}
		}
		b := 0.0
		if massMastered > 0 {
			b = massIncorrectGivenMastered / massMastered
		}
		g := 0.0
		if massUnmastered > 0 {
			g = massCorrectGivenUnmastered / massUnmastered
		}
		beta[id] = clampParam(b)
		eta[id] = clampParam(g)
	}
	return pi, beta, eta
}

func clampParam(v float64) float64 {
	if v < paramClampLow {
		return paramClampLow
	}
	if v > paramClampHigh {
		return paramClampHigh
	}
	return v
}
