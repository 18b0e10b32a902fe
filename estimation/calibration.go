package estimation

import (
	"math"
	"math/rand"

	"github.com/latticecourse/kst"
)

// CalibrationResult is the outcome of a multi-restart EM calibration:
// the best-log-likelihood estimate across restarts, every restart's
// estimate (for diagnostics), and whether the fit is identifiable.
type CalibrationResult struct {
	Best         BLIMEstimate
	AllRestarts  []BLIMEstimate
	Identifiable bool
}

// Calibrate runs Fit restarts times with independently seeded random
// initializations (drawn from rng) and keeps the restart with the
// highest final log-likelihood, whether or not that restart converged.
// Identifiable is true iff the
// across-restart standard deviation of every β and η is at or below
// identifiabilityTol.
func Calibrate(domain kst.Domain, states []kst.KnowledgeState, data kst.ResponseData, cfg FitConfig, restarts int, identifiabilityTol float64, rng *rand.Rand) (CalibrationResult, error) {
	if restarts <= 0 {
		return CalibrationResult{}, ErrNoRestarts
	}

	ids := domain.ItemIDs()
	all := make([]BLIMEstimate, 0, restarts)
	bestIdx := -1

	for r := 0; r < restarts; r++ {
		initBeta := randomInitMap(ids, rng)
		initEta := randomInitMap(ids, rng)
		est, err := Fit(domain, states, data, cfg, initBeta, initEta, rng)
		if err != nil {
			return CalibrationResult{}, err
		}
		all = append(all, est)
		if bestIdx == -1 || est.LogLikelihood > all[bestIdx].LogLikelihood {
			bestIdx = r
		}
	}

	identifiable := true
	for _, id := range ids {
		if stdDevAcross(all, func(e BLIMEstimate) float64 { return e.Params.Slip(id) }) > identifiabilityTol {
			identifiable = false
			break
		}
		if stdDevAcross(all, func(e BLIMEstimate) float64 { return e.Params.Guess(id) }) > identifiabilityTol {
			identifiable = false
			break
		}
	}

	return CalibrationResult{
		Best:         all[bestIdx],
		AllRestarts:  all,
		Identifiable: identifiable,
	}, nil
}

func randomInitMap(ids []string, rng *rand.Rand) map[string]float64 {
	m := make(map[string]float64, len(ids))
	for _, id := range ids {
		m[id] = rng.Float64() * 0.45 // keep within [0, 0.5)
	}
	return m
}

func stdDevAcross(estimates []BLIMEstimate, extract func(BLIMEstimate) float64) float64 {
	n := len(estimates)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, e := range estimates {
		mean += extract(e)
	}
	mean /= float64(n)

	variance := 0.0
	for _, e := range estimates {
		d := extract(e) - mean
		variance += d * d
	}
	variance /= float64(n)
	return math.Sqrt(variance)
}
