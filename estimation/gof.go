package estimation

import (
	"math"

	"github.com/latticecourse/kst"
)

// GoodnessOfFit is a G² likelihood-ratio statistic comparing observed
// response-pattern frequencies to the frequencies the fitted model
// predicts, together with its degrees of freedom.
type GoodnessOfFit struct {
	G2     float64
	DF     int
	Counts int // number of distinct observed patterns
}

// EvaluateGoodnessOfFit computes G² = 2 Σ_R N_R log(N_R / (N·P̂(R))) over
// the distinct response patterns in data, where P̂(R) = Σ_K π(K)P(R|K) is
// the model's predicted marginal. Degrees of freedom is
// (distinct patterns) - 1 - (|K| - 1 + 2n), floored at 0.
func EvaluateGoodnessOfFit(estimate BLIMEstimate, data kst.ResponseData) GoodnessOfFit {
	counts := make(map[string]int)
	order := make([]string, 0)
	patternByKey := make(map[string]map[string]bool)
	for _, pat := range data.Patterns() {
		key := patternKey(pat, estimate.Params.Domain())
		if _, ok := counts[key]; !ok {
			order = append(order, key)
			patternByKey[key] = pat
		}
		counts[key]++
	}

	n := data.Len()
	states := estimate.Pi.States()
	g2 := 0.0
	for _, key := range order {
		nr := counts[key]
		predicted := 0.0
		for _, s := range states {
			predicted += estimate.Pi.ProbabilityOf(s) * estimate.Params.PPattern(patternByKey[key], s)
		}
		if predicted <= 0 {
			continue
		}
		g2 += 2 * float64(nr) * math.Log(float64(nr)/(float64(n)*predicted))
	}

	numItems := estimate.Params.Domain().Len()
	df := len(order) - 1 - (len(states) - 1 + 2*numItems)
	if df < 0 {
		df = 0
	}
	return GoodnessOfFit{G2: g2, DF: df, Counts: len(order)}
}

func patternKey(pat map[string]bool, domain kst.Domain) string {
	buf := make([]byte, 0, domain.Len())
	for _, id := range domain.ItemIDs() {
		if pat[id] {
			buf = append(buf, '1')
		} else {
			buf = append(buf, '0')
		}
	}
	return string(buf)
}
