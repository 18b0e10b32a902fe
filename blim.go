package kst

import (
	"encoding/json"
	"fmt"
)

var (
	_ json.Marshaler   = BLIMParameters{}
	_ json.Unmarshaler = (*BLIMParameters)(nil)
)

// BLIMParameters holds the per-item slip (β) and lucky-guess (η)
// parameters of a Basic Local Independence Model: β_q is the probability
// of an incorrect response given mastery, η_q the probability of a
// correct response given non-mastery. Both are constrained to [0, 0.5)
// so that a correct response is always at least as likely under mastery
// as under non-mastery.
type BLIMParameters struct {
	domain Domain
	slip   map[string]float64 // β
	guess  map[string]float64 // η
}

// NewBLIMParameters validates and builds BLIMParameters. slip and guess
// must have exactly the domain's id set as keys, and every value must lie
// in [0, 0.5).
func NewBLIMParameters(domain Domain, slip, guess map[string]float64) (BLIMParameters, error) {
	for _, id := range domain.ItemIDs() {
		b, ok := slip[id]
		if !ok {
			return BLIMParameters{}, fmt.Errorf("%w: missing slip for item %q", ErrParameterOutOfRange, id)
		}
		if err := checkUnitRange(b); err != nil {
			return BLIMParameters{}, fmt.Errorf("%w: slip[%q]=%v", err, id, b)
		}
		g, ok := guess[id]
		if !ok {
			return BLIMParameters{}, fmt.Errorf("%w: missing guess for item %q", ErrParameterOutOfRange, id)
		}
		if err := checkUnitRange(g); err != nil {
			return BLIMParameters{}, fmt.Errorf("%w: guess[%q]=%v", err, id, g)
		}
	}
	if len(slip) != domain.Len() || len(guess) != domain.Len() {
		return BLIMParameters{}, fmt.Errorf("%w: slip/guess have %d/%d entries, domain has %d items", ErrParameterOutOfRange, len(slip), len(guess), domain.Len())
	}
	return BLIMParameters{
		domain: domain,
		slip:   copyFloatMap(slip, domain.ItemIDs()),
		guess:  copyFloatMap(guess, domain.ItemIDs()),
	}, nil
}

// UniformBLIMParameters builds BLIMParameters with the same slip and
// guess value applied to every item in the domain.
func UniformBLIMParameters(domain Domain, slip, guess float64) (BLIMParameters, error) {
	s := make(map[string]float64, domain.Len())
	g := make(map[string]float64, domain.Len())
	for _, id := range domain.ItemIDs() {
		s[id] = slip
		g[id] = guess
	}
	return NewBLIMParameters(domain, s, g)
}

func checkUnitRange(v float64) error {
	if v < 0 || v >= 0.5 {
		return ErrParameterOutOfRange
	}
	return nil
}

func copyFloatMap(m map[string]float64, keys []string) map[string]float64 {
	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}

// Domain returns the underlying domain.
func (p BLIMParameters) Domain() Domain {
	return p.domain
}

// Slip returns β_q.
func (p BLIMParameters) Slip(itemID string) float64 {
	return p.slip[itemID]
}

// Guess returns η_q.
func (p BLIMParameters) Guess(itemID string) float64 {
	return p.guess[itemID]
}

// PCorrect returns P(r=1 | q, K): 1-β_q if the item is mastered in K,
// η_q otherwise.
func (p BLIMParameters) PCorrect(itemID string, state KnowledgeState) float64 {
	if state.ContainsID(itemID) {
		return 1 - p.slip[itemID]
	}
	return p.guess[itemID]
}

// PIncorrect returns P(r=0 | q, K) = 1 - PCorrect(q, K): β_q if the item
// is mastered in K, 1-η_q otherwise.
func (p BLIMParameters) PIncorrect(itemID string, state KnowledgeState) float64 {
	if state.ContainsID(itemID) {
		return p.slip[itemID]
	}
	return 1 - p.guess[itemID]
}

// PResponse returns P(r | q, K) for the given boolean response.
func (p BLIMParameters) PResponse(itemID string, state KnowledgeState, correct bool) float64 {
	if correct {
		return p.PCorrect(itemID, state)
	}
	return p.PIncorrect(itemID, state)
}

// PPattern returns P(R | K), the product of per-item response
// probabilities under local independence, for a full response pattern
// keyed by item id.
func (p BLIMParameters) PPattern(pattern map[string]bool, state KnowledgeState) float64 {
	prob := 1.0
	for _, id := range p.domain.ItemIDs() {
		prob *= p.PResponse(id, state, pattern[id])
	}
	return prob
}

// blimParametersJSON is the serialized form of BLIMParameters. The
// domain's items are carried alongside slip/guess so UnmarshalJSON can
// rebuild and revalidate the domain rather than assuming one.
type blimParametersJSON struct {
	Items []Item             `json:"items"`
	Slip  map[string]float64 `json:"slip"`
	Guess map[string]float64 `json:"guess"`
}

// MarshalJSON implements json.Marshaler.
func (p BLIMParameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(blimParametersJSON{
		Items: p.domain.Items(),
		Slip:  p.slip,
		Guess: p.guess,
	})
}

// UnmarshalJSON implements json.Unmarshaler. It rebuilds the domain from
// the serialized items and revalidates slip/guess against it.
func (p *BLIMParameters) UnmarshalJSON(data []byte) error {
	var j blimParametersJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	domain, err := NewDomain(j.Items...)
	if err != nil {
		return err
	}
	rebuilt, err := NewBLIMParameters(domain, j.Slip, j.Guess)
	if err != nil {
		return err
	}
	*p = rebuilt
	return nil
}
