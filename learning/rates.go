package learning

import (
	"encoding/json"
	"fmt"

	"github.com/latticecourse/kst"
)

var (
	_ json.Marshaler   = LearningRate{}
	_ json.Unmarshaler = (*LearningRate)(nil)
)

// LearningRate is a mapping from item id to a strictly positive rate λ_q
// governing how quickly that item tends to be learned next, relative to
// the other items in a state's outer fringe.
type LearningRate struct {
	domain kst.Domain
	rates  map[string]float64
}

// NewLearningRate validates and builds a LearningRate. rates must have
// exactly the domain's id set as keys, each strictly positive.
func NewLearningRate(domain kst.Domain, rates map[string]float64) (LearningRate, error) {
	out := make(map[string]float64, domain.Len())
	for _, id := range domain.ItemIDs() {
		r, ok := rates[id]
		if !ok {
			return LearningRate{}, fmt.Errorf("%w: missing rate for item %q", ErrInvalidRate, id)
		}
		if r <= 0 {
			return LearningRate{}, fmt.Errorf("%w: rate[%q]=%v", ErrInvalidRate, id, r)
		}
		out[id] = r
	}
	if len(rates) != domain.Len() {
		return LearningRate{}, fmt.Errorf("%w: %d rates given, domain has %d items", ErrInvalidRate, len(rates), domain.Len())
	}
	return LearningRate{domain: domain, rates: out}, nil
}

// UniformLearningRate assigns every item the same rate (1.0).
func UniformLearningRate(domain kst.Domain) LearningRate {
	rates := make(map[string]float64, domain.Len())
	for _, id := range domain.ItemIDs() {
		rates[id] = 1.0
	}
	lr, err := NewLearningRate(domain, rates)
	if err != nil {
		panic(err) // uniform positive rates always validate
	}
	return lr
}

// Rate returns λ_q.
func (l LearningRate) Rate(itemID string) float64 {
	return l.rates[itemID]
}

// Domain returns the underlying domain.
func (l LearningRate) Domain() kst.Domain {
	return l.domain
}

// Normalized returns a new LearningRate scaled so the rates have mean 1
// across the domain — the convention this package reports final tuned
// rates under.
func (l LearningRate) Normalized() LearningRate {
	sum := 0.0
	for _, id := range l.domain.ItemIDs() {
		sum += l.rates[id]
	}
	mean := sum / float64(l.domain.Len())
	out := make(map[string]float64, l.domain.Len())
	for _, id := range l.domain.ItemIDs() {
		out[id] = l.rates[id] / mean
	}
	lr, _ := NewLearningRate(l.domain, out)
	return lr
}

// learningRateJSON is the serialized form of LearningRate. The domain's
// items are carried alongside the rates so UnmarshalJSON can rebuild and
// revalidate the domain rather than assuming one.
type learningRateJSON struct {
	Items []kst.Item         `json:"items"`
	Rates map[string]float64 `json:"rates"`
}

// MarshalJSON implements json.Marshaler.
func (l LearningRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(learningRateJSON{Items: l.domain.Items(), Rates: l.rates})
}

// UnmarshalJSON implements json.Unmarshaler. It rebuilds the domain from
// the serialized items and revalidates the rates against it.
func (l *LearningRate) UnmarshalJSON(data []byte) error {
	var j learningRateJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	domain, err := kst.NewDomain(j.Items...)
	if err != nil {
		return err
	}
	rebuilt, err := NewLearningRate(domain, j.Rates)
	if err != nil {
		return err
	}
	*l = rebuilt
	return nil
}
