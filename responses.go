package kst

import (
	"fmt"
	"math/rand"
)

// ResponseData is a sequence of complete response patterns over a domain,
// each pattern mapping every item id to a boolean outcome. It is the
// observed-data input to EM calibration.
type ResponseData struct {
	domain   Domain
	patterns []map[string]bool
}

// NewResponseData validates and builds ResponseData. patterns must be
// non-empty, and every pattern's key set must equal the domain's id set.
func NewResponseData(domain Domain, patterns []map[string]bool) (ResponseData, error) {
	if len(patterns) == 0 {
		return ResponseData{}, fmt.Errorf("%w: response data must have at least one pattern", ErrParameterOutOfRange)
	}
	ids := domain.ItemIDs()
	out := make([]map[string]bool, len(patterns))
	for i, pat := range patterns {
		if len(pat) != len(ids) {
			return ResponseData{}, fmt.Errorf("%w: pattern %d has %d items, domain has %d", ErrParameterOutOfRange, i, len(pat), len(ids))
		}
		clone := make(map[string]bool, len(ids))
		for _, id := range ids {
			v, ok := pat[id]
			if !ok {
				return ResponseData{}, &UnknownItemError{ID: id}
			}
			clone[id] = v
		}
		out[i] = clone
	}
	return ResponseData{domain: domain, patterns: out}, nil
}

// Domain returns the underlying domain.
func (r ResponseData) Domain() Domain {
	return r.domain
}

// Patterns returns the response patterns. The returned slice and its map
// elements must not be mutated.
func (r ResponseData) Patterns() []map[string]bool {
	return r.patterns
}

// Len returns the number of response patterns.
func (r ResponseData) Len() int {
	return len(r.patterns)
}

// SimulateResponses draws n response patterns for a fixed "true" state
// under the given BLIM parameters: for each item, a uniform draw is
// compared against P(r=1 | q, trueState). rng must be supplied by the
// caller so draws are reproducible.
func SimulateResponses(domain Domain, trueState KnowledgeState, params BLIMParameters, n int, rng *rand.Rand) (ResponseData, error) {
	patterns := make([]map[string]bool, n)
	for i := 0; i < n; i++ {
		pat := make(map[string]bool, domain.Len())
		for _, id := range domain.ItemIDs() {
			pat[id] = rng.Float64() < params.PCorrect(id, trueState)
		}
		patterns[i] = pat
	}
	return NewResponseData(domain, patterns)
}
