package kst

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// sessionPhase is the internal assessment state-machine phase: Idle,
// Open, or Complete. There is no separate "Open'" value — the spec's
// Open' is simply Open after at least one observation, which the step
// log's length already distinguishes.
type sessionPhase int

const (
	phaseIdle sessionPhase = iota
	phaseOpen
	phaseComplete
)

// SessionStep is one entry of an assessment session's step log: the item
// asked, the observed outcome, the belief entropy before and after the
// update, and the MAP estimate immediately after.
type SessionStep struct {
	ItemID        string
	Correct       bool
	EntropyBefore float64
	EntropyAfter  float64
	MapAfter      KnowledgeState
}

// SessionSummary reports the outcome of a completed assessment session:
// total questions asked, the full step log, the final MAP state, and a
// confidence score 1 - H(π)/log2(|K|).
type SessionSummary struct {
	TotalQuestions int
	Steps          []SessionStep
	FinalMap       KnowledgeState
	Confidence     float64
}

// AssessmentSession drives an adaptive (or batch) BLIM assessment: pick
// the most informative unasked item, observe a response, update belief,
// repeat until every item has been asked or entropy drops to the stop
// threshold. Every mutating method returns a new AssessmentSession;
// the receiver is never modified.
type AssessmentSession struct {
	id          uuid.UUID
	domain      Domain
	space       []KnowledgeState
	params      BLIMParameters
	belief      BeliefState
	asked       map[string]bool
	phase       sessionPhase
	stopEntropy float64
	steps       []SessionStep
}

// StartSession begins a new session (Idle -> Open) with a uniform prior
// over the candidate state family. stopEntropy is the entropy threshold
// (in bits) below which the session completes even if items remain.
func StartSession(domain Domain, states []KnowledgeState, params BLIMParameters, stopEntropy float64) (AssessmentSession, error) {
	if len(states) == 0 {
		return AssessmentSession{}, fmt.Errorf("%w: candidate state family must be non-empty", ErrParameterOutOfRange)
	}
	if stopEntropy < 0 {
		return AssessmentSession{}, fmt.Errorf("%w: stopEntropy must be non-negative", ErrParameterOutOfRange)
	}
	s := AssessmentSession{
		id:          uuid.New(),
		domain:      domain,
		space:       append([]KnowledgeState(nil), states...),
		params:      params,
		belief:      UniformBeliefState(states),
		asked:       make(map[string]bool),
		phase:       phaseOpen,
		stopEntropy: stopEntropy,
	}
	return s, nil
}

// ID returns the session's opaque handle, generated once at StartSession
// and never persisted; it exists only to let a host key a map of
// concurrently running sessions.
func (s AssessmentSession) ID() uuid.UUID {
	return s.id
}

// Belief returns the session's current belief state.
func (s AssessmentSession) Belief() BeliefState {
	return s.belief
}

// IsComplete reports whether the session has reached the Complete phase.
func (s AssessmentSession) IsComplete() bool {
	return s.phase == phaseComplete
}

// AskedItems returns the ids already asked, sorted.
func (s AssessmentSession) AskedItems() []string {
	ids := make([]string, 0, len(s.asked))
	for id := range s.asked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// remainingItems returns the domain item ids not yet asked, sorted.
func (s AssessmentSession) remainingItems() []string {
	var out []string
	for _, id := range sortedItemIDs(s.domain.ItemIDs()) {
		if !s.asked[id] {
			out = append(out, id)
		}
	}
	return out
}

// SelectItem picks the unasked item maximizing InformationGain, breaking
// ties by item-id order. Returns ErrSessionComplete once the session is
// complete, and ErrNoRemainingItems if every item has been asked.
func (s AssessmentSession) SelectItem() (string, error) {
	if s.phase == phaseComplete {
		return "", ErrSessionComplete
	}
	remaining := s.remainingItems()
	if len(remaining) == 0 {
		return "", ErrNoRemainingItems
	}
	best := remaining[0]
	bestGain := s.belief.InformationGain(best, s.params)
	for _, id := range remaining[1:] {
		gain := s.belief.InformationGain(id, s.params)
		if gain > bestGain {
			best, bestGain = id, gain
		}
	}
	return best, nil
}

// PreviewObserve computes both hypothetical post-update beliefs for
// itemID (correct and incorrect) without mutating the session or
// advancing the asked set — the same two branches InformationGain
// already computes internally, exposed directly.
func (s AssessmentSession) PreviewObserve(itemID string) (correct, incorrect BeliefState, err error) {
	if err := s.domain.checkIDs(itemID); err != nil {
		return BeliefState{}, BeliefState{}, err
	}
	correct, errC := s.belief.Update(itemID, true, s.params)
	incorrect, errI := s.belief.Update(itemID, false, s.params)
	if errC != nil && errI != nil {
		return BeliefState{}, BeliefState{}, fmt.Errorf("%w: item %q is inconsistent under both outcomes", ErrInconsistentObservation, itemID)
	}
	return correct, incorrect, nil
}

// Observe applies one Bayesian update (Open -> Open') and, if every item
// has now been asked or the resulting entropy is at or below the stop
// threshold, transitions to Complete. Observing an unknown item, an
// already-asked item, or observing after completion is a protocol-misuse
// error distinct from a normal update failure.
func (s AssessmentSession) Observe(itemID string, correct bool) (AssessmentSession, error) {
	if s.phase == phaseComplete {
		return AssessmentSession{}, ErrSessionComplete
	}
	if err := s.domain.checkIDs(itemID); err != nil {
		return AssessmentSession{}, err
	}
	if s.asked[itemID] {
		return AssessmentSession{}, fmt.Errorf("%w: %q", ErrAlreadyAsked, itemID)
	}

	before := s.belief.Entropy()
	updated, err := s.belief.Update(itemID, correct, s.params)
	if err != nil {
		return AssessmentSession{}, err
	}

	next := s.clone()
	next.belief = updated
	next.asked[itemID] = true
	next.steps = append(next.steps, SessionStep{
		ItemID:        itemID,
		Correct:       correct,
		EntropyBefore: before,
		EntropyAfter:  updated.Entropy(),
		MapAfter:      updated.MapEstimate(),
	})

	if len(next.remainingItems()) == 0 || updated.Entropy() <= next.stopEntropy {
		next.phase = phaseComplete
	}
	return next, nil
}

func (s AssessmentSession) clone() AssessmentSession {
	asked := make(map[string]bool, len(s.asked)+1)
	for k, v := range s.asked {
		asked[k] = v
	}
	return AssessmentSession{
		id:          s.id,
		domain:      s.domain,
		space:       s.space,
		params:      s.params,
		belief:      s.belief,
		asked:       asked,
		phase:       s.phase,
		stopEntropy: s.stopEntropy,
		steps:       append([]SessionStep(nil), s.steps...),
	}
}

// RunAdaptive repeatedly selects the most informative remaining item and
// observes truth's noiseless response to it (correct iff the item is in
// truth; slip and guess are not applied) until the session completes. It is a convenience driver over SelectItem/Observe
// for callers that already know the "true" state, e.g. tests and
// simulation harnesses.
func RunAdaptive(s AssessmentSession, truth KnowledgeState) (AssessmentSession, error) {
	cur := s
	for !cur.IsComplete() {
		itemID, err := cur.SelectItem()
		if err != nil {
			return AssessmentSession{}, err
		}
		// Truthful responder: answers correctly iff the item is mastered
		// in the true state, ignoring slip/guess noise.
		cur, err = cur.Observe(itemID, truth.ContainsID(itemID))
		if err != nil {
			return AssessmentSession{}, err
		}
	}
	return cur, nil
}

// RunBatch folds a complete response map through the Bayesian update in
// a fixed item-id order, equivalent to calling Observe repeatedly — a
// pure replay with no hidden state, usable to reconstruct a session from
// a recorded transcript.
func RunBatch(s AssessmentSession, responses map[string]bool) (AssessmentSession, error) {
	cur := s
	for _, id := range sortedItemIDs(s.domain.ItemIDs()) {
		r, ok := responses[id]
		if !ok {
			continue
		}
		if cur.IsComplete() {
			break
		}
		var err error
		cur, err = cur.Observe(id, r)
		if err != nil {
			return AssessmentSession{}, err
		}
	}
	return cur, nil
}

// Summary produces the SessionSummary for a (possibly still open)
// session: total questions asked so far, the step log, the current MAP
// estimate, and a confidence score 1 - H(π)/log2(|K|).
func (s AssessmentSession) Summary() SessionSummary {
	maxEntropy := math.Log2(float64(len(s.space)))
	confidence := 1.0
	if maxEntropy > 0 {
		confidence = 1 - s.belief.Entropy()/maxEntropy
	}
	return SessionSummary{
		TotalQuestions: len(s.steps),
		Steps:          append([]SessionStep(nil), s.steps...),
		FinalMap:       s.belief.MapEstimate(),
		Confidence:     confidence,
	}
}
