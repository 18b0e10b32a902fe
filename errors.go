package kst

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the kst package.
// Use errors.Is to check: errors.Is(err, kst.ErrUnknownItem)
var (
	ErrInvalidItem             = errors.New("kst: invalid item")
	ErrDuplicateItemID         = errors.New("kst: duplicate item id")
	ErrEmptyDomain             = errors.New("kst: empty domain")
	ErrUnknownItem             = errors.New("kst: unknown item")
	ErrCyclicPrerequisites     = errors.New("kst: cyclic prerequisites")
	ErrNotAQuasiOrder          = errors.New("kst: not a quasi-order")
	ErrAxiomViolation          = errors.New("kst: knowledge space axiom violated")
	ErrInaccessibleState       = errors.New("kst: state not accessible")
	ErrInconsistentObservation = errors.New("kst: inconsistent observation")
	ErrAlreadyAsked            = errors.New("kst: item already asked")
	ErrNoRemainingItems        = errors.New("kst: no remaining items")
	ErrSessionComplete         = errors.New("kst: session already complete")
	ErrParameterOutOfRange     = errors.New("kst: parameter out of range")
)

// UnknownItemError reports a reference to an item id that is not in the
// domain (edge endpoint, response pattern key, session observation, ...).
type UnknownItemError struct {
	ID string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownItem, e.ID)
}

func (e *UnknownItemError) Unwrap() error { return ErrUnknownItem }

// CyclicPrerequisitesError reports a cycle found while building a
// PrerequisiteGraph. Cycle lists the item ids along the cycle in order,
// starting and ending at the same id.
type CyclicPrerequisitesError struct {
	Cycle []string
}

func (e *CyclicPrerequisitesError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicPrerequisites, strings.Join(e.Cycle, " -> "))
}

func (e *CyclicPrerequisitesError) Unwrap() error { return ErrCyclicPrerequisites }

// AxiomViolationError reports which knowledge-space axiom failed and a
// witness demonstrating the failure (e.g. the pair of states whose union
// is missing from K for an S3 violation).
type AxiomViolationError struct {
	Which   string // "S1", "S2", "S3", "subset", "non-empty"
	Witness string
}

func (e *AxiomViolationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrAxiomViolation, e.Which, e.Witness)
}

func (e *AxiomViolationError) Unwrap() error { return ErrAxiomViolation }

// InaccessibleStateError reports a state that violates the accessibility
// axiom of a learning space: no item in the state may be removed while
// staying within the family.
type InaccessibleStateError struct {
	StateIDs []string
}

func (e *InaccessibleStateError) Error() string {
	return fmt.Sprintf("%v: {%s}", ErrInaccessibleState, strings.Join(e.StateIDs, ", "))
}

func (e *InaccessibleStateError) Unwrap() error { return ErrInaccessibleState }
