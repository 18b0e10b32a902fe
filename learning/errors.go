// Package learning models knowledge acquisition as a Markov chain over a
// learning space: per-item learning rates drive transitions along the
// covering relation, absorbing at full mastery. It computes expected
// steps to mastery via the fundamental matrix, optimal teaching plans by
// value iteration, simulated learning trajectories, and rate tuning from
// observed trajectories.
package learning

import "errors"

// Sentinel errors for the learning package.
var (
	// ErrSingularFundamentalMatrix is returned when (I-T) is singular and
	// expected-steps cannot be solved for.
	ErrSingularFundamentalMatrix = errors.New("learning: fundamental matrix is singular")

	// ErrNoOuterFringe names the case of a non-absorbing state with no
	// outer fringe to transition into — a learning space with an
	// unreachable item, which cannot occur for a validated space. No
	// function in this package returns it: OptimalValues,
	// OptimalTeachingPlan and SimulateTrajectory stop at such a state, and
	// TransitionProbability gives 0 from it.
	ErrNoOuterFringe = errors.New("learning: state has no outer fringe but is not the full state")

	// ErrInvalidRate is returned when a learning rate is not strictly positive.
	ErrInvalidRate = errors.New("learning: rate must be strictly positive")

	// ErrNotACoverStep is returned when rate tuning is given a trajectory
	// pair of states that are not a covering-relation step.
	ErrNotACoverStep = errors.New("learning: trajectory step is not a covering-relation step")
)
