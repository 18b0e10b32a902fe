// Package estimation fits BLIM parameters to observed response data via
// Expectation-Maximization: posterior state responsibilities in the
// E-step, closed-form π/β/η updates in the M-step, multi-restart
// calibration with an identifiability check, and a G² goodness-of-fit
// statistic.
package estimation

import "errors"

// Sentinel errors for the estimation package.
var (
	// ErrEMDiverged is returned when the log-likelihood decreases between
	// iterations — a sign of a numerical or modeling bug, since EM is
	// guaranteed monotonic non-decreasing.
	ErrEMDiverged = errors.New("estimation: log-likelihood decreased between EM iterations")

	// ErrNoRestarts is returned when Calibrate is asked for zero restarts.
	ErrNoRestarts = errors.New("estimation: calibration requires at least one restart")

	// ErrEmptyResponseData is returned when EM is run with no observations.
	ErrEmptyResponseData = errors.New("estimation: response data is empty")
)
