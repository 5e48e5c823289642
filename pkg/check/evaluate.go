package check

import (
	"errors"
	"fmt"

	"github.com/consol-monitoring/icingaplugin/pkg/threshold"
	"golang.org/x/exp/constraints"
)

// ErrInvalidThreshold is returned if warning and critical threshold are equal,
// the direction of the comparison cannot be determined then.
var ErrInvalidThreshold = errors.New("warning and critical threshold must not be equal")

// Number is any integer or float type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Evaluate compares value against the warning and critical threshold and returns a result with
// the matching state. Types may be mixed, all numbers are compared as float64.
//
// If warn is lower than crit, higher values are worse:
//
//	value >= crit -> CRITICAL, value >= warn -> WARNING, else OK
//
// If warn is higher than crit, lower values are worse:
//
//	value <= crit -> CRITICAL, value <= warn -> WARNING, else OK
func Evaluate[V, W, C Number](value V, warn W, crit C) (Result, error) {
	return evaluate(float64(value), float64(warn), float64(crit))
}

func evaluate(value, warn, crit float64) (Result, error) {
	if warn == crit {
		logDebugf("rejecting thresholds warn=%v crit=%v", warn, crit)

		return Result{}, fmt.Errorf("%w: warning=%v critical=%v", ErrInvalidThreshold, warn, crit)
	}

	var state State
	if warn < crit {
		switch {
		case value >= crit:
			state = StateCritical
		case value >= warn:
			state = StateWarning
		default:
			state = StateOK
		}
		logTracef("value %v with ascending thresholds warn=%v crit=%v -> %s", value, warn, crit, state)

		return NewResult(state), nil
	}

	switch {
	case value <= crit:
		state = StateCritical
	case value <= warn:
		state = StateWarning
	default:
		state = StateOK
	}
	logTracef("value %v with descending thresholds warn=%v crit=%v -> %s", value, warn, crit, state)

	return NewResult(state), nil
}

// EvaluateRange checks value against monitoring-plugins range definitions, ex.: "10", "~:10",
// "10:20" or "@10:20". An empty range is not checked. Critical wins over warning.
func EvaluateRange(value float64, warn, crit string) (Result, error) {
	for _, entry := range []struct {
		def   string
		state State
	}{
		{crit, StateCritical},
		{warn, StateWarning},
	} {
		if entry.def == "" {
			continue
		}
		thres, err := threshold.NewThreshold(entry.def)
		if err != nil {
			return Result{}, fmt.Errorf("%s threshold: %w", entry.state, err)
		}
		if !thres.CheckValue(value) {
			logTracef("value %v violates %s range %s", value, entry.state, thres)

			return NewResult(entry.state), nil
		}
	}

	return NewResult(StateOK), nil
}
