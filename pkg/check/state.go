package check

import (
	"strings"
)

// State is the outcome of a check, the numeric value is the plugin exit code.
type State int64

const (
	// StateOK is used for normal exits.
	StateOK State = 0

	// StateWarning is used for warnings.
	StateWarning State = 1

	// StateCritical is used for critical errors.
	StateCritical State = 2

	// StateUnknown is used when the check runs into a problem itself.
	StateUnknown State = 3
)

// StateFromExitCode converts an exit code into a State.
// Anything other than 0, 1 or 2 is unknown.
func StateFromExitCode(code int64) State {
	switch code {
	case 0:
		return StateOK
	case 1:
		return StateWarning
	case 2:
		return StateCritical
	}

	return StateUnknown
}

// StateFromString parses the textual state, ex.: "CRITICAL". Unrecognized text is unknown.
func StateFromString(str string) State {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case "OK":
		return StateOK
	case "WARNING":
		return StateWarning
	case "CRITICAL":
		return StateCritical
	}

	return StateUnknown
}

// ExitCode returns the plugin exit code for this state.
func (s State) ExitCode() int {
	switch s {
	case StateOK:
		return 0
	case StateWarning:
		return 1
	case StateCritical:
		return 2
	}

	return 3
}

func (s State) String() string {
	switch s {
	case StateOK:
		return "OK"
	case StateWarning:
		return "WARNING"
	case StateCritical:
		return "CRITICAL"
	}

	return "UNKNOWN"
}

// Worst returns the state with the highest ordinal, unknown beats critical.
func Worst(states ...State) State {
	worst := StateOK
	for _, s := range states {
		s = StateFromExitCode(int64(s))
		if s > worst {
			worst = s
		}
	}

	return worst
}
