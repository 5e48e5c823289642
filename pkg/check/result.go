package check

import (
	"fmt"
	"io"
	"os"
)

// Result is the outcome of a single check run.
type Result struct {
	state    State
	info     *string
	perfData *PerfData
}

// NewResult creates a result without info text or performance data.
func NewResult(state State) Result {
	return Result{
		state: state,
	}
}

// ResultFromExitCode creates a result from the expected exit code, see StateFromExitCode.
func ResultFromExitCode(code int64) Result {
	return NewResult(StateFromExitCode(code))
}

// SetInfo returns a copy of the result with the info text set.
func (r Result) SetInfo(text string) Result {
	r.info = &text

	return r
}

// SetPerfData returns a copy of the result with the performance data set.
func (r Result) SetPerfData(perfData PerfData) Result {
	r.perfData = &perfData

	return r
}

func (r Result) State() State {
	return r.state
}

// Info returns the info text and whether it has been set.
func (r Result) Info() (string, bool) {
	if r.info == nil {
		return "", false
	}

	return *r.info, true
}

// PerfData returns the performance data and whether it has been set.
func (r Result) PerfData() (PerfData, bool) {
	if r.perfData == nil {
		return PerfData{}, false
	}

	return *r.perfData, true
}

// Escalate returns a copy of the result with the given state if it is worse than the current one.
func (r Result) Escalate(state State) Result {
	r.state = Worst(r.state, state)

	return r
}

func (r Result) String() string {
	switch {
	case r.info != nil && r.perfData != nil:
		return fmt.Sprintf("%s - %s | %s", r.state, *r.info, r.perfData)
	case r.info != nil:
		return fmt.Sprintf("%s - %s", r.state, *r.info)
	case r.perfData != nil:
		return fmt.Sprintf("%s | %s", r.state, r.perfData)
	}

	return r.state.String()
}

// Emit prints the result to stdout and returns the exit code.
func (r Result) Emit() int {
	code, err := r.EmitTo(os.Stdout)
	if err != nil {
		logErrorf("failed to print check result: %s", err.Error())
	}

	return code
}

// EmitTo prints the result followed by a newline and returns the exit code.
func (r Result) EmitTo(writer io.Writer) (int, error) {
	logDebugf("emitting check result with state %s", r.state)
	code := r.state.ExitCode()
	if _, err := fmt.Fprintln(writer, r.String()); err != nil {
		return code, fmt.Errorf("write: %w", err)
	}

	return code, nil
}
