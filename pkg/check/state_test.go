package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateFromExitCode(t *testing.T) {
	t.Parallel()

	for _, tst := range []struct {
		code   int64
		expect State
		exit   int
	}{
		{0, StateOK, 0},
		{1, StateWarning, 1},
		{2, StateCritical, 2},
		{3, StateUnknown, 3},
		{4, StateUnknown, 3},
		{115, StateUnknown, 3},
		{-1, StateUnknown, 3},
	} {
		state := StateFromExitCode(tst.code)
		assert.Equalf(t, tst.expect, state, "state from %d", tst.code)
		assert.Equalf(t, tst.exit, state.ExitCode(), "exit code from %d", tst.code)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	for _, tst := range []struct {
		state  State
		expect string
	}{
		{StateOK, "OK"},
		{StateWarning, "WARNING"},
		{StateCritical, "CRITICAL"},
		{StateUnknown, "UNKNOWN"},
		{State(17), "UNKNOWN"},
	} {
		assert.Equalf(t, tst.expect, tst.state.String(), "string of %d", tst.state)
		if tst.state <= StateUnknown {
			assert.Equalf(t, tst.state, StateFromString(tst.expect), "parse %s", tst.expect)
		}
	}

	assert.Equal(t, StateWarning, StateFromString(" warning "))
	assert.Equal(t, StateUnknown, StateFromString("fine"))
	assert.Equal(t, 3, State(17).ExitCode())
}

func TestStateOrder(t *testing.T) {
	t.Parallel()

	assert.True(t, StateOK < StateWarning, "ok < warning")
	assert.True(t, StateWarning < StateCritical, "warning < critical")
	assert.True(t, StateCritical < StateUnknown, "critical < unknown")

	assert.Equal(t, StateOK, Worst())
	assert.Equal(t, StateCritical, Worst(StateOK, StateCritical, StateWarning))
	assert.Equal(t, StateUnknown, Worst(StateCritical, StateUnknown))
	assert.Equal(t, StateUnknown, Worst(StateOK, State(9)))
}
