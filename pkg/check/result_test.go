package check

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultString(t *testing.T) {
	t.Parallel()

	perfData := PerfDataFromMetric(NewMetric("label", "value"))

	for _, tst := range []struct {
		result Result
		expect string
	}{
		{NewResult(StateOK), "OK"},
		{ResultFromExitCode(115), "UNKNOWN"},
		{NewResult(StateOK).SetInfo("Everything fine."), "OK - Everything fine."},
		{ResultFromExitCode(0).SetPerfData(perfData), "OK | 'label'=value;;;; "},
		{NewResult(StateCritical).SetInfo("disk full").SetPerfData(perfData), "CRITICAL - disk full | 'label'=value;;;; "},
		{NewResult(StateWarning).SetInfo("first").SetInfo("second"), "WARNING - second"},
		{NewResult(StateOK).SetInfo(""), "OK - "},
	} {
		assert.Equalf(t, tst.expect, tst.result.String(), "Result.String()")
	}
}

func TestResultAccessors(t *testing.T) {
	t.Parallel()

	res := ResultFromExitCode(0)
	assert.Equal(t, StateOK, res.State())

	_, ok := res.Info()
	assert.False(t, ok, "no info set")
	_, ok = res.PerfData()
	assert.False(t, ok, "no perf data set")

	withInfo := res.SetInfo("fine")
	info, ok := withInfo.Info()
	assert.True(t, ok)
	assert.Equal(t, "fine", info)

	// the original result is unchanged
	assert.Equal(t, "OK", res.String())

	escalated := withInfo.Escalate(StateWarning).Escalate(StateOK)
	assert.Equal(t, StateWarning, escalated.State())
	assert.Equal(t, StateOK, withInfo.State())
}

func TestResultEmit(t *testing.T) {
	t.Parallel()

	for _, tst := range []struct {
		result Result
		output string
		code   int
	}{
		{ResultFromExitCode(0), "OK\n", 0},
		{ResultFromExitCode(1).SetInfo("slow"), "WARNING - slow\n", 1},
		{ResultFromExitCode(2), "CRITICAL\n", 2},
		{ResultFromExitCode(42), "UNKNOWN\n", 3},
	} {
		buf := &bytes.Buffer{}
		code, err := tst.result.EmitTo(buf)
		require.NoError(t, err)
		assert.Equalf(t, tst.code, code, "exit code")
		assert.Equalf(t, tst.output, buf.String(), "emitted output")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestResultEmitError(t *testing.T) {
	t.Parallel()

	code, err := NewResult(StateCritical).EmitTo(failingWriter{})
	require.Error(t, err)
	assert.Equal(t, 2, code, "exit code is returned anyway")
}

// swaps os.Stdout, so it must not run in parallel
func TestResultEmitStdout(t *testing.T) {
	reader, writer, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = writer
	defer func() { os.Stdout = stdout }()

	code := ResultFromExitCode(1).SetInfo("slow").Emit()
	require.NoError(t, writer.Close())
	os.Stdout = stdout

	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())

	assert.Equal(t, 1, code)
	assert.Equal(t, "WARNING - slow\n", string(out))
}
