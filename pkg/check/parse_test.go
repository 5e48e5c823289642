package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputValueOnly(t *testing.T) {
	t.Parallel()

	res, err := ParseOutput("OK - test  |  free=317MB;;;;")
	require.NoError(t, err)
	assert.Equal(t, StateOK, res.State())

	info, ok := res.Info()
	assert.True(t, ok)
	assert.Equal(t, "test", info)
	assert.Equal(t, "OK - test | 'free'=317MB;;;; ", res.String())
}

func TestParseOutputWarnCritMinMax(t *testing.T) {
	t.Parallel()

	res, err := ParseOutput("WARNING - test | val=5c;2;3;0;10\nlong output | ignored")
	require.NoError(t, err)

	perfData, ok := res.PerfData()
	require.True(t, ok)
	expect := []Metric{NewMetric("val", "5c").Warning("2").Critical("3").Min("0").Max("10")}
	assert.Equal(t, expect, perfData.Metrics())
	assert.Equal(t, "WARNING - test | 'val'=5c;2;3;0;10 ", res.String())
}

func TestParseOutputEscapedPipe(t *testing.T) {
	t.Parallel()

	res, err := ParseOutput(`CRITICAL: test \|  free=317MB;;;; | test=9`)
	require.NoError(t, err)
	assert.Equal(t, StateCritical, res.State())
	assert.Equal(t, `CRITICAL - test \|  free=317MB;;;; | 'test'=9;;;; `, res.String())
}

func TestParseOutputWithoutState(t *testing.T) {
	t.Parallel()

	res, err := ParseOutput("disk is fine")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN - disk is fine", res.String())

	res, err = ParseOutput("|  free=317MB")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN | 'free'=317MB;;;; ", res.String())

	res, err = ParseOutput("UNKNOWN")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", res.String())
}

func TestParseOutputRoundTrip(t *testing.T) {
	t.Parallel()

	orig := NewResult(StateWarning).SetInfo("2 of 3 disks filled").SetPerfData(PerfDataFromMetrics([]Metric{
		NewMetric("used bytes", "42GB").Warning("40").Critical("45").Min("0").Max("50"),
		NewMetric("free", "8GB"),
	}))

	res, err := ParseOutput(orig.String())
	require.NoError(t, err)
	assert.Equal(t, orig.String(), res.String())
}

func TestParsePerfDataMultiple(t *testing.T) {
	t.Parallel()

	perfData, err := ParsePerfData(`  free=317MB;;;; 'used bytes'=42GB;;;;  "total bytes"=11.5GB;10:20;@5:30`)
	require.NoError(t, err)

	expect := []Metric{
		NewMetric("free", "317MB"),
		NewMetric("used bytes", "42GB"),
		NewMetric("total bytes", "11.5GB").Warning("10:20").Critical("@5:30"),
	}
	assert.Equal(t, expect, perfData.Metrics())
	assert.Equal(t, `'free'=317MB;;;; 'used bytes'=42GB;;;; 'total bytes'=11.5GB;10:20;@5:30;; `, perfData.String())
}

func TestParsePerfDataEscapedQuotes(t *testing.T) {
	t.Parallel()

	for _, tst := range []struct {
		input  string
		expect []Metric
	}{
		{`'it''s'=1;;;;`, []Metric{NewMetric("it's", "1")}},
		{`''''=2`, []Metric{NewMetric("'", "2")}},
		{`'a''b''c'=3;4 x=5`, []Metric{NewMetric("a'b'c", "3").Warning("4"), NewMetric("x", "5")}},
		{`"say ""hi"""=6`, []Metric{NewMetric(`say "hi"`, "6")}},
	} {
		perfData, err := ParsePerfData(tst.input)
		require.NoErrorf(t, err, "input %q", tst.input)
		assert.Equalf(t, tst.expect, perfData.Metrics(), "input %q", tst.input)
	}

	res, err := ParseOutput("OK - fine | 'it''s'=1;;;; ")
	require.NoError(t, err)
	perfData, ok := res.PerfData()
	require.True(t, ok)
	assert.Equal(t, "it's", perfData.Metrics()[0].Label())
}

func TestParsePerfDataErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"free",
		"'free=3",
		"'it''s=3",
		"'free'3",
		"=3",
		"''=3",
		"free=",
		"free=1;2;3;4;5;6",
		"used space=3",
	} {
		_, err := ParsePerfData(input)
		require.ErrorIsf(t, err, ErrPerfDataSyntax, "input %q", input)
	}

	_, err := ParseOutput("OK - fine | broken")
	require.ErrorIs(t, err, ErrPerfDataSyntax)
}
