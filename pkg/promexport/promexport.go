package promexport

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/consol-monitoring/icingaplugin/pkg/check"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var reNumUnit = regexp.MustCompile(`^(-?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)\s*(\S*)$`)

// Exporter converts check results into prometheus gauges, ex.: for the node_exporter textfile collector.
type Exporter struct {
	registry *prometheus.Registry
	state    *prometheus.GaugeVec
	perfData *prometheus.GaugeVec
}

// NewExporter creates an exporter using its own registry, metric names start with the given namespace.
func NewExporter(namespace string) *Exporter {
	exp := &Exporter{
		registry: prometheus.NewRegistry(),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "check_state",
				Help:      "exit code of the check: 0 ok, 1 warning, 2 critical, 3 unknown",
			},
			[]string{"check"}),
		perfData: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "check_perfdata",
				Help:      "performance data values of the check, byte units are converted into bytes",
			},
			[]string{"check", "label", "unit"}),
	}
	exp.registry.MustRegister(exp.state, exp.perfData)

	return exp
}

// Observe sets the gauges for the given check. Metrics without numeric value are skipped.
func (e *Exporter) Observe(name string, res check.Result) {
	e.state.WithLabelValues(name).Set(float64(res.State().ExitCode()))

	perfData, ok := res.PerfData()
	if !ok {
		return
	}
	for _, metric := range perfData.Metrics() {
		value, unit, err := ParseValue(metric.Value())
		if err != nil {
			continue
		}
		e.perfData.WithLabelValues(name, metric.Label(), unit).Set(value)
	}
}

// Write prints all gathered metrics in prometheus text format.
func (e *Exporter) Write(writer io.Writer) error {
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather: %w", err)
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(writer, family); err != nil {
			return fmt.Errorf("write %s: %w", family.GetName(), err)
		}
	}

	return nil
}

// WriteTextfile atomically writes all gathered metrics into the given file.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("write textfile %s: %w", path, err)
	}

	return nil
}

// ParseValue splits a performance data value into number and unit, ex.: "11.5GB" -> 11500000000, "B".
// Byte units are converted into bytes.
func ParseValue(raw string) (value float64, unit string, err error) {
	match := reNumUnit.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return 0, "", fmt.Errorf("not a numeric value: %q", raw)
	}

	value, err = strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("not a numeric value: %q: %w", raw, err)
	}
	unit = match[2]

	switch strings.ToUpper(unit) {
	case "KB", "MB", "GB", "TB", "PB", "KIB", "MIB", "GIB", "TIB", "PIB":
		if value < 0 {
			return value, unit, nil
		}
		bytes, err := humanize.ParseBytes(match[1] + unit)
		if err != nil {
			return 0, "", fmt.Errorf("cannot parse bytes %q: %w", raw, err)
		}

		return float64(bytes), "B", nil
	}

	return value, unit, nil
}
