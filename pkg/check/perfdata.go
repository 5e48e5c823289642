package check

import (
	"strings"
)

// PerfData is an ordered list of metrics, the order is kept for display.
type PerfData struct {
	metrics []Metric
}

// PerfDataFromMetric wraps a single metric.
func PerfDataFromMetric(metric Metric) PerfData {
	return PerfData{
		metrics: []Metric{metric},
	}
}

// PerfDataFromMetrics wraps the given metrics in the given order.
func PerfDataFromMetrics(metrics []Metric) PerfData {
	list := make([]Metric, len(metrics))
	copy(list, metrics)

	return PerfData{
		metrics: list,
	}
}

// Metrics returns a copy of the contained metrics.
func (p PerfData) Metrics() []Metric {
	list := make([]Metric, len(p.metrics))
	copy(list, p.metrics)

	return list
}

func (p PerfData) Len() int {
	return len(p.metrics)
}

// String returns all metrics, each one followed by a single space.
func (p PerfData) String() string {
	var res strings.Builder
	for _, m := range p.metrics {
		res.WriteString(m.String())
		res.WriteString(" ")
	}

	return res.String()
}
