package check

import (
	"strings"

	"github.com/consol-monitoring/icingaplugin/pkg/convert"
)

// Metric contains a single performance value.
// Values and thresholds are preformatted text and rendered as is.
type Metric struct {
	label    string
	value    string
	warning  *string
	critical *string
	min      *string
	max      *string
}

// NewMetric creates a metric without thresholds.
func NewMetric(label, value string) Metric {
	return Metric{
		label: label,
		value: value,
	}
}

// NumMetric creates a metric from any number, the unit is appended to the formatted value.
// Floats without fraction are printed as integers, ex.: 3.0 -> "3".
func NumMetric(label string, value interface{}, unit string) Metric {
	num, err := convert.Num2StringE(value)
	if err != nil {
		logDebugf("metric %s: %s", label, err.Error())
		num = "U"
		unit = ""
	}

	return NewMetric(label, num+unit)
}

// Warning returns a copy of the metric with the warning threshold set.
func (m Metric) Warning(warning string) Metric {
	m.warning = &warning

	return m
}

// Critical returns a copy of the metric with the critical threshold set.
func (m Metric) Critical(critical string) Metric {
	m.critical = &critical

	return m
}

// Min returns a copy of the metric with the minimum value set.
func (m Metric) Min(minimum string) Metric {
	m.min = &minimum

	return m
}

// Max returns a copy of the metric with the maximum value set.
func (m Metric) Max(maximum string) Metric {
	m.max = &maximum

	return m
}

func (m Metric) Label() string {
	return m.label
}

func (m Metric) Value() string {
	return m.value
}

// Thresholds returns warning, critical, min and max, empty if not set.
func (m Metric) Thresholds() (warning, critical, minimum, maximum string) {
	return optional(m.warning), optional(m.critical), optional(m.min), optional(m.max)
}

// String returns the metric in plugin performance data format:
//
//	'label'=value;warning;critical;min;max
//
// Unset fields stay empty, there are always four semicolons.
func (m Metric) String() string {
	var res strings.Builder

	res.WriteString("'")
	res.WriteString(m.label)
	res.WriteString("'=")
	res.WriteString(m.value)
	for _, field := range []*string{m.warning, m.critical, m.min, m.max} {
		res.WriteString(";")
		res.WriteString(optional(field))
	}

	return res.String()
}

func optional(str *string) string {
	if str == nil {
		return ""
	}

	return *str
}
