package check

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPerfDataSyntax is returned if performance data cannot be parsed.
var ErrPerfDataSyntax = errors.New("invalid performance data")

// ParseOutput parses the first line of a plugin output, ex.: "OK - all fine | 'load'=1;5;10".
// The state is taken from the leading word, output without leading state is unknown.
// Escaped pipes (\|) are part of the info text.
func ParseOutput(output string) (Result, error) {
	line, _, _ := strings.Cut(output, "\n")
	line = strings.TrimRight(line, "\r")

	head, perf := line, ""
	if idx := unescapedPipe(line); idx >= 0 {
		head, perf = line[:idx], line[idx+1:]
	}

	res := parseHead(strings.TrimSpace(head))

	if strings.TrimSpace(perf) != "" {
		perfData, err := ParsePerfData(perf)
		if err != nil {
			return Result{}, err
		}
		res = res.SetPerfData(perfData)
	}

	return res, nil
}

func parseHead(head string) Result {
	word, rest, _ := strings.Cut(head, " ")
	word = strings.TrimSuffix(word, ":")
	state := StateFromString(word)
	if state == StateUnknown && !strings.EqualFold(word, "UNKNOWN") {
		// no state prefix, keep everything as info
		if head == "" {
			return NewResult(StateUnknown)
		}

		return NewResult(StateUnknown).SetInfo(head)
	}

	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
	res := NewResult(state)
	if rest != "" {
		res = res.SetInfo(rest)
	}

	return res
}

func unescapedPipe(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] == '|' && (i == 0 || line[i-1] != '\\') {
			return i
		}
	}

	return -1
}

// ParsePerfData parses space separated performance data, ex.: 'used bytes'=42GB;80;90;0;100 free=3
func ParsePerfData(text string) (PerfData, error) {
	metrics := []Metric{}
	rest := strings.TrimSpace(text)
	for rest != "" {
		metric, remaining, err := parseMetric(rest)
		if err != nil {
			return PerfData{}, err
		}
		metrics = append(metrics, metric)
		rest = strings.TrimSpace(remaining)
	}

	return PerfDataFromMetrics(metrics), nil
}

// parseMetric parses the first metric of text and returns the remaining text.
func parseMetric(text string) (metric Metric, remaining string, err error) {
	var label string
	switch text[0] {
	case '\'', '"':
		var end int
		label, end = quotedLabel(text)
		if end < 0 {
			return metric, "", fmt.Errorf("%w: unterminated label in %q", ErrPerfDataSyntax, text)
		}
		text = text[end+1:]
		if !strings.HasPrefix(text, "=") {
			return metric, "", fmt.Errorf("%w: missing '=' after label %q", ErrPerfDataSyntax, label)
		}
		text = text[1:]
	default:
		var found bool
		label, text, found = strings.Cut(text, "=")
		if !found || strings.ContainsAny(label, " \t") {
			return metric, "", fmt.Errorf("%w: missing '=' in %q", ErrPerfDataSyntax, label)
		}
	}
	if label == "" {
		return metric, "", fmt.Errorf("%w: empty label", ErrPerfDataSyntax)
	}

	value, remaining, _ := strings.Cut(text, " ")
	fields := strings.Split(value, ";")
	if fields[0] == "" {
		return metric, "", fmt.Errorf("%w: empty value for %q", ErrPerfDataSyntax, label)
	}
	if len(fields) > 5 {
		return metric, "", fmt.Errorf("%w: too many fields for %q", ErrPerfDataSyntax, label)
	}

	metric = NewMetric(label, fields[0])
	setter := []func(Metric, string) Metric{Metric.Warning, Metric.Critical, Metric.Min, Metric.Max}
	for i, field := range fields[1:] {
		if field != "" {
			metric = setter[i](metric, field)
		}
	}

	return metric, remaining, nil
}

// quotedLabel returns the label of a quoted metric and the index of its closing quote, -1 if unterminated.
// A doubled quote stands for a literal one, ex.: 'it''s'.
func quotedLabel(text string) (label string, end int) {
	quote := text[0]
	var res strings.Builder
	for i := 1; i < len(text); i++ {
		if text[i] != quote {
			res.WriteByte(text[i])

			continue
		}
		if i+1 < len(text) && text[i+1] == quote {
			res.WriteByte(quote)
			i++

			continue
		}

		return res.String(), i
	}

	return "", -1
}
