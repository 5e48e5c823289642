package threshold

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Threshold is a range as described in https://www.monitoring-plugins.org/doc/guidelines.html#THRESHOLDFORMAT
//
//	10      alert if < 0 or > 10
//	10:     alert if < 10
//	~:10    alert if > 10
//	10:20   alert if < 10 or > 20
//	@10:20  alert if >= 10 and <= 20
type Threshold struct {
	input  string
	lower  float64
	upper  float64
	inside bool
}

var (
	reRange = regexp.MustCompile(`^(@?)(~|-?\d+(?:\.\d+)?)?(:?)(-?\d+(?:\.\d+)?)?$`)

	// ErrSyntax is returned for ranges which cannot be parsed.
	ErrSyntax = errors.New("threshold syntax not supported")

	// ErrLowerAboveUpper is returned if the start of the range is bigger than its end.
	ErrLowerAboveUpper = errors.New("range start is bigger than range end")
)

// NewThreshold parses a range definition.
func NewThreshold(def string) (*Threshold, error) {
	def = strings.TrimSpace(def)
	if def == "" {
		return nil, fmt.Errorf("%w: empty threshold", ErrSyntax)
	}

	match := reRange.FindStringSubmatch(def)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, def)
	}
	inside, start, colon, end := match[1] == "@", match[2], match[3] == ":", match[4]

	thres := &Threshold{input: def, inside: inside}
	switch {
	case !colon && start != "" && start != "~" && end == "":
		// single number: 0 to x
		upper, err := strconv.ParseFloat(start, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSyntax, err.Error())
		}
		thres.lower, thres.upper = 0, upper
	case colon && (start != "" || end != ""):
		thres.lower = 0
		switch start {
		case "~":
			thres.lower = math.Inf(-1)
		case "":
		default:
			lower, err := strconv.ParseFloat(start, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrSyntax, err.Error())
			}
			thres.lower = lower
		}
		thres.upper = math.Inf(1)
		if end != "" {
			upper, err := strconv.ParseFloat(end, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrSyntax, err.Error())
			}
			thres.upper = upper
			if thres.lower > thres.upper {
				return nil, fmt.Errorf("%w: %s", ErrLowerAboveUpper, def)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrSyntax, def)
	}

	return thres, nil
}

// String returns the range as it was given.
func (t *Threshold) String() string {
	return t.input
}

// CheckValue returns true if the value is ok and false if it raises an alert.
func (t *Threshold) CheckValue(value float64) bool {
	within := value >= t.lower && value <= t.upper
	if t.inside {
		return !within
	}

	return within
}
