package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/consol-monitoring/icingaplugin/pkg/check"
	"github.com/consol-monitoring/icingaplugin/pkg/convert"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type evaluateFlags struct {
	value    string
	warning  string
	critical string
	label    string
	unit     string
	info     string
	min      string
	max      string
	ranges   bool
}

func init() {
	flags := &evaluateFlags{}
	evaluateCmd := &cobra.Command{
		Use:     "evaluate",
		Aliases: []string{"eval"},
		GroupID: "plugin",
		Short:   "Evaluate a value against warning and critical thresholds",
		Long: `Evaluate compares a value with the warning and critical threshold and
prints the result in plugin format. The exit code matches the state.

If warning is lower than critical, higher values are worse. If warning is
higher than critical, lower values are worse. Values on the threshold count
as violation. Warning and critical must not be equal.

Values and thresholds may contain byte units, ex.: 10GB.

With --range, warning and critical are monitoring-plugins ranges like 10,
10:, ~:10, 10:20 or @10:20.`,
		Example: `
# ascending thresholds
icingaplugin evaluate --label load1 --value 5 --warning 4 --critical 8
WARNING - load1 is 5 | 'load1'=5;4;8;;

# descending thresholds, free space
icingaplugin evaluate --label free --value 2GB --warning 10GB --critical 5GB
CRITICAL - free is 2.0 GB | 'free'=2000000000B;10000000000;5000000000;;`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := flags.run()
			if err != nil {
				return err
			}
			emit(cmd, res)

			return nil
		},
	}
	evaluateCmd.Flags().StringVarP(&flags.value, "value", "", "", "measured value")
	evaluateCmd.Flags().StringVarP(&flags.warning, "warning", "w", "", "warning threshold")
	evaluateCmd.Flags().StringVarP(&flags.critical, "critical", "c", "", "critical threshold")
	evaluateCmd.Flags().StringVarP(&flags.label, "label", "l", "value", "performance data label")
	evaluateCmd.Flags().StringVarP(&flags.unit, "unit", "u", "", "unit of the value, ex.: %, s, c")
	evaluateCmd.Flags().StringVarP(&flags.info, "info", "i", "", "info text, default is '<label> is <value>'")
	evaluateCmd.Flags().StringVarP(&flags.min, "min", "", "", "minimum value for performance data")
	evaluateCmd.Flags().StringVarP(&flags.max, "max", "", "", "maximum value for performance data")
	evaluateCmd.Flags().BoolVarP(&flags.ranges, "range", "r", false, "treat thresholds as monitoring-plugins ranges")
	evaluateCmd.Flags().SortFlags = false
	evaluateCmd.MarkFlagRequired("value") //nolint:errcheck // flag exists

	rootCmd.AddCommand(evaluateCmd)
}

func (f *evaluateFlags) run() (check.Result, error) {
	value, unit, err := parseNumber(f.value)
	if err != nil {
		return check.Result{}, fmt.Errorf("--value: %w", err)
	}
	if f.unit != "" {
		unit = f.unit
	}

	var res check.Result
	warnText, critText := f.warning, f.critical
	if f.ranges {
		res, err = check.EvaluateRange(value, f.warning, f.critical)
		if err != nil {
			return check.Result{}, err
		}
	} else {
		if f.warning == "" || f.critical == "" {
			return check.Result{}, fmt.Errorf("--warning and --critical are required")
		}
		warn, _, err := parseNumber(f.warning)
		if err != nil {
			return check.Result{}, fmt.Errorf("--warning: %w", err)
		}
		crit, _, err := parseNumber(f.critical)
		if err != nil {
			return check.Result{}, fmt.Errorf("--critical: %w", err)
		}
		res, err = check.Evaluate(value, warn, crit)
		if err != nil {
			return check.Result{}, err
		}
		warnText, critText = convert.Num2String(warn), convert.Num2String(crit)
	}

	metric := check.NumMetric(f.label, value, unit).Warning(warnText).Critical(critText)
	if f.min != "" {
		metric = metric.Min(f.min)
	}
	if f.max != "" {
		metric = metric.Max(f.max)
	}

	info := f.info
	if info == "" {
		info = fmt.Sprintf("%s is %s", f.label, humanValue(value, unit))
	}

	return res.SetInfo(info).SetPerfData(check.PerfDataFromMetric(metric)), nil
}

// parseNumber parses plain numbers and byte values, ex.: 10GB returns 10000000000 and unit B.
func parseNumber(raw string) (num float64, unit string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "", fmt.Errorf("empty value")
	}

	num, err = strconv.ParseFloat(raw, 64)
	if err == nil {
		return num, "", nil
	}

	bytes, err := humanize.ParseBytes(raw)
	if err != nil {
		return 0, "", fmt.Errorf("cannot parse number from %q", raw)
	}

	return float64(bytes), "B", nil
}

func humanValue(value float64, unit string) string {
	if unit == "B" && value >= 0 {
		return humanize.Bytes(uint64(value))
	}

	return convert.Num2String(value) + unit
}
