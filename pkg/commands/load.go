package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/consol-monitoring/icingaplugin/pkg/check"
	"github.com/consol-monitoring/icingaplugin/pkg/config"
	"github.com/consol-monitoring/icingaplugin/pkg/convert"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/spf13/cobra"
)

var loadNames = []string{"load1", "load5", "load15"}

// replaceable in tests
var (
	loadAvg = func(ctx context.Context) ([]float64, error) {
		stat, err := load.AvgWithContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("load.Avg(): %w", err)
		}

		return []float64{stat.Load1, stat.Load5, stat.Load15}, nil
	}
	cpuCount = func(ctx context.Context) (int, error) {
		num, err := cpu.CountsWithContext(ctx, true)
		if err != nil {
			return 0, fmt.Errorf("cpu.Counts(): %w", err)
		}

		return num, nil
	}
)

type loadFlags struct {
	warning  string
	critical string
	perCPU   bool
	timeout  time.Duration
}

func init() {
	flags := &loadFlags{}
	loadCmd := &cobra.Command{
		Use:     "load",
		GroupID: "plugin",
		Short:   "Check the system load average",
		Long: `Check the 1, 5 and 15 minute load average. The worst state of all three
values is used.

Thresholds are taken from -w/-c as comma separated list "LOAD1,LOAD5,LOAD15"
or from the thresholds load1, load5 and load15 of the yaml config. Command
line thresholds take precedence. Values without threshold are not checked.`,
		Example: `
icingaplugin load -w 4,3,2 -c 8,6,4
OK - total load average: 2.36, 1.26, 1.01 | 'load1'=2.36;4;8;0; 'load5'=1.26;3;6;0; 'load15'=1.01;2;4;0; `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			res, err := flags.run(ctx, pluginConfig)
			if err != nil {
				return err
			}
			emit(cmd, res)

			return nil
		},
	}
	loadCmd.Flags().StringVarP(&flags.warning, "warning", "w", "", "warning threshold: WLOAD1,WLOAD5,WLOAD15")
	loadCmd.Flags().StringVarP(&flags.critical, "critical", "c", "", "critical threshold: CLOAD1,CLOAD5,CLOAD15")
	loadCmd.Flags().BoolVarP(&flags.perCPU, "percpu", "r", false, "divide the load averages by the number of cpus")
	loadCmd.Flags().DurationVarP(&flags.timeout, "timeout", "t", 10*time.Second, "timeout for reading the load")
	loadCmd.Flags().SortFlags = false

	rootCmd.AddCommand(loadCmd)
}

func (f *loadFlags) run(ctx context.Context, conf *config.Config) (check.Result, error) {
	thresholds, err := f.thresholds(conf)
	if err != nil {
		return check.Result{}, err
	}

	values, err := loadAvg(ctx)
	if err != nil {
		return check.Result{}, err
	}

	loadType := "total"
	if f.perCPU {
		cpus, err := cpuCount(ctx)
		if err != nil {
			return check.Result{}, err
		}
		if cpus > 0 {
			for i := range values {
				values[i] /= float64(cpus)
			}
		}
		loadType = "scaled"
	}

	res := check.NewResult(check.StateOK)
	metrics := make([]check.Metric, 0, len(values))
	display := make([]string, 0, len(values))
	for i, value := range values {
		name := loadNames[i]
		value = roundLoad(value)
		metric := check.NumMetric(name, value, "")
		if thres, ok := thresholds[name]; ok {
			evaluated, err := thres.Evaluate(value)
			if err != nil {
				return check.Result{}, fmt.Errorf("%s: %w", name, err)
			}
			res = res.Escalate(evaluated.State())
			metric = metric.Warning(convert.Num2String(thres.Warning)).Critical(convert.Num2String(thres.Critical))
		}
		metrics = append(metrics, metric.Min("0"))
		display = append(display, fmt.Sprintf("%.2f", value))
	}

	return res.
		SetInfo(fmt.Sprintf("%s load average: %s", loadType, strings.Join(display, ", "))).
		SetPerfData(check.PerfDataFromMetrics(metrics)), nil
}

// thresholds merges config and command line thresholds, command line wins.
func (f *loadFlags) thresholds(conf *config.Config) (map[string]config.Threshold, error) {
	res := map[string]config.Threshold{}
	if conf != nil {
		for _, name := range loadNames {
			if thres, ok := conf.Threshold(name); ok {
				res[name] = thres
			}
		}
	}

	warn, err := parseLoadList(f.warning)
	if err != nil {
		return nil, fmt.Errorf("--warning: %w", err)
	}
	crit, err := parseLoadList(f.critical)
	if err != nil {
		return nil, fmt.Errorf("--critical: %w", err)
	}
	if len(warn) != len(crit) {
		return nil, fmt.Errorf("--warning and --critical must contain the same number of values")
	}

	for i := range warn {
		thres := config.Threshold{Warning: warn[i], Critical: crit[i]}
		if err := thres.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", loadNames[i], err)
		}
		res[loadNames[i]] = thres
	}

	return res, nil
}

// parseLoadList parses "1,2,3", a single value is used for all three load values.
func parseLoadList(raw string) ([]float64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	switch len(parts) {
	case 1:
		parts = []string{parts[0], parts[0], parts[0]}
	case len(loadNames):
	default:
		return nil, fmt.Errorf("expected 1 or %d values, got %d", len(loadNames), len(parts))
	}

	res := make([]float64, 0, len(parts))
	for _, part := range parts {
		num, err := convert.Float64E(part)
		if err != nil {
			return nil, err
		}
		res = append(res, num)
	}

	return res, nil
}

func roundLoad(value float64) float64 {
	return float64(int64(value*100+0.5)) / 100
}
