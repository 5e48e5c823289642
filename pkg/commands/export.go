package commands

import (
	"fmt"
	"io"

	"github.com/consol-monitoring/icingaplugin/pkg/check"
	"github.com/consol-monitoring/icingaplugin/pkg/promexport"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	name      string
	namespace string
	textfile  string
}

func init() {
	flags := &exportFlags{}
	exportCmd := &cobra.Command{
		Use:     "export",
		GroupID: "plugin",
		Short:   "Convert plugin output into prometheus metrics",
		Long: `Export reads the output of a plugin from stdin and converts state and
performance data into prometheus metrics. Metrics are written to stdout or
into a file for the node_exporter textfile collector.`,
		Example: `
check_disk -w 10% -c 5% -p / | icingaplugin export --name disk_root --textfile /var/lib/node_exporter/disk_root.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	exportCmd.Flags().StringVarP(&flags.name, "name", "n", "", "check name used as label")
	exportCmd.Flags().StringVarP(&flags.namespace, "namespace", "", "icinga", "prefix for the metric names")
	exportCmd.Flags().StringVarP(&flags.textfile, "textfile", "", "", "write metrics into this file instead of stdout")
	exportCmd.Flags().SortFlags = false
	exportCmd.MarkFlagRequired("name") //nolint:errcheck // flag exists

	rootCmd.AddCommand(exportCmd)
}

func (f *exportFlags) run(input io.Reader, output io.Writer) error {
	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("read plugin output: %w", err)
	}

	res, err := check.ParseOutput(string(data))
	if err != nil {
		return err
	}

	exporter := promexport.NewExporter(f.namespace)
	exporter.Observe(f.name, res)

	if f.textfile != "" {
		if err := exporter.WriteTextfile(f.textfile); err != nil {
			return err
		}
	} else if err := exporter.Write(output); err != nil {
		return err
	}
	exitCode = check.StateOK.ExitCode()

	return nil
}
