package commands

import (
	"fmt"
	"os"

	"github.com/consol-monitoring/icingaplugin/pkg/check"
	"github.com/consol-monitoring/icingaplugin/pkg/config"
	"github.com/spf13/cobra"
)

// VERSION contains the actual icingaplugin version
const VERSION = "0.1.0"

// Build contains the git commit id, set from main.
var Build = "unknown"

// Flags contains all global command line flags.
type Flags struct {
	Version    bool
	Quiet      bool
	Verbose    int
	LogLevel   string
	LogFile    string
	LogFormat  string
	ConfigFile string
}

var (
	globalFlags = &Flags{}

	// exit code of the last command
	exitCode = check.StateUnknown.ExitCode()

	// config from --config, nil if none given
	pluginConfig *config.Config

	// opened from --logfile, closed after each run
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "icingaplugin [global flags] [command]",
	Short: "Threshold evaluation and output formatting for monitoring plugins.",
	Long: `icingaplugin evaluates measured values against warning and critical
thresholds and prints the result in monitoring plugin format, including
performance data, for Icinga2, Naemon and Nagios.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		if globalFlags.Version {
			fmt.Fprintf(cmd.OutOrStdout(), "icingaplugin v%s (Build: %s)\n", VERSION, Build)
			exitCode = check.StateOK.ExitCode()

			return
		}
		cmd.Usage()
		exitCode = check.StateUnknown.ExitCode()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Version, "version", "V", false, "print version and exit")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "", "", "path to yaml config file with thresholds")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "set loglevel to error")
	rootCmd.PersistentFlags().CountVarP(&globalFlags.Verbose, "verbose", "v", "increase loglevel, -v means debug, -vv means trace")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.LogLevel, "loglevel", "", "", "set loglevel to one of: off, error, info, debug, trace")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.LogFormat, "logformat", "", "", "override logformat, see https://pkg.go.dev/github.com/kdar/factorlog")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.LogFile, "logfile", "", "", "path to log file or stderr")

	rootCmd.DisableAutoGenTag = true
	rootCmd.DisableSuggestions = true

	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.Flags().SortFlags = false

	rootCmd.AddGroup(&cobra.Group{ID: "plugin", Title: "Plugin commands:"})
}

// Execute runs the command line and returns the exit code.
func Execute() int {
	return execute(os.Args[1:])
}

func execute(args []string) int {
	exitCode = check.StateUnknown.ExitCode()
	defer closeLogFile()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return emitError(rootCmd, err)
	}

	return exitCode
}

// setup applies logging and config flags.
func setup(cmd *cobra.Command) error {
	level := globalFlags.LogLevel
	switch {
	case globalFlags.Verbose >= 2:
		level = "trace"
	case globalFlags.Verbose == 1:
		level = "debug"
	case globalFlags.Quiet:
		level = "error"
	}

	pluginConfig = nil
	if globalFlags.ConfigFile != "" {
		conf, err := config.Load(globalFlags.ConfigFile)
		if err != nil {
			return err
		}
		pluginConfig = conf
		if level == "" {
			level = conf.LogLevel
		}
	}

	if err := check.SetLogLevel(level); err != nil {
		return fmt.Errorf("--loglevel: %w", err)
	}
	if globalFlags.LogFormat != "" {
		check.SetLogFormat(globalFlags.LogFormat)
	}

	closeLogFile()
	switch globalFlags.LogFile {
	case "", "stderr":
		check.SetLogOutput(cmd.ErrOrStderr())
	default:
		file, err := os.OpenFile(globalFlags.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open logfile %s: %w", globalFlags.LogFile, err)
		}
		logFile = file
		check.SetLogOutput(file)
	}

	return nil
}

// closeLogFile switches logging back to stderr and closes the --logfile handle.
func closeLogFile() {
	if logFile == nil {
		return
	}
	check.SetLogOutput(os.Stderr)
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close logfile %s: %s\n", logFile.Name(), err.Error())
	}
	logFile = nil
}

// emit prints the result to the commands output and stores the exit code.
func emit(cmd *cobra.Command, res check.Result) {
	code, err := res.EmitTo(cmd.OutOrStdout())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err.Error())
	}
	exitCode = code
}

// emitError prints the error as unknown plugin result and returns its exit code.
func emitError(cmd *cobra.Command, err error) int {
	emit(cmd, check.NewResult(check.StateUnknown).SetInfo(err.Error()))

	return exitCode
}
