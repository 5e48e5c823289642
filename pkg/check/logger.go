package check

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/kdar/factorlog"
)

// define all available log level.
const (
	// LogVerbosityNone disables logging.
	LogVerbosityNone = 0

	// LogVerbosityDefault sets the default log level.
	LogVerbosityDefault = 1

	// LogVerbosityDebug sets the debug log level.
	LogVerbosityDebug = 2

	// LogVerbosityTrace sets trace log level.
	LogVerbosityTrace = 3
)

var (
	// LogFormat is used for all log lines, stdout is reserved for the plugin output.
	LogFormat = `[%{Date} %{Time "15:04:05.000"}][%{Severity}][pid:%{Pid}][%{ShortFile}:%{Line}] %{Message}`

	// log is shared by all goroutines, setters take logLock for writing, log calls for reading.
	log     = newLogger()
	logLock sync.RWMutex
)

func newLogger() *factorlog.FactorLog {
	logger := factorlog.New(os.Stderr, BuildFormatter(LogFormat))
	logger.SetMinMaxSeverity(factorlog.StringToSeverity("PANIC"), factorlog.StringToSeverity("PANIC"))
	logger.SetVerbosity(LogVerbosityNone)

	return logger
}

// BuildFormatter returns a factorlog formatter with the pid already expanded.
func BuildFormatter(format string) *factorlog.StdFormatter {
	format = strings.ReplaceAll(format, "%{Pid}", fmt.Sprintf("%d", os.Getpid()))

	return factorlog.NewStdFormatter(format)
}

// SetLogLevel sets the library log level, one of: off, error, info, debug, trace.
// Logging is off unless enabled by the plugin.
func SetLogLevel(level string) error {
	logLock.Lock()
	defer logLock.Unlock()

	switch strings.ToLower(level) {
	case "off", "":
		log.SetMinMaxSeverity(factorlog.StringToSeverity("PANIC"), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityNone)
	case "error", "info":
		log.SetMinMaxSeverity(factorlog.StringToSeverity(strings.ToUpper(level)), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityDefault)
	case "debug":
		log.SetMinMaxSeverity(factorlog.StringToSeverity("DEBUG"), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityDebug)
	case "trace":
		log.SetMinMaxSeverity(factorlog.StringToSeverity("TRACE"), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityTrace)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}

	return nil
}

// SetLogOutput redirects log output, ex.: into a file.
func SetLogOutput(writer io.Writer) {
	logLock.Lock()
	defer logLock.Unlock()

	log.SetOutput(writer)
}

// SetLogFormat overrides the log format, see https://pkg.go.dev/github.com/kdar/factorlog
func SetLogFormat(format string) {
	logLock.Lock()
	defer logLock.Unlock()

	log.SetFormatter(BuildFormatter(format))
}

func logTracef(format string, args ...interface{}) {
	logLock.RLock()
	defer logLock.RUnlock()

	log.Tracef(format, args...)
}

func logDebugf(format string, args ...interface{}) {
	logLock.RLock()
	defer logLock.RUnlock()

	log.Debugf(format, args...)
}

func logErrorf(format string, args ...interface{}) {
	logLock.RLock()
	defer logLock.RUnlock()

	log.Errorf(format, args...)
}
