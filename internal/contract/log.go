package contract

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceCLI = "cli"
	SourceMCP = "mcp"
)

var (
	logOnce    sync.Once
	baseLogger *log.Logger
)

// Logger returns the shared stderr logger. Stdout is reserved for data output
// and the MCP stdio transport.
func Logger() *log.Logger {
	logOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stderr, log.Options{
			TimeFormat:      time.Kitchen,
			Level:           log.WarnLevel,
			ReportTimestamp: true,
			Prefix:          "mapmykidz",
		})
	})
	return baseLogger
}

// SetLogLevel parses a level name such as debug, info or warn and applies it.
func SetLogLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", level)
	}
	Logger().SetLevel(lvl)
	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Error("Fatal "+msg, "err", err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, "err", err)
}
