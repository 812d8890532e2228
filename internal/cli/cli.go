package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/manifold/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("manifold", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
manifold - resolves build-unit dependency manifests into ordered, deduplicated dependency sets.

Usage:
  manifold [options] [PATH...]

Arguments:
  PATH
    A declaration file (.hcl, .yaml, .yml) or a directory searched recursively.

Options:
`)
		flagSet.PrintDefaults()
	}

	pathFlag := flagSet.String("unit-path", "", "Path to a declaration file or directory.")
	uFlag := flagSet.String("u", "", "Path to a declaration file or directory (shorthand).")
	unitFlag := flagSet.String("unit", "", "Resolve only the named unit.")
	formatFlag := flagSet.String("format", "text", "Report format. Options: 'text', 'json' or 'yaml'.")
	explainFlag := flagSet.Bool("explain", false, "Include collapsed duplicate declarations in the report.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 4, "Number of units resolved concurrently.")
	metricsFileFlag := flagSet.String("metrics-file", "", "Write Prometheus metrics to this file (textfile collector format).")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *pathFlag != "" {
		paths = append(paths, *pathFlag)
	}
	if *uFlag != "" {
		paths = append(paths, *uFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Declaration paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No declaration path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		UnitPaths:   paths,
		Unit:        *unitFlag,
		Format:      *formatFlag,
		Explain:     *explainFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		WorkerCount: *workersFlag,
		MetricsFile: *metricsFileFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
