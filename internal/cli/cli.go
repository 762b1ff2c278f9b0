package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vk/filedag/internal/app"
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

// stdinIsTerminal reports whether standard input is interactive. It is a
// variable so tests can simulate both piped and interactive invocations.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("filedag", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
fileDAG - renders snakemake's detailed summary as an interactive SVG dependency graph.

Usage:
  snakemake --detailed-summary -c | filedag > dag.html
  filedag [options]

Reads the tab-separated summary from standard input unless -summary is given.
The annotated SVG document is written to standard output unless -output is given.

Options:
`)
		flagSet.PrintDefaults()
	}

	summaryFlag := flagSet.String("summary", "", "Path to the detailed summary file. Empty reads standard input.")
	sFlag := flagSet.String("s", "", "Path to the detailed summary file (shorthand).")
	outputFlag := flagSet.String("output", "", "Path to write the SVG document to. Empty writes standard output.")
	oFlag := flagSet.String("o", "", "Path to write the SVG document to (shorthand).")
	themeFlag := flagSet.String("theme", "", "Path to an HCL theme file or a directory of .hcl files.")
	dotFlag := flagSet.String("dot", "dot", "Name or path of the graphviz dot executable.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	summaryPath := *summaryFlag
	if summaryPath == "" {
		summaryPath = *sFlag
	}
	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	// Without a summary file an interactive stdin means the user forgot the
	// pipe; print usage instead of blocking on a read that will never end.
	if summaryPath == "" && stdinIsTerminal() {
		slog.Debug("No summary input available, printing usage and exiting.")
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
		SummaryPath: summaryPath,
		OutputPath:  outputPath,
		ThemePath:   *themeFlag,
		DotBinary:   *dotFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
