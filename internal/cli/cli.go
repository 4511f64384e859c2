package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/beamgrid/internal/app"
	"github.com/specialistvlad/beamgrid/internal/entryid"
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
	flagSet := flag.NewFlagSet("beamgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
beamgrid - Light beam propagation through a grid of mirrors and splitters.

Usage:
  beamgrid [options] [GRID_PATH]

Arguments:
  GRID_PATH
    Path to a grid text file made of '.', '/', '\', '|' and '-'.

Entries:
  top[i], bottom[i], left[i], right[i]   beam entering from that edge
  x,y:dir                                explicit state, dir in up|down|left|right

Options:
`)
		flagSet.PrintDefaults()
	}

	gridFlag := flagSet.String("grid", "", "Path to the grid file.")
	gFlag := flagSet.String("g", "", "Path to the grid file (shorthand).")
	planFlag := flagSet.String("plan", "", "Path to a plan file (.hcl, .yaml, .yml) or a directory of them.")
	pFlag := flagSet.String("p", "", "Path to a plan file or directory (shorthand).")
	entryFlag := flagSet.String("entry", "", fmt.Sprintf("Entry to simulate. Defaults to %s when the plan has no simulations.", entryid.Default))
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent scanner workers. 0 uses the plan value or the CPU count.")
	topFlag := flagSet.Int("top", 0, "Also print the N best boundary entries.")
	noScanFlag := flagSet.Bool("no-scan", false, "Skip the boundary scan.")
	publishFlag := flagSet.String("publish-url", "", "socket.io URL to publish results to.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	gridPath := firstNonEmpty(*gridFlag, *gFlag)
	if gridPath == "" && flagSet.NArg() > 0 {
		gridPath = flagSet.Arg(0)
	}
	planPath := firstNonEmpty(*planFlag, *pFlag)
	slog.Debug("Input paths determined.", "grid", gridPath, "plan", planPath)

	if gridPath == "" && planPath == "" {
		slog.Debug("No grid or plan path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if *entryFlag != "" {
		if _, err := entryid.Parse(*entryFlag); err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid entry: %v", err)}
		}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GridPath:        gridPath,
		PlanPath:        planPath,
		Entry:           *entryFlag,
		Top:             *topFlag,
		NoScan:          *noScanFlag,
		PublishURL:      *publishFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		WorkerCount:     *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
