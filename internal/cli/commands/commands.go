// Package commands implements the gedkit subcommands.
package commands

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gedkit/gedkit/pkg/config"
	"github.com/gedkit/gedkit/pkg/output"
)

// ExitCode is set by commands to indicate the result.
var ExitCode = 0

// commonOptions holds flags shared by the pipeline commands.
type commonOptions struct {
	Config  string
	Output  string
	Verbose bool
	Quiet   bool
}

// createFormatter picks the output formatter for the given options.
func createFormatter(format string, verbose, quiet bool) (output.Formatter, error) {
	switch format {
	case "text":
		return output.NewTextFormatter(output.FormatOptions{Verbose: verbose, Quiet: quiet}), nil
	case "json":
		return output.NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text|json)", format)
	}
}

// newLogger builds the command logger. Quiet by default; --verbose enables
// human-readable diagnostics on stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// readInput reads one input file, enforcing the configured size bound. Whole
// files are held in memory for the duration of a run.
func readInput(path string, limits config.Limits) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if limits.MaxFileSize > 0 && info.Size() > limits.MaxFileSize {
		return nil, fmt.Errorf("%s is %d bytes, larger than the configured limit of %d",
			path, info.Size(), limits.MaxFileSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path is expected
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
