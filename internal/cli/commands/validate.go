package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gedkit/gedkit/pkg/config"
	"github.com/gedkit/gedkit/pkg/gedcom"
	"github.com/gedkit/gedkit/pkg/output"
)

// ValidateOptions holds command-line options for the validate command.
type ValidateOptions struct {
	commonOptions
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file.ged>...",
		Short: "Validate GEDCOM files without importing",
		Long: `Dry-run the import pipeline over one or more GEDCOM files.

Reports the people, relationships and family clusters each file would
produce, plus every structural, referential and semantic finding,
without touching the graph store.

Exit codes:
  0 - All files would import cleanly
  1 - At least one file has error findings
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show finding locations and diagnostics")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	svc := gedcom.NewService(gedcom.WithLogger(log))

	formatter, err := createFormatter(opts.Output, opts.Verbose, opts.Quiet)
	if err != nil {
		return err
	}

	for _, path := range args {
		data, err := readInput(path, cfg.Limits)
		if err != nil {
			return err
		}

		start := time.Now()
		result := svc.Preview(ctx, data)
		report := output.NewValidateReport(result, path, time.Since(start))

		if err := formatter.Format(ctx, report, os.Stdout); err != nil {
			return fmt.Errorf("formatting report: %w", err)
		}
		if report.HasErrors() {
			ExitCode = 1
		}
	}

	return nil
}
