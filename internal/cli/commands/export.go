package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gedkit/gedkit/pkg/config"
	"github.com/gedkit/gedkit/pkg/gedcom"
	"github.com/gedkit/gedkit/pkg/model"
)

// ExportOptions holds command-line options for the export command.
type ExportOptions struct {
	Config  string
	Store   string
	Out     string
	Verbose bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the graph store as GEDCOM text",
		Long: `Read the full family graph from the store, reconstruct family
units from the relationship edges and generate GEDCOM text.

Export never fails on data shape: inconsistent edges are skipped and
reported on stderr, so partial output is always produced.

The generated text goes to stdout unless --out is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file path")
	cmd.Flags().StringVar(&opts.Store, "store", "", "Graph store path (overrides config)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write GEDCOM text to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show diagnostics")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.Store != "" {
		cfg.Store.Path = opts.Store
	}

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	svc := gedcom.NewService(
		gedcom.WithLogger(log),
		gedcom.WithProducer(cfg.Producer.Name, cfg.Producer.Version),
	)

	result, err := svc.Export(ctx, model.NewFileStore(cfg.Store.Path))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	for _, f := range result.Findings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", f)
	}

	if opts.Out == "" {
		fmt.Print(result.Text)
		return nil
	}

	if err := os.WriteFile(opts.Out, []byte(result.Text), 0644); err != nil { // #nosec G306 -- export output is not sensitive
		return fmt.Errorf("writing %s: %w", opts.Out, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %d people, %d families to %s\n",
		result.People, result.Families, opts.Out)
	return nil
}
