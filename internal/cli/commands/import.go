package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gedkit/gedkit/pkg/config"
	"github.com/gedkit/gedkit/pkg/gedcom"
	"github.com/gedkit/gedkit/pkg/model"
	"github.com/gedkit/gedkit/pkg/output"
	"github.com/gedkit/gedkit/pkg/webhook"
)

// ImportOptions holds command-line options for the import command.
type ImportOptions struct {
	commonOptions
	Store string

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.ged>",
		Short: "Import a GEDCOM file into the graph store",
		Long: `Parse, validate and map a GEDCOM file, then commit the resulting
family graph to the store.

The batch is all or nothing: broken cross-references or invalid record
formats block the whole import and nothing is committed. Warnings (for
example unparseable dates) are reported but do not block.

Exit codes:
  0 - Imported cleanly
  1 - Import blocked by error findings
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.Store, "store", "", "Graph store path (overrides config)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show finding locations and diagnostics")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_findings", "When to fire webhook (on_findings|always|never)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string, opts *ImportOptions) error {
	path := args[0]
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

	data, err := readInput(path, cfg.Limits)
	if err != nil {
		return err
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
	store := model.NewFileStore(cfg.Store.Path)

	start := time.Now()
	result, err := svc.Import(ctx, data, store)

	var report *output.Report
	switch {
	case err == nil:
		report = output.NewImportReport(result, path, time.Since(start))
	default:
		var importErr *gedcom.ImportError
		if !errors.As(err, &importErr) {
			return fmt.Errorf("import failed: %w", err)
		}
		report = output.NewBlockedImportReport(importErr, path, time.Since(start))
		ExitCode = 1
	}

	formatter, err := createFormatter(opts.Output, opts.Verbose, opts.Quiet)
	if err != nil {
		return err
	}
	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	sendWebhooks(ctx, cfg, opts.WebhookURL, opts.WebhookToken, opts.WebhookTrigger, report)
	return nil
}

// sendWebhooks fires the configured webhooks plus any ad-hoc one from flags.
// Webhook failures are reported on stderr but never change the exit code.
func sendWebhooks(ctx context.Context, cfg *config.Config, flagURL, flagToken, flagTrigger string, report *output.Report) {
	client := webhook.NewClient()

	targets := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	targets = append(targets, cfg.Webhooks...)
	if flagURL != "" {
		targets = append(targets, config.WebhookConfig{
			URL:     flagURL,
			Token:   flagToken,
			Trigger: config.WebhookTrigger(flagTrigger),
		})
	}

	for _, target := range targets {
		if !webhook.ShouldSend(string(target.Trigger), report) {
			continue
		}
		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     target.URL,
			Token:   target.Token,
			Timeout: target.Timeout,
		})
		if !resp.Success() {
			fmt.Fprintf(os.Stderr, "Warning: webhook %s failed: %v\n", target.URL, resp.Error)
		}
	}
}
