package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/gedkit/gedkit/pkg/config"
	"github.com/gedkit/gedkit/pkg/parser"
	"github.com/gedkit/gedkit/pkg/tree"
	"github.com/gedkit/gedkit/pkg/validator"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Config string
	Dump   bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file.ged>",
		Short: "Show what the parser sees in a GEDCOM file",
		Long: `Parse a GEDCOM file and print record statistics plus every parser
and validator finding. With --dump, the full parse tree is dumped for
debugging malformed files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file path")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "Dump the full parse tree")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	path := args[0]
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := readInput(path, cfg.Limits)
	if err != nil {
		return err
	}

	parsed, parseFindings := parser.Parse(string(data))
	findings := parseFindings
	findings.Merge(validator.Validate(parsed))

	fmt.Printf("Inspecting %s...\n\n", path)
	fmt.Printf("Top-level records: %d\n", len(parsed.Records))

	counts := map[string]int{}
	for _, r := range parsed.Records {
		counts[r.Tag]++
	}
	for _, tag := range []string{tree.TagHeader, tree.TagIndividual, tree.TagFamily, tree.TagTrailer} {
		fmt.Printf("  %-4s %d\n", tag, counts[tag])
		delete(counts, tag)
	}
	for _, tag := range sortedTags(counts) {
		fmt.Printf("  %-4s %d (not mapped)\n", tag, counts[tag])
	}

	if len(findings) == 0 {
		fmt.Println("\nNo findings")
	} else {
		fmt.Printf("\nFindings: %d\n", len(findings))
		for _, f := range findings {
			fmt.Printf("  - %s\n", f)
		}
	}

	if opts.Dump {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		fmt.Fprintln(os.Stdout)
		dumper.Fdump(os.Stdout, parsed)
	}

	return nil
}

// sortedTags returns the map's keys in lexical order so inspect output is
// deterministic.
func sortedTags(counts map[string]int) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
