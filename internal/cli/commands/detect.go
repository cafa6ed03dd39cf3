package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gedkit/gedkit/pkg/detector"
)

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "detect <file>...",
		Short: "Detect whether files are GEDCOM and which dialect",
		Long: `Sample each file and report whether it looks like GEDCOM, the
declared version and character set, byte order mark and line endings.

Useful before an import to understand what the toolkit will see.

Exit codes:
  0 - All files detected as GEDCOM
  1 - At least one file does not look like GEDCOM
  2 - Runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDetect(ctx, args, sampleSize)
		},
	}

	cmd.Flags().IntVar(&sampleSize, "sample-size", 200, "Number of lines to sample per file")

	return cmd
}

func runDetect(ctx context.Context, paths []string, sampleSize int) error {
	d := detector.New(detector.WithSampleSize(sampleSize))

	for _, path := range paths {
		result, err := d.DetectFromFile(ctx, path)
		if err != nil {
			return fmt.Errorf("detecting %s: %w", path, err)
		}

		fmt.Printf("%s:\n", path)
		if !result.IsGedcom {
			fmt.Printf("  Not GEDCOM (%d of %d sampled lines match, %.0f%%)\n",
				result.MatchedLines, result.SampledLines, result.Confidence*100)
			ExitCode = 1
			continue
		}

		fmt.Printf("  GEDCOM (%.0f%% of %d sampled lines match)\n",
			result.Confidence*100, result.SampledLines)
		if result.Version != "" {
			fmt.Printf("  Version:      %s\n", result.Version)
		} else {
			fmt.Println("  Version:      not declared")
		}
		if result.Charset != "" {
			fmt.Printf("  Charset:      %s\n", result.Charset)
		}
		fmt.Printf("  Line endings: %s\n", result.LineEnding)
		if result.HasBOM {
			fmt.Println("  BOM:          present")
		}
	}

	return nil
}
