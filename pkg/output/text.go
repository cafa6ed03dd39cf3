package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gedkit/gedkit/pkg/finding"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		f.writeSummaryLine(report, w)
		return nil
	}

	fmt.Fprintf(w, "=== gedkit %s report ===\n\n", report.Command)

	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
	}
	switch report.Command {
	case "import":
		if report.Summary.Committed {
			fmt.Fprintf(w, "Imported: %d people, %d relationships\n",
				report.Summary.People, report.Summary.Relationships)
		} else {
			fmt.Fprintln(w, "Import blocked: nothing was committed")
		}
	case "validate":
		fmt.Fprintf(w, "Would produce: %d people, %d relationships, %d family cluster(s)\n",
			report.Summary.People, report.Summary.Relationships, report.Summary.FamilyClusters)
	}
	fmt.Fprintln(w)

	if !report.HasFindings() {
		fmt.Fprintln(w, "No findings")
	} else {
		fmt.Fprintf(w, "Findings: %d error(s), %d warning(s)\n",
			report.Summary.Errors, report.Summary.Warnings)
		for _, fn := range report.Findings {
			f.writeFinding(fn, w)
		}
	}

	if f.opts.Verbose {
		fmt.Fprintln(w)
		if report.Metadata.RunID != "" {
			fmt.Fprintf(w, "Run id:   %s\n", report.Metadata.RunID)
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) writeSummaryLine(report *Report, w io.Writer) {
	fmt.Fprintf(w, "gedkit %s: %d people, %d relationships, %d error(s), %d warning(s)\n",
		report.Command,
		report.Summary.People,
		report.Summary.Relationships,
		report.Summary.Errors,
		report.Summary.Warnings)
}

func (f *TextFormatter) writeFinding(fn finding.Finding, w io.Writer) {
	if f.opts.Verbose && fn.Location != "" {
		fmt.Fprintf(w, "  - [%s/%s] %s (%s)\n", fn.Severity, fn.Kind, fn.Message, fn.Location)
		return
	}
	fmt.Fprintf(w, "  - [%s/%s] %s\n", fn.Severity, fn.Kind, fn.Message)
}
