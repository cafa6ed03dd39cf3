// Package output provides report assembly and formatting for import, validate
// and export runs.
package output

import (
	"time"

	"github.com/gedkit/gedkit/pkg/finding"
	"github.com/gedkit/gedkit/pkg/gedcom"
)

// Report is the complete output of one run.
type Report struct {
	// Command names the run that produced this report (import, validate).
	Command string `json:"command"`

	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Findings is the full findings list, in discovery order.
	Findings finding.List `json:"findings"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics for a run.
type Summary struct {
	// People is the number of persons produced (or that would be).
	People int `json:"people"`

	// Relationships is the number of edges produced (or that would be).
	Relationships int `json:"relationships"`

	// FamilyClusters is the number of reconstructed family units.
	// Only set by validate runs.
	FamilyClusters int `json:"family_clusters,omitempty"`

	// Errors and Warnings count findings by severity.
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`

	// Committed is true when an import batch was saved to the store.
	Committed bool `json:"committed"`
}

// Metadata provides context about the run.
type Metadata struct {
	// RunID identifies the run.
	RunID string `json:"run_id,omitempty"`

	// Source is the input file path.
	Source string `json:"source,omitempty"`

	// RanAt is when the run happened.
	RanAt time.Time `json:"ran_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// NewImportReport builds the report for a committed import.
func NewImportReport(result *gedcom.ImportResult, source string, duration time.Duration) *Report {
	return &Report{
		Command: "import",
		Summary: Summary{
			People:        result.People,
			Relationships: result.Relationships,
			Errors:        result.Findings.Count(finding.SeverityError),
			Warnings:      result.Findings.Count(finding.SeverityWarning),
			Committed:     true,
		},
		Findings: result.Findings,
		Metadata: Metadata{
			RunID:    result.RunID.String(),
			Source:   source,
			RanAt:    time.Now(),
			Duration: duration,
		},
	}
}

// NewBlockedImportReport builds the report for an import the pipeline refused
// to commit.
func NewBlockedImportReport(importErr *gedcom.ImportError, source string, duration time.Duration) *Report {
	return &Report{
		Command: "import",
		Summary: Summary{
			Errors:   importErr.Findings.Count(finding.SeverityError),
			Warnings: importErr.Findings.Count(finding.SeverityWarning),
		},
		Findings: importErr.Findings,
		Metadata: Metadata{
			Source:   source,
			RanAt:    time.Now(),
			Duration: duration,
		},
	}
}

// NewValidateReport builds the report for a dry-run preview.
func NewValidateReport(result *gedcom.PreviewResult, source string, duration time.Duration) *Report {
	return &Report{
		Command: "validate",
		Summary: Summary{
			People:         result.People,
			Relationships:  result.Relationships,
			FamilyClusters: result.FamilyClusters,
			Errors:         result.Findings.Count(finding.SeverityError),
			Warnings:       result.Findings.Count(finding.SeverityWarning),
		},
		Findings: result.Findings,
		Metadata: Metadata{
			RunID:    result.RunID.String(),
			Source:   source,
			RanAt:    time.Now(),
			Duration: duration,
		},
	}
}

// HasErrors returns true if any error-severity finding was recorded.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasFindings returns true if anything at all was reported.
func (r *Report) HasFindings() bool {
	return len(r.Findings) > 0
}
