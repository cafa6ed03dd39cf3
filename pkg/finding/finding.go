// Package finding provides the diagnostic type shared by the parser, validator
// and mappers. Findings accumulate during a run; they never abort processing by
// themselves. Callers decide whether the accumulated list crosses a fatal
// threshold.
package finding

import "fmt"

// Severity classifies how serious a finding is.
type Severity string

const (
	// SeverityError marks findings that make downstream mapping unsafe.
	SeverityError Severity = "error"

	// SeverityWarning marks recoverable findings; processing continues.
	SeverityWarning Severity = "warning"
)

// Kind categorizes the origin and nature of a finding.
type Kind string

const (
	// KindStructural covers malformed lines, level sequences and missing
	// header/trailer records.
	KindStructural Kind = "structural"

	// KindReferential covers dangling or type-mismatched cross-reference
	// pointers.
	KindReferential Kind = "referential"

	// KindSemantic covers unparseable dates, ambiguous roles and other
	// soft data problems. Always warning severity.
	KindSemantic Kind = "semantic"

	// KindBrokenReference is surfaced by the import mapper when a family
	// pointer fails to resolve. Blocks the import batch.
	KindBrokenReference Kind = "broken_reference"

	// KindInvalidFormat is surfaced by the import mapper when a record is
	// too malformed to map. Blocks the import batch.
	KindInvalidFormat Kind = "invalid_format"
)

// Finding is a single validation or mapping diagnostic.
type Finding struct {
	// Severity is error or warning.
	Severity Severity `json:"severity"`

	// Kind categorizes the finding.
	Kind Kind `json:"kind"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Location hints at where in the input the finding arose,
	// e.g. "line 42" or "@F1@ HUSB".
	Location string `json:"location,omitempty"`
}

// String renders the finding in "severity [kind] message (location)" form.
func (f Finding) String() string {
	if f.Location == "" {
		return fmt.Sprintf("%s [%s] %s", f.Severity, f.Kind, f.Message)
	}
	return fmt.Sprintf("%s [%s] %s (%s)", f.Severity, f.Kind, f.Message, f.Location)
}

// Errorf constructs an error-severity finding.
func Errorf(kind Kind, location, format string, args ...any) Finding {
	return Finding{
		Severity: SeverityError,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// Warnf constructs a warning-severity finding.
func Warnf(kind Kind, location, format string, args ...any) Finding {
	return Finding{
		Severity: SeverityWarning,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// List is an ordered collection of findings.
type List []Finding

// Add appends a finding to the list.
func (l *List) Add(f Finding) {
	*l = append(*l, f)
}

// Merge appends all findings from other, preserving order.
func (l *List) Merge(other List) {
	*l = append(*l, other...)
}

// HasErrors returns true if any finding has error severity.
func (l List) HasErrors() bool {
	for _, f := range l {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasKind returns true if any finding has the given kind.
func (l List) HasKind(kind Kind) bool {
	for _, f := range l {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Fatal returns true if the list contains findings that must block an
// import batch: any broken_reference or invalid_format finding.
func (l List) Fatal() bool {
	return l.HasKind(KindBrokenReference) || l.HasKind(KindInvalidFormat)
}

// Count returns the number of findings with the given severity.
func (l List) Count(sev Severity) int {
	n := 0
	for _, f := range l {
		if f.Severity == sev {
			n++
		}
	}
	return n
}
