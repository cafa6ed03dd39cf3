// Package parser turns raw GEDCOM text into a record tree. It understands only
// the line shape "LEVEL [@XREF@] TAG [VALUE]" and the level-number nesting
// rule; genealogy semantics live in the validator and mappers.
package parser

import (
	"bufio"
	"strings"

	"github.com/gedkit/gedkit/pkg/finding"
	"github.com/gedkit/gedkit/pkg/tree"
)

// maxLineSize is the scanner buffer cap. GEDCOM lines are short; 1MB leaves
// ample room for pathological values.
const maxLineSize = 1024 * 1024

// Parse reads GEDCOM text and reconstructs the record tree.
//
// Parse never fails: blank lines, lines without a leading level number and
// other malformed input are reported as findings and skipped, and the maximal
// tree extractable from the well-formed lines is returned. Nesting is
// reconstructed with an explicit open-ancestor stack, so flat files with
// thousands of top-level records cannot grow the call stack.
func Parse(text string) (*tree.Tree, finding.List) {
	var (
		t        = &tree.Tree{}
		findings finding.List

		// open[i] is the currently open record at depth i.
		open []*tree.Record
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(raw) == "" {
			findings.Add(finding.Warnf(finding.KindStructural,
				location(lineNum), "blank line"))
			continue
		}

		rec, err := splitLine(raw, lineNum)
		if err != nil {
			findings.Add(finding.Warnf(finding.KindStructural,
				location(lineNum), "%s", err.Error()))
			continue
		}

		if rec.Level == 0 {
			open = open[:0]
			open = append(open, rec)
			t.Records = append(t.Records, rec)
			continue
		}

		// Close everything at or below this line's level, then attach to
		// the deepest still-open ancestor.
		for len(open) > 0 && open[len(open)-1].Level >= rec.Level {
			open = open[:len(open)-1]
		}

		if len(open) == 0 {
			findings.Add(finding.Warnf(finding.KindStructural,
				location(lineNum), "level %d line with no open parent record", rec.Level))
			rec.Level = 0
			open = append(open, rec)
			t.Records = append(t.Records, rec)
			continue
		}

		parent := open[len(open)-1]
		if rec.Level != parent.Level+1 {
			findings.Add(finding.Warnf(finding.KindStructural,
				location(lineNum), "level jumps from %d to %d", parent.Level, rec.Level))
			rec.Level = parent.Level + 1
		}
		parent.Children = append(parent.Children, rec)
		open = append(open, rec)
	}

	if err := scanner.Err(); err != nil {
		// Only reachable on lines beyond maxLineSize; report and keep what
		// was parsed so far.
		findings.Add(finding.Errorf(finding.KindStructural,
			location(lineNum+1), "reading input: %v", err))
	}

	return t, findings
}
