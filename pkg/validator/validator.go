// Package validator checks format invariants on a parsed GEDCOM tree. It is
// pure: the tree is never mutated, problems are reported as findings, and
// validating the same tree twice yields the same list.
package validator

import (
	"fmt"

	"github.com/gedkit/gedkit/pkg/finding"
	"github.com/gedkit/gedkit/pkg/tree"
)

// pointerKinds maps pointer-carrying tags to the top-level record tag their
// target must have.
var pointerKinds = map[string]string{
	tree.TagHusband: tree.TagIndividual,
	tree.TagWife:    tree.TagIndividual,
	tree.TagChild:   tree.TagIndividual,
	"FAMC":          tree.TagFamily,
	"FAMS":          tree.TagFamily,
}

// knownTopLevel lists the top-level tags the toolkit maps. Anything else
// (NOTE, SOUR, SUBM and the rest) is tolerated with a warning for forward
// compatibility and never mapped.
var knownTopLevel = map[string]bool{
	tree.TagHeader:     true,
	tree.TagTrailer:    true,
	tree.TagIndividual: true,
	tree.TagFamily:     true,
}

// Validate walks the tree and reports structural and referential findings.
//
// Checks, in order: header presence, pointer resolution (dangling or
// kind-mismatched pointers are errors, since mapping cannot proceed safely
// past them), duplicate cross-reference identifiers (warning), unrecognized or
// empty top-level records (warning).
func Validate(t *tree.Tree) finding.List {
	var findings finding.List

	checkHeader(t, &findings)

	index := indexXRefs(t, &findings)
	checkPointers(t, index, &findings)
	checkTopLevel(t, &findings)

	return findings
}

func checkHeader(t *tree.Tree, findings *finding.List) {
	headers := t.RecordsByTag(tree.TagHeader)
	switch {
	case len(headers) == 0:
		findings.Add(finding.Errorf(finding.KindStructural, "",
			"missing %s record", tree.TagHeader))
	case len(headers) > 1:
		findings.Add(finding.Warnf(finding.KindStructural,
			location(headers[1]), "%d %s records, expected one", len(headers), tree.TagHeader))
	}

	if len(t.RecordsByTag(tree.TagTrailer)) == 0 {
		findings.Add(finding.Warnf(finding.KindStructural, "",
			"missing %s record", tree.TagTrailer))
	}
}

// indexXRefs builds the identifier index, reporting duplicates. On a
// duplicate the first record wins, matching the import mapper's behavior.
func indexXRefs(t *tree.Tree, findings *finding.List) map[string]*tree.Record {
	index := make(map[string]*tree.Record)
	for _, r := range t.Records {
		if r.XRef == "" {
			continue
		}
		if _, dup := index[r.XRef]; dup {
			findings.Add(finding.Warnf(finding.KindStructural, location(r),
				"duplicate cross-reference identifier @%s@", r.XRef))
			continue
		}
		index[r.XRef] = r
	}
	return index
}

func checkPointers(t *tree.Tree, index map[string]*tree.Record, findings *finding.List) {
	for _, r := range t.Records {
		walkPointers(r, index, findings)
	}
}

// walkPointers descends one record iteratively. The stack holds records still
// to visit; recursion depth is not bounded by input nesting.
func walkPointers(root *tree.Record, index map[string]*tree.Record, findings *finding.List) {
	stack := []*tree.Record{root}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if tree.IsPointer(r.Value) {
			checkPointer(r, index, findings)
		}
		for i := len(r.Children) - 1; i >= 0; i-- {
			stack = append(stack, r.Children[i])
		}
	}
}

func checkPointer(r *tree.Record, index map[string]*tree.Record, findings *finding.List) {
	target := tree.PointerTarget(r.Value)

	resolved, ok := index[target]
	if !ok {
		findings.Add(finding.Errorf(finding.KindReferential, location(r),
			"%s points at @%s@ which does not exist", r.Tag, target))
		return
	}

	want, constrained := pointerKinds[r.Tag]
	if constrained && resolved.Tag != want {
		findings.Add(finding.Errorf(finding.KindReferential, location(r),
			"%s points at @%s@ which is a %s record, expected %s",
			r.Tag, target, resolved.Tag, want))
	}
}

func checkTopLevel(t *tree.Tree, findings *finding.List) {
	for _, r := range t.Records {
		if !knownTopLevel[r.Tag] {
			findings.Add(finding.Warnf(finding.KindStructural, location(r),
				"unrecognized top-level record %s", r.Tag))
			continue
		}

		// Recognized but empty individual/family records cannot be mapped
		// to anything useful.
		if (r.Tag == tree.TagIndividual || r.Tag == tree.TagFamily) && len(r.Children) == 0 {
			findings.Add(finding.Warnf(finding.KindStructural, location(r),
				"%s record @%s@ has no sub-records", r.Tag, r.XRef))
		}
	}
}

func location(r *tree.Record) string {
	if r.Line > 0 {
		return fmt.Sprintf("line %d", r.Line)
	}
	return ""
}
