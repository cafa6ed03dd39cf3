// Package tree defines the parsed GEDCOM record tree shared by the parser,
// validator and mappers. It carries no genealogy semantics beyond tag names.
package tree

import "strings"

// Well-known top-level record tags.
const (
	TagHeader     = "HEAD"
	TagTrailer    = "TRLR"
	TagIndividual = "INDI"
	TagFamily     = "FAM"
)

// Individual sub-tags recognized by the mappers.
const (
	TagName      = "NAME"
	TagGivenName = "GIVN"
	TagSurname   = "SURN"
	TagSex       = "SEX"
	TagBirth     = "BIRT"
	TagDeath     = "DEAT"
	TagDate      = "DATE"
	TagPlace     = "PLAC"
)

// Family sub-tags recognized by the mappers.
const (
	TagHusband  = "HUSB"
	TagWife     = "WIFE"
	TagChild    = "CHIL"
	TagMarriage = "MARR"
	TagDivorce  = "DIV"
)

// Record is a single parsed GEDCOM record.
//
// Invariant: every child has Level == parent.Level+1 after parsing, even when
// the input skipped level numbers.
type Record struct {
	// Level is the non-negative nesting depth from the input line.
	Level int

	// XRef is the cross-reference identifier without delimiters
	// (e.g. "I1" for "@I1@"), empty when the line had none.
	XRef string

	// Tag is the record tag (e.g. "INDI", "BIRT", "DATE").
	Tag string

	// Value is the remainder of the line after the tag, possibly empty.
	Value string

	// Line is the 1-based line number in the source text.
	Line int

	// Children holds nested records in file order.
	Children []*Record
}

// Child returns the first direct child with the given tag, or nil.
func (r *Record) Child(tag string) *Record {
	for _, c := range r.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildValue returns the value of the first direct child with the given tag,
// or "" when absent.
func (r *Record) ChildValue(tag string) string {
	if c := r.Child(tag); c != nil {
		return c.Value
	}
	return ""
}

// ChildrenByTag returns all direct children with the given tag, in file order.
func (r *Record) ChildrenByTag(tag string) []*Record {
	var out []*Record
	for _, c := range r.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Tree is the ordered sequence of level-0 records extracted from one file.
type Tree struct {
	// Records holds the top-level records in file order.
	Records []*Record
}

// RecordsByTag returns all top-level records with the given tag.
func (t *Tree) RecordsByTag(tag string) []*Record {
	var out []*Record
	for _, r := range t.Records {
		if r.Tag == tag {
			out = append(out, r)
		}
	}
	return out
}

// Header returns the first header record, or nil when absent.
func (t *Tree) Header() *Record {
	for _, r := range t.Records {
		if r.Tag == TagHeader {
			return r
		}
	}
	return nil
}

// IsPointer reports whether a value has the cross-reference pointer shape
// "@...@" with a non-empty token between the delimiters.
func IsPointer(value string) bool {
	return len(value) > 2 && strings.HasPrefix(value, "@") && strings.HasSuffix(value, "@") &&
		!strings.Contains(value[1:len(value)-1], "@")
}

// PointerTarget strips the "@" delimiters from a pointer value.
// Returns "" when the value is not pointer-shaped.
func PointerTarget(value string) string {
	if !IsPointer(value) {
		return ""
	}
	return value[1 : len(value)-1]
}
