// Package mapper transforms a validated GEDCOM parse tree into the internal
// family graph. The transform is two-pass: individuals become Person entities,
// then family records are resolved into relationship edges.
//
// The mapper degrades gracefully on semantic problems (unparseable dates,
// ambiguous roles) and records mapping-fatal findings (broken_reference,
// invalid_format) for the caller to decide whether the batch may commit.
package mapper

import (
	"fmt"
	"time"

	"github.com/gedkit/gedkit/pkg/finding"
	"github.com/gedkit/gedkit/pkg/model"
	"github.com/gedkit/gedkit/pkg/tree"
)

// Result is the output of one import-mapping run.
type Result struct {
	// People holds one Person per individual record, in file order.
	People []model.Person

	// Relationships holds the edges synthesized from family records.
	Relationships []model.Relationship

	// Findings collects everything noticed while mapping. If
	// Findings.Fatal() is true the batch must not be committed.
	Findings finding.List
}

// Map converts a parse tree into the internal family graph.
//
// A family record with a husband, wife and child yields one SPOUSE edge
// husband -> wife and one PARENT edge from each spouse to the child. SPOUSE edges
// are stored once, in canonical direction (see model.Relationship).
//
// Person ids are assigned from a counter scoped to this call, so concurrent
// runs over different files cannot interfere.
func Map(t *tree.Tree) *Result {
	m := &mapping{
		result: &Result{},
		byXRef: make(map[string]int),
	}

	for _, rec := range t.RecordsByTag(tree.TagIndividual) {
		m.mapIndividual(rec)
	}
	for _, rec := range t.RecordsByTag(tree.TagFamily) {
		m.mapFamily(rec)
	}

	return m.result
}

// mapping carries the per-run state: the id counter and the xref -> person-id
// index built during the first pass.
type mapping struct {
	result *Result
	nextID int
	byXRef map[string]int
}

func (m *mapping) mapIndividual(rec *tree.Record) {
	m.nextID++
	p := model.Person{ID: m.nextID, Living: true}

	names := rec.ChildrenByTag(tree.TagName)
	if len(names) > 0 {
		p.FirstName, p.LastName = splitName(names[0].Value)

		// Explicit GIVN/SURN sub-records win over the slash convention.
		if givn := names[0].ChildValue(tree.TagGivenName); givn != "" {
			p.FirstName = givn
		}
		if surn := names[0].ChildValue(tree.TagSurname); surn != "" {
			p.LastName = surn
		}
	}
	if len(names) > 1 {
		p.AlternateName = cleanName(names[1].Value)
	}
	if len(names) > 2 {
		m.warn(finding.KindSemantic, rec,
			"individual @%s@ has %d NAME records, keeping the first two", rec.XRef, len(names))
	}

	switch sex := rec.ChildValue(tree.TagSex); sex {
	case "", model.GenderMale, model.GenderFemale:
		p.Gender = sex
	default:
		m.warn(finding.KindSemantic, rec,
			"individual @%s@ has unrecognized SEX value %q", rec.XRef, sex)
	}

	if birt := rec.Child(tree.TagBirth); birt != nil {
		p.BirthDate = m.eventDate(birt, rec.XRef)
		p.BirthPlace = birt.ChildValue(tree.TagPlace)
	}
	if deat := rec.Child(tree.TagDeath); deat != nil {
		p.Living = false
		p.DeathDate = m.eventDate(deat, rec.XRef)
	}

	if rec.XRef == "" {
		m.warn(finding.KindSemantic, rec,
			"individual record without cross-reference identifier cannot be linked to families")
	} else if _, dup := m.byXRef[rec.XRef]; !dup {
		m.byXRef[rec.XRef] = p.ID
	}

	m.result.People = append(m.result.People, p)
}

func (m *mapping) mapFamily(rec *tree.Record) {
	spouses := m.resolveSpouses(rec)
	children := m.resolveChildren(rec)

	if len(spouses) == 2 {
		edge := model.Relationship{
			FromID: spouses[0],
			ToID:   spouses[1],
			Kind:   model.RelSpouse,
			Active: rec.Child(tree.TagDivorce) == nil,
		}
		if marr := rec.Child(tree.TagMarriage); marr != nil {
			edge.MarriageDate = m.eventDate(marr, rec.XRef)
		}
		if div := rec.Child(tree.TagDivorce); div != nil {
			edge.DivorceDate = m.eventDate(div, rec.XRef)
		}
		m.result.Relationships = append(m.result.Relationships, edge)
	}

	for _, spouse := range spouses {
		for _, child := range children {
			m.result.Relationships = append(m.result.Relationships, model.Relationship{
				FromID: spouse,
				ToID:   child,
				Kind:   model.RelParent,
				Active: true,
			})
		}
	}
}

// resolveSpouses returns up to two resolved spouse ids for a family record,
// husband first when both roles are present. Same-role duplicates degrade to
// best effort: the first two resolved persons are used and a warning notes the
// ambiguity.
func (m *mapping) resolveSpouses(rec *tree.Record) []int {
	husbands := m.resolveRole(rec, tree.TagHusband)
	wives := m.resolveRole(rec, tree.TagWife)

	if len(husbands) > 1 || len(wives) > 1 {
		m.warn(finding.KindSemantic, rec,
			"family @%s@ has ambiguous spouse roles (%d HUSB, %d WIFE)",
			rec.XRef, len(husbands), len(wives))
	}

	spouses := append(husbands, wives...)
	if len(spouses) > 2 {
		spouses = spouses[:2]
	}
	return spouses
}

func (m *mapping) resolveRole(rec *tree.Record, tag string) []int {
	var ids []int
	for _, ptr := range rec.ChildrenByTag(tag) {
		if id, ok := m.resolvePointer(ptr, rec); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *mapping) resolveChildren(rec *tree.Record) []int {
	return m.resolveRole(rec, tree.TagChild)
}

// resolvePointer resolves one pointer sub-record against the person index.
// Failures produce mapping-fatal findings: a value that is not even
// pointer-shaped is invalid_format, a pointer with no matching individual is
// broken_reference. Either blocks the import batch; the edge is skipped so
// mapping of the rest of the file can continue and be reported.
func (m *mapping) resolvePointer(ptr *tree.Record, family *tree.Record) (int, bool) {
	if !tree.IsPointer(ptr.Value) {
		m.result.Findings.Add(finding.Errorf(finding.KindInvalidFormat, recLocation(ptr),
			"family @%s@ %s value %q is not a cross-reference pointer",
			family.XRef, ptr.Tag, ptr.Value))
		return 0, false
	}

	id, ok := m.byXRef[tree.PointerTarget(ptr.Value)]
	if !ok {
		m.result.Findings.Add(finding.Errorf(finding.KindBrokenReference, recLocation(ptr),
			"family @%s@ %s points at %s which is not an individual in this file",
			family.XRef, ptr.Tag, ptr.Value))
		return 0, false
	}
	return id, true
}

// eventDate parses the DATE sub-record of an event. Unparseable dates degrade
// to nil with exactly one warning, never an error.
func (m *mapping) eventDate(event *tree.Record, owner string) *time.Time {
	date := event.Child(tree.TagDate)
	if date == nil || date.Value == "" {
		return nil
	}

	t, ok := ParseDate(date.Value)
	if !ok {
		m.warn(finding.KindSemantic, date,
			"unparseable date %q on %s of @%s@", date.Value, event.Tag, owner)
		return nil
	}
	return t
}

func (m *mapping) warn(kind finding.Kind, rec *tree.Record, format string, args ...any) {
	m.result.Findings.Add(finding.Warnf(kind, recLocation(rec), format, args...))
}

func recLocation(rec *tree.Record) string {
	if rec.Line > 0 {
		return fmt.Sprintf("line %d", rec.Line)
	}
	return ""
}
