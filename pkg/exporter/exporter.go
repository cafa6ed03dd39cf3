// Package exporter performs the inverse of the import mapping: it groups the
// flat relationship-edge list back into family units and produces the records
// the generator serializes.
//
// Family grouping does not exist in the internal model; it is reconstructed
// here, fresh for each export run, and discarded after serialization. Two
// source families that collapsed into the same spouse pair on import are
// exported as one family; that ambiguity is inherent to the flat model.
package exporter

import (
	"fmt"
	"sort"
	"time"

	"github.com/gedkit/gedkit/pkg/finding"
	"github.com/gedkit/gedkit/pkg/model"
)

// IndividualRecord is one person prepared for serialization.
type IndividualRecord struct {
	// XRef is the export-scoped cross-reference identifier (e.g. "I3").
	// It is never persisted back to the internal model.
	XRef string

	// Person is the underlying person.
	Person model.Person
}

// FamilyRecord is one reconstructed family prepared for serialization.
type FamilyRecord struct {
	// XRef is the export-scoped cross-reference identifier (e.g. "F1").
	XRef string

	// HusbandXRef and WifeXRef reference individual records; either may be
	// empty for single-parent families.
	HusbandXRef string
	WifeXRef    string

	// ChildXRefs reference individual records, in edge-discovery order.
	ChildXRefs []string

	// MarriageDate and DivorceDate come from the SPOUSE edge, if present.
	MarriageDate *time.Time
	DivorceDate  *time.Time
}

// Result is the output of one export-mapping run.
type Result struct {
	// Individuals holds one record per person, sorted by surname then
	// given name for export determinism.
	Individuals []IndividualRecord

	// Families holds the reconstructed family records in the order their
	// anchor spouse pair (or lone parent) was first discovered.
	Families []FamilyRecord

	// Findings reports skipped inconsistent edges. Export never fails on
	// data shape; partial output always comes back.
	Findings finding.List
}

// Map reconstructs family records from the internal graph and assigns fresh
// export-scoped cross-reference identifiers.
//
// A family cluster is built per unique unordered pair of persons connected by
// a SPOUSE edge; its children are every person reachable via a PARENT edge
// from either spouse. A parent with children but no spouse edge yields a
// single-parent family. Edges referencing unknown person ids are skipped with
// a finding.
func Map(people []model.Person, relationships []model.Relationship) *Result {
	result := &Result{}

	known := make(map[int]model.Person, len(people))
	for _, p := range people {
		known[p.ID] = p
	}

	clusters := buildClusters(known, relationships, &result.Findings)

	// Individuals sorted by (surname, given name), ids as tie-breaker so
	// equal names keep a stable order.
	sorted := make([]model.Person, len(people))
	copy(sorted, people)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].LastName != sorted[j].LastName {
			return sorted[i].LastName < sorted[j].LastName
		}
		if sorted[i].FirstName != sorted[j].FirstName {
			return sorted[i].FirstName < sorted[j].FirstName
		}
		return sorted[i].ID < sorted[j].ID
	})

	xrefs := make(map[int]string, len(sorted))
	for i, p := range sorted {
		xref := fmt.Sprintf("I%d", i+1)
		xrefs[p.ID] = xref
		result.Individuals = append(result.Individuals, IndividualRecord{
			XRef:   xref,
			Person: p,
		})
	}

	for i, c := range clusters {
		fam := FamilyRecord{
			XRef:         fmt.Sprintf("F%d", i+1),
			MarriageDate: c.marriageDate,
			DivorceDate:  c.divorceDate,
		}
		fam.HusbandXRef, fam.WifeXRef = spouseSlots(c.spouses, known, xrefs)
		for _, child := range c.children {
			fam.ChildXRefs = append(fam.ChildXRefs, xrefs[child])
		}
		result.Families = append(result.Families, fam)
	}

	return result
}

// spouseSlots assigns spouse ids to the husband/wife slots. Gender decides
// when known; otherwise edge order stands (first spouse to the husband slot).
func spouseSlots(spouses []int, known map[int]model.Person, xrefs map[int]string) (husband, wife string) {
	switch len(spouses) {
	case 0:
		return "", ""
	case 1:
		if known[spouses[0]].Gender == model.GenderFemale {
			return "", xrefs[spouses[0]]
		}
		return xrefs[spouses[0]], ""
	default:
		a, b := spouses[0], spouses[1]
		if known[a].Gender == model.GenderFemale || known[b].Gender == model.GenderMale {
			a, b = b, a
		}
		return xrefs[a], xrefs[b]
	}
}
