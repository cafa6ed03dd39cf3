package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedkit/gedkit/pkg/model"
)

func person(id int, first, last, gender string) model.Person {
	return model.Person{ID: id, FirstName: first, LastName: last, Gender: gender, Living: true}
}

func TestMap_CoupleWithChildren(t *testing.T) {
	people := []model.Person{
		person(1, "John", "Doe", model.GenderMale),
		person(2, "Jane", "Roe", model.GenderFemale),
		person(3, "Baby", "Doe", ""),
		person(4, "Kid", "Doe", ""),
	}
	married := time.Date(1950, time.June, 5, 0, 0, 0, 0, time.UTC)
	rels := []model.Relationship{
		{FromID: 1, ToID: 2, Kind: model.RelSpouse, MarriageDate: &married, Active: true},
		{FromID: 1, ToID: 3, Kind: model.RelParent, Active: true},
		{FromID: 2, ToID: 3, Kind: model.RelParent, Active: true},
		{FromID: 1, ToID: 4, Kind: model.RelParent, Active: true},
		{FromID: 2, ToID: 4, Kind: model.RelParent, Active: true},
	}

	result := Map(people, rels)

	require.Empty(t, result.Findings)
	require.Len(t, result.Individuals, 4)
	require.Len(t, result.Families, 1)

	fam := result.Families[0]
	assert.Equal(t, "F1", fam.XRef)
	assert.NotEmpty(t, fam.HusbandXRef)
	assert.NotEmpty(t, fam.WifeXRef)
	assert.Len(t, fam.ChildXRefs, 2)
	require.NotNil(t, fam.MarriageDate)
	assert.Equal(t, 1950, fam.MarriageDate.Year())
}

func TestMap_IndividualsSortedByName(t *testing.T) {
	people := []model.Person{
		person(1, "Zed", "Young", ""),
		person(2, "Amy", "Young", ""),
		person(3, "Bob", "Adams", ""),
	}

	result := Map(people, nil)

	require.Len(t, result.Individuals, 3)
	assert.Equal(t, "Bob", result.Individuals[0].Person.FirstName)  // Adams first
	assert.Equal(t, "Amy", result.Individuals[1].Person.FirstName)  // Young, Amy
	assert.Equal(t, "Zed", result.Individuals[2].Person.FirstName)  // Young, Zed
	assert.Equal(t, "I1", result.Individuals[0].XRef)
	assert.Equal(t, "I3", result.Individuals[2].XRef)
}

func TestMap_SingleParentFamily(t *testing.T) {
	people := []model.Person{
		person(1, "Solo", "Parent", model.GenderFemale),
		person(2, "Only", "Child", ""),
	}
	rels := []model.Relationship{
		{FromID: 1, ToID: 2, Kind: model.RelParent, Active: true},
	}

	result := Map(people, rels)

	require.Len(t, result.Families, 1)
	fam := result.Families[0]
	assert.Empty(t, fam.HusbandXRef)
	assert.NotEmpty(t, fam.WifeXRef)
	assert.Len(t, fam.ChildXRefs, 1)
}

func TestMap_GenderDecidesSpouseSlots(t *testing.T) {
	people := []model.Person{
		person(1, "Jane", "Roe", model.GenderFemale),
		person(2, "John", "Doe", model.GenderMale),
	}
	// Spouse edge stored female -> male; the slots still come out right.
	rels := []model.Relationship{
		{FromID: 1, ToID: 2, Kind: model.RelSpouse, Active: true},
	}

	result := Map(people, rels)

	require.Len(t, result.Families, 1)
	fam := result.Families[0]

	var husbandName string
	for _, ind := range result.Individuals {
		if ind.XRef == fam.HusbandXRef {
			husbandName = ind.Person.FirstName
		}
	}
	assert.Equal(t, "John", husbandName)
}

func TestMap_SkipsEdgesWithUnknownPersons(t *testing.T) {
	people := []model.Person{
		person(1, "John", "Doe", model.GenderMale),
	}
	rels := []model.Relationship{
		{FromID: 1, ToID: 99, Kind: model.RelSpouse, Active: true},
		{FromID: 98, ToID: 1, Kind: model.RelParent, Active: true},
	}

	result := Map(people, rels)

	// Export terminates with partial output: the person is still emitted,
	// the broken edges are reported, nothing is fatal.
	require.Len(t, result.Individuals, 1)
	assert.Empty(t, result.Families)
	assert.Len(t, result.Findings, 2)
	assert.False(t, result.Findings.HasErrors())
}

func TestMap_RemarriageChildInBothFamilies(t *testing.T) {
	people := []model.Person{
		person(1, "John", "Doe", model.GenderMale),
		person(2, "Jane", "Roe", model.GenderFemale),
		person(3, "Mary", "May", model.GenderFemale),
		person(4, "Kid", "Doe", ""),
	}
	rels := []model.Relationship{
		{FromID: 1, ToID: 2, Kind: model.RelSpouse, Active: false},
		{FromID: 1, ToID: 3, Kind: model.RelSpouse, Active: true},
		{FromID: 1, ToID: 4, Kind: model.RelParent, Active: true},
	}

	result := Map(people, rels)

	// John's child attaches to both couples he belongs to; which source
	// family the child "really" belonged to is not recoverable from the
	// flat model.
	require.Len(t, result.Families, 2)
	assert.Len(t, result.Families[0].ChildXRefs, 1)
	assert.Len(t, result.Families[1].ChildXRefs, 1)
}

func TestMap_SiblingEdgesIgnored(t *testing.T) {
	people := []model.Person{
		person(1, "A", "X", ""),
		person(2, "B", "X", ""),
	}
	rels := []model.Relationship{
		{FromID: 1, ToID: 2, Kind: model.RelSibling, Active: true},
	}

	result := Map(people, rels)

	assert.Empty(t, result.Families)
	assert.Empty(t, result.Findings)
}

func TestMap_FreshXRefsPerRun(t *testing.T) {
	people := []model.Person{person(7, "A", "X", "")}

	first := Map(people, nil)
	second := Map(people, nil)

	assert.Equal(t, "I1", first.Individuals[0].XRef)
	assert.Equal(t, "I1", second.Individuals[0].XRef)
}
