package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedkit/gedkit/pkg/exporter"
	"github.com/gedkit/gedkit/pkg/model"
	"github.com/gedkit/gedkit/pkg/parser"
)

func fixedClock() time.Time {
	return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
}

func TestGenerate_EmptyGraph(t *testing.T) {
	got := Generate(nil, nil, Options{Now: fixedClock})

	want := `0 HEAD
1 SOUR gedkit
1 DATE 31 AUG 2026
1 GEDC
2 VERS 5.5.1
2 FORM LINEAGE-LINKED
1 CHAR UTF-8
0 TRLR
`
	assert.Equal(t, want, got)
}

func TestGenerate_FullFamily(t *testing.T) {
	birth := time.Date(1900, time.January, 12, 0, 0, 0, 0, time.UTC)
	death := time.Date(1980, time.March, 3, 0, 0, 0, 0, time.UTC)
	married := time.Date(1925, time.June, 5, 0, 0, 0, 0, time.UTC)

	individuals := []exporter.IndividualRecord{
		{XRef: "I1", Person: model.Person{
			ID: 1, FirstName: "John", LastName: "Doe", Gender: model.GenderMale,
			BirthDate: &birth, BirthPlace: "Springfield", DeathDate: &death,
		}},
		{XRef: "I2", Person: model.Person{
			ID: 2, FirstName: "Jane", LastName: "Doe", Gender: model.GenderFemale, Living: true,
		}},
	}
	families := []exporter.FamilyRecord{
		{XRef: "F1", HusbandXRef: "I1", WifeXRef: "I2", ChildXRefs: []string{"I2"},
			MarriageDate: &married},
	}

	got := Generate(individuals, families, Options{AppName: "myapp", AppVersion: "2.0", Now: fixedClock})

	assert.Contains(t, got, "1 SOUR myapp\n2 VERS 2.0\n")
	assert.Contains(t, got, "0 @I1@ INDI\n1 NAME John /Doe/\n1 SEX M\n")
	assert.Contains(t, got, "1 BIRT\n2 DATE 12 JAN 1900\n2 PLAC Springfield\n")
	assert.Contains(t, got, "1 DEAT\n2 DATE 3 MAR 1980\n")
	assert.Contains(t, got, "0 @F1@ FAM\n1 HUSB @I1@\n1 WIFE @I2@\n1 CHIL @I2@\n1 MARR\n2 DATE 5 JUN 1925\n")
	assert.True(t, strings.HasSuffix(got, "0 TRLR\n"))

	// Living person gets no DEAT block.
	assert.Equal(t, 1, strings.Count(got, "1 DEAT"))
}

func TestGenerate_OutputReparses(t *testing.T) {
	individuals := []exporter.IndividualRecord{
		{XRef: "I1", Person: model.Person{ID: 1, FirstName: "A", LastName: "B", Living: true}},
	}
	families := []exporter.FamilyRecord{
		{XRef: "F1", HusbandXRef: "I1"},
	}

	text := Generate(individuals, families, Options{Now: fixedClock})

	tr, findings := parser.Parse(text)
	require.Empty(t, findings)
	assert.NotNil(t, tr.Header())
	assert.Len(t, tr.RecordsByTag("INDI"), 1)
	assert.Len(t, tr.RecordsByTag("FAM"), 1)
	assert.Len(t, tr.RecordsByTag("TRLR"), 1)
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(1980, time.January, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2 JAN 1980", got)
}
