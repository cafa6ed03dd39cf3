package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedkit/gedkit/pkg/finding"
	"github.com/gedkit/gedkit/pkg/model"
	"github.com/gedkit/gedkit/pkg/parser"
	"github.com/gedkit/gedkit/pkg/tree"
)

func mustParse(t *testing.T, text string) *tree.Tree {
	t.Helper()
	tr, findings := parser.Parse(text)
	require.Empty(t, findings, "test input must parse cleanly")
	return tr
}

func edgesOfKind(rels []model.Relationship, kind model.RelKind) []model.Relationship {
	var out []model.Relationship
	for _, r := range rels {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func TestMap_CoupleWithChild(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME John /Doe/
1 SEX M
0 @I2@ INDI
1 NAME Jane /Roe/
1 SEX F
0 @I3@ INDI
1 NAME Baby /Doe/
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
0 TRLR
`
	result := Map(mustParse(t, text))

	require.Empty(t, result.Findings)
	require.Len(t, result.People, 3)

	spouse := edgesOfKind(result.Relationships, model.RelSpouse)
	parent := edgesOfKind(result.Relationships, model.RelParent)
	require.Len(t, spouse, 1)
	require.Len(t, parent, 2)

	john := result.People[0]
	assert.Equal(t, "John", john.FirstName)
	assert.Equal(t, "Doe", john.LastName)
	assert.Equal(t, model.GenderMale, john.Gender)
	assert.True(t, john.Living)

	// Canonical direction: husband -> wife.
	assert.Equal(t, john.ID, spouse[0].FromID)
	assert.Equal(t, result.People[1].ID, spouse[0].ToID)
	assert.True(t, spouse[0].Active)
}

func TestMap_TwoSpousesTwoChildren(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME A /X/
0 @I2@ INDI
1 NAME B /X/
0 @I3@ INDI
1 NAME C /X/
0 @I4@ INDI
1 NAME D /X/
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 CHIL @I4@
0 TRLR
`
	result := Map(mustParse(t, text))

	require.Empty(t, result.Findings)
	assert.Len(t, edgesOfKind(result.Relationships, model.RelSpouse), 1)
	assert.Len(t, edgesOfKind(result.Relationships, model.RelParent), 4)
}

func TestMap_BirthAndDeath(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME John /Doe/
1 BIRT
2 DATE 12 JAN 1900
2 PLAC Springfield
1 DEAT
2 DATE 3 MAR 1980
0 TRLR
`
	result := Map(mustParse(t, text))

	require.Empty(t, result.Findings)
	p := result.People[0]
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, time.Date(1900, time.January, 12, 0, 0, 0, 0, time.UTC), *p.BirthDate)
	assert.Equal(t, "Springfield", p.BirthPlace)
	require.NotNil(t, p.DeathDate)
	assert.False(t, p.Living)
}

func TestMap_UnparseableBirthDate(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME John /Doe/
1 BIRT
2 DATE ABCD
0 TRLR
`
	result := Map(mustParse(t, text))

	p := result.People[0]
	assert.Nil(t, p.BirthDate)

	require.Len(t, result.Findings, 1)
	f := result.Findings[0]
	assert.Equal(t, finding.SeverityWarning, f.Severity)
	assert.Contains(t, f.Message, "unparseable date")
	assert.Contains(t, f.Message, "ABCD")
}

func TestMap_DeathWithoutDateStillMarksDeceased(t *testing.T) {
	text := "0 HEAD\n0 @I1@ INDI\n1 NAME A /B/\n1 DEAT\n0 TRLR\n"
	result := Map(mustParse(t, text))

	p := result.People[0]
	assert.False(t, p.Living)
	assert.Nil(t, p.DeathDate)
	assert.Empty(t, result.Findings)
}

func TestMap_BrokenReferenceBlocksBatch(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME John /Doe/
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I9@
0 TRLR
`
	result := Map(mustParse(t, text))

	require.True(t, result.Findings.Fatal())
	require.True(t, result.Findings.HasKind(finding.KindBrokenReference))

	// The resolved side still maps: the lone parent keeps no spouse edge.
	assert.Empty(t, edgesOfKind(result.Relationships, model.RelSpouse))
}

func TestMap_NonPointerFamilyValue(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME John /Doe/
0 @F1@ FAM
1 HUSB John Doe
0 TRLR
`
	result := Map(mustParse(t, text))

	assert.True(t, result.Findings.Fatal())
	assert.True(t, result.Findings.HasKind(finding.KindInvalidFormat))
}

func TestMap_AmbiguousRolesDegrade(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME A /X/
0 @I2@ INDI
1 NAME B /X/
0 @I3@ INDI
1 NAME C /X/
0 @F1@ FAM
1 HUSB @I1@
1 HUSB @I2@
1 CHIL @I3@
0 TRLR
`
	result := Map(mustParse(t, text))

	// Still best-effort: one spouse edge between the two resolved parents,
	// parent edges from both, plus a warning.
	assert.Len(t, edgesOfKind(result.Relationships, model.RelSpouse), 1)
	assert.Len(t, edgesOfKind(result.Relationships, model.RelParent), 2)
	assert.False(t, result.Findings.HasErrors())
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Message, "ambiguous")
}

func TestMap_MarriageAndDivorceDates(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME A /X/
0 @I2@ INDI
1 NAME B /X/
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 MARR
2 DATE 5 JUN 1950
1 DIV
2 DATE 1970
0 TRLR
`
	result := Map(mustParse(t, text))

	spouse := edgesOfKind(result.Relationships, model.RelSpouse)
	require.Len(t, spouse, 1)
	require.NotNil(t, spouse[0].MarriageDate)
	require.NotNil(t, spouse[0].DivorceDate)
	assert.Equal(t, 1950, spouse[0].MarriageDate.Year())
	assert.Equal(t, 1970, spouse[0].DivorceDate.Year())
	assert.False(t, spouse[0].Active)
}

func TestMap_AlternateName(t *testing.T) {
	text := `0 HEAD
0 @I1@ INDI
1 NAME Anna /Smith/
1 NAME Anna /Jones/
0 TRLR
`
	result := Map(mustParse(t, text))

	p := result.People[0]
	assert.Equal(t, "Anna", p.FirstName)
	assert.Equal(t, "Smith", p.LastName)
	assert.Equal(t, "Anna Jones", p.AlternateName)
}

func TestMap_IDsAreRunScoped(t *testing.T) {
	text := "0 HEAD\n0 @I1@ INDI\n1 NAME A /B/\n0 TRLR\n"

	first := Map(mustParse(t, text))
	second := Map(mustParse(t, text))

	// Fresh counter per call: ids restart at 1.
	assert.Equal(t, 1, first.People[0].ID)
	assert.Equal(t, 1, second.People[0].ID)
}
