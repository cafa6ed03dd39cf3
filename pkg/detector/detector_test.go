package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `0 HEAD
1 SOUR someapp
1 GEDC
2 VERS 5.5.1
1 CHAR UTF-8
0 @I1@ INDI
1 NAME John /Doe/
0 TRLR
`

func TestDetect_Gedcom(t *testing.T) {
	result := New().Detect([]byte(sample))

	assert.True(t, result.IsGedcom)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, "5.5.1", result.Version)
	assert.Equal(t, "UTF-8", result.Charset)
	assert.False(t, result.HasBOM)
	assert.Equal(t, "LF", result.LineEnding)
}

func TestDetect_NotGedcom(t *testing.T) {
	text := "This is just prose.\nAnother line of prose.\nAnd one more.\n"
	result := New().Detect([]byte(text))

	assert.False(t, result.IsGedcom)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Empty(t, result.Version)
}

func TestDetect_BOMAndCRLF(t *testing.T) {
	text := "\xEF\xBB\xBF" + strings.ReplaceAll(sample, "\n", "\r\n")
	result := New().Detect([]byte(text))

	assert.True(t, result.IsGedcom)
	assert.True(t, result.HasBOM)
	assert.Equal(t, "CRLF", result.LineEnding)
	assert.Equal(t, "5.5.1", result.Version)
}

func TestDetect_NoVersionDeclared(t *testing.T) {
	text := "0 HEAD\n1 SOUR x\n0 TRLR\n"
	result := New().Detect([]byte(text))

	assert.True(t, result.IsGedcom)
	assert.Empty(t, result.Version)
}

func TestDetect_SampleSizeLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("0 HEAD\n")
	for i := 0; i < 500; i++ {
		sb.WriteString("0 @I1@ INDI\n")
	}

	result := New(WithSampleSize(10)).Detect([]byte(sb.String()))

	assert.Equal(t, 10, result.SampledLines)
	assert.True(t, result.IsGedcom)
}

func TestDetectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "family.ged")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	result, err := New().DetectFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, result.IsGedcom)
}

func TestDetectFromFile_Missing(t *testing.T) {
	_, err := New().DetectFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.ged"))
	assert.Error(t, err)
}
