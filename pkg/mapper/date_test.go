package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"12 JAN 1980", time.Date(1980, time.January, 12, 0, 0, 0, 0, time.UTC)},
		{"12 jan 1980", time.Date(1980, time.January, 12, 0, 0, 0, 0, time.UTC)},
		{"JAN 1980", time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"1980", time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"ABT 1850", time.Date(1850, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"BEF 3 MAR 1920", time.Date(1920, time.March, 3, 0, 0, 0, 0, time.UTC)},
		{"  29 FEB 2000 ", time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"ABCD",
		"32 JAN 1980",
		"29 FEB 1900", // not a leap year
		"12 FOO 1980",
		"JAN",
		"12 JAN 1980 EXTRA",
		"-5",
		"0",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, ok := ParseDate(input)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		input string
		first string
		last  string
	}{
		{"John /Doe/", "John", "Doe"},
		{"/Doe/", "", "Doe"},
		{"John", "John", ""},
		{"John /Doe/ Jr.", "John Jr.", "Doe"},
		{"Mary Ann /van der Berg/", "Mary Ann", "van der Berg"},
		{"John /Doe", "John", "Doe"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			first, last := splitName(tt.input)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
