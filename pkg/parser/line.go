package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gedkit/gedkit/pkg/tree"
)

// splitLine tokenizes one GEDCOM line into a childless record.
//
// The shape is "LEVEL [@XREF@] TAG [VALUE]". The value keeps its internal
// whitespace; only the single separator space after the tag is consumed.
func splitLine(raw string, lineNum int) (*tree.Record, error) {
	s := strings.TrimLeft(raw, " \t")

	levelTok, rest, _ := cutSpace(s)
	level, err := strconv.Atoi(levelTok)
	if err != nil {
		return nil, fmt.Errorf("no leading level number in %q", truncate(raw))
	}
	if level < 0 {
		return nil, fmt.Errorf("negative level number %d", level)
	}

	xref := ""
	if strings.HasPrefix(rest, "@") {
		tok, after, _ := cutSpace(rest)
		if !tree.IsPointer(tok) {
			return nil, fmt.Errorf("malformed cross-reference identifier %q", tok)
		}
		xref = tree.PointerTarget(tok)
		rest = after
	}

	tag, value, _ := cutSpace(rest)
	if tag == "" {
		return nil, fmt.Errorf("missing tag in %q", truncate(raw))
	}

	return &tree.Record{
		Level: level,
		XRef:  xref,
		Tag:   strings.ToUpper(tag),
		Value: value,
		Line:  lineNum,
	}, nil
}

// cutSpace splits s at the first space, trimming nothing from the remainder
// beyond that one separator.
func cutSpace(s string) (token, rest string, found bool) {
	return strings.Cut(s, " ")
}

func location(line int) string {
	return fmt.Sprintf("line %d", line)
}

func truncate(s string) string {
	const max = 60
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
