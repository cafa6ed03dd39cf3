// Package detector provides GEDCOM dialect detection: whether a file looks
// like GEDCOM at all, which version it declares, its character set and line
// endings. Useful before a full import to explain what the toolkit sees.
package detector

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strconv"
	"strings"
)

// Result holds the outcome of analyzing one file.
type Result struct {
	// IsGedcom is true when enough sampled lines have the GEDCOM line
	// shape (see MinConfidence).
	IsGedcom bool

	// Confidence is the fraction of sampled non-blank lines with a valid
	// leading level number, 0.0 to 1.0.
	Confidence float64

	// Version is the version declared under HEAD > GEDC > VERS, or ""
	// when the header does not declare one.
	Version string

	// Charset is the character set declared under HEAD > CHAR, or "".
	Charset string

	// HasBOM is true when the file starts with a UTF-8 byte order mark.
	HasBOM bool

	// LineEnding is "LF", "CRLF" or "mixed".
	LineEnding string

	// SampledLines is the number of non-blank lines examined.
	SampledLines int

	// MatchedLines is the number of sampled lines with the GEDCOM shape.
	MatchedLines int
}

// MinConfidence is the line-match fraction above which a file counts as
// GEDCOM.
const MinConfidence = 0.9

// Detector analyzes files for the GEDCOM dialect.
type Detector struct {
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 200).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a Detector.
func New(opts ...Option) *Detector {
	d := &Detector{sampleSize: 200}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes a file on disk.
func (d *Detector) DetectFromFile(_ context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by user via CLI
	if err != nil {
		return nil, err
	}
	return d.Detect(data), nil
}

// Detect analyzes raw file bytes.
func (d *Detector) Detect(data []byte) *Result {
	result := &Result{}

	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		result.HasBOM = true
		data = data[3:]
	}

	result.LineEnding = detectLineEnding(data)

	var (
		inHeader bool
		inGedc   bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() && result.SampledLines < d.sampleSize {
		raw := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		result.SampledLines++

		level, tag, value, ok := splitShape(raw)
		if !ok {
			continue
		}
		result.MatchedLines++

		// Track the header block to pull out declared dialect facts.
		switch {
		case level == 0:
			inHeader = tag == "HEAD"
			inGedc = false
		case inHeader && level == 1:
			inGedc = tag == "GEDC"
			if tag == "CHAR" {
				result.Charset = value
			}
		case inHeader && inGedc && level == 2 && tag == "VERS":
			result.Version = value
		}
	}

	if result.SampledLines > 0 {
		result.Confidence = float64(result.MatchedLines) / float64(result.SampledLines)
	}
	result.IsGedcom = result.SampledLines > 0 && result.Confidence >= MinConfidence

	return result
}

// splitShape checks one line for the "LEVEL [@XREF@] TAG [VALUE]" shape.
func splitShape(raw string) (level int, tag, value string, ok bool) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return 0, "", "", false
	}

	level, err := strconv.Atoi(fields[0])
	if err != nil || level < 0 {
		return 0, "", "", false
	}

	rest := fields[1:]
	if strings.HasPrefix(rest[0], "@") {
		if len(rest) < 2 || !strings.HasSuffix(rest[0], "@") {
			return 0, "", "", false
		}
		rest = rest[1:]
	}

	tag = strings.ToUpper(rest[0])
	value = strings.Join(rest[1:], " ")
	return level, tag, value, true
}

func detectLineEnding(data []byte) string {
	crlf := bytes.Count(data, []byte("\r\n"))
	lf := bytes.Count(data, []byte("\n")) - crlf

	switch {
	case crlf > 0 && lf > 0:
		return "mixed"
	case crlf > 0:
		return "CRLF"
	default:
		return "LF"
	}
}
