package mapper

import (
	"strconv"
	"strings"
	"time"
)

// Date qualifiers tolerated before the date proper. Approximation is dropped;
// genealogical sources are imprecise and the internal model stores a plain
// date or nothing.
var dateQualifiers = map[string]bool{
	"ABT": true, // about
	"CAL": true, // calculated
	"EST": true, // estimated
	"BEF": true, // before
	"AFT": true, // after
}

var months = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// ParseDate parses a GEDCOM date value ("12 JAN 1980", "JAN 1980", "1980",
// optionally prefixed with a qualifier such as "ABT"). The result is a
// date-only UTC time. Returns nil and false when the text does not parse;
// callers degrade to a warning finding, never an error.
func ParseDate(value string) (*time.Time, bool) {
	fields := strings.Fields(strings.ToUpper(value))
	if len(fields) > 0 && dateQualifiers[fields[0]] {
		fields = fields[1:]
	}

	var (
		day   = 1
		month = time.January
		year  int
		err   error
	)

	switch len(fields) {
	case 3:
		day, err = strconv.Atoi(fields[0])
		if err != nil {
			return nil, false
		}
		m, ok := months[fields[1]]
		if !ok {
			return nil, false
		}
		month = m
		year, err = strconv.Atoi(fields[2])
	case 2:
		m, ok := months[fields[0]]
		if !ok {
			return nil, false
		}
		month = m
		year, err = strconv.Atoi(fields[1])
	case 1:
		year, err = strconv.Atoi(fields[0])
	default:
		return nil, false
	}
	if err != nil || year <= 0 {
		return nil, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out-of-range days (e.g. 31 FEB becomes 2 MAR);
	// treat that as unparseable rather than silently shifting the date.
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return nil, false
	}
	return &t, true
}
