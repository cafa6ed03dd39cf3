package mapper

import "strings"

// splitName breaks a GEDCOM name value into given name and surname. The
// surname is the part between slashes ("John /Doe/"); text after the closing
// slash (suffixes like "Jr.") is folded into the given name.
func splitName(value string) (first, last string) {
	open := strings.Index(value, "/")
	if open < 0 {
		return strings.TrimSpace(value), ""
	}

	end := strings.Index(value[open+1:], "/")
	if end < 0 {
		// Unbalanced slash: everything after it is the surname.
		return strings.TrimSpace(value[:open]), strings.TrimSpace(value[open+1:])
	}
	end += open + 1

	first = strings.TrimSpace(value[:open])
	last = strings.TrimSpace(value[open+1 : end])

	if suffix := strings.TrimSpace(value[end+1:]); suffix != "" {
		if first == "" {
			first = suffix
		} else {
			first += " " + suffix
		}
	}
	return first, last
}

// cleanName strips the surname slashes for display, used for alternate names.
func cleanName(value string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(value, "/", " ")), " ")
}
