package reference

import "regexp"

var yearPattern = regexp.MustCompile(`\b(19|20|21)\d{2}\b`)

// ExtractYear returns the first 19xx, 20xx or 21xx year in s, or "".
func ExtractYear(s string) string {
	return yearPattern.FindString(s)
}
