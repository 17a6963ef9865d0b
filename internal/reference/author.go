package reference

import "strings"

// Surname returns the family name of an author string: the text before the
// first comma ("Doe, Jane"), otherwise the last whitespace-separated token
// ("Jane Doe").
func Surname(author string) string {
	author = strings.TrimSpace(author)
	if i := strings.Index(author, ","); i >= 0 {
		return strings.TrimSpace(author[:i])
	}
	fields := strings.Fields(author)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// SplitAuthors splits a BibTeX name list on " and ".
func SplitAuthors(raw string) []string {
	raw = CollapseSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, " and ") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CollapseSpace trims s and reduces internal whitespace runs, including
// line breaks, to single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
