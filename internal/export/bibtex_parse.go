package export

import (
	"regexp"
	"strings"
)

// BibTeXIndex indexes the entries of an existing .bib file so new output can
// avoid its citation keys and skip works it already holds.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps normalized DOI values to citation keys
	DOIs map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`@(\w+)\s*\{\s*([^,\s]+)\s*,`)
	// Match DOI field: doi = {value} or doi = "value"
	doiFieldRegex = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// IndexBibTeX scans BibTeX text line by line for citation keys and DOIs. It
// is deliberately lenient: entries the full parser would reject still
// reserve their keys.
func IndexBibTeX(text string) *BibTeXIndex {
	idx := NewBibTeXIndex()

	var currentKey string

	for _, line := range strings.Split(text, "\n") {

		if matches := entryStartRegex.FindStringSubmatch(line); len(matches) > 2 {
			switch strings.ToLower(matches[1]) {
			case "string", "comment", "preamble":
			default:
				currentKey = strings.TrimSpace(matches[2])
				idx.Keys[currentKey] = true
			}
		}

		if matches := doiFieldRegex.FindStringSubmatch(line); len(matches) > 1 {
			doi := NormalizeDOI(matches[1])
			if doi != "" && currentKey != "" {
				idx.DOIs[doi] = currentKey
			}
		}
	}

	return idx
}

// HasDOI returns the key of the entry holding doi, if any.
func (idx *BibTeXIndex) HasDOI(doi string) (string, bool) {
	if doi == "" {
		return "", false
	}
	key, ok := idx.DOIs[NormalizeDOI(doi)]
	return key, ok
}

// KeyList returns the indexed citation keys.
func (idx *BibTeXIndex) KeyList() []string {
	keys := make([]string, 0, len(idx.Keys))
	for k := range idx.Keys {
		keys = append(keys, k)
	}
	return keys
}

// NormalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "https://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}
