// Package export renders format-neutral records as BibTeX or RIS text.
package export

import (
	"fmt"
	"strings"

	"github.com/matsen/ris2bib/internal/mapping"
	"github.com/matsen/ris2bib/internal/reference"
)

// canonicalOrder is the leading field order of written entries. Fields not
// listed follow in the order the record first saw them.
var canonicalOrder = []string{
	reference.FieldAuthor,
	reference.FieldTitle,
	reference.FieldJournal,
	reference.FieldBooktitle,
	reference.FieldYear,
	reference.FieldVolume,
	reference.FieldNumber,
	reference.FieldPages,
	reference.FieldDOI,
	reference.FieldURL,
	reference.FieldNote,
}

// BibTeXWriter renders records as BibTeX entries.
type BibTeXWriter struct{}

// NewBibTeXWriter returns a BibTeX writer.
func NewBibTeXWriter() *BibTeXWriter {
	return &BibTeXWriter{}
}

// Render formats rec as an entry with the given citation key. Values are
// brace-delimited and passed through without escaping, so a value with
// unbalanced braces yields an unbalanced entry.
func (w *BibTeXWriter) Render(rec *reference.Record, key string) string {
	entryType := rec.Type
	if entryType == "" {
		entryType = mapping.FallbackBibType
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, key))
	for _, f := range orderedFields(rec) {
		value := bibtexValue(f)
		if value == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", f.Name, value))
	}
	b.WriteString("}\n")

	return b.String()
}

// bibtexValue joins a field's values the way BibTeX expects for that field.
// Fields that hold a single value in BibTeX keep only the first.
func bibtexValue(f reference.Field) string {
	values := nonEmpty(f.Values)
	if len(values) == 0 {
		return ""
	}
	switch f.Name {
	case reference.FieldAuthor, reference.FieldEditor:
		return strings.Join(values, " and ")
	case reference.FieldKeywords:
		return strings.Join(values, ", ")
	case reference.FieldAbstract, reference.FieldNote:
		return strings.Join(values, "\n")
	}
	return values[0]
}

// JoinEntries concatenates rendered entries separated by a blank line.
func JoinEntries(entries []string) string {
	return strings.Join(entries, "\n")
}

// orderedFields returns rec's fields in canonical order, then the rest in
// first-seen order.
func orderedFields(rec *reference.Record) []reference.Field {
	out := make([]reference.Field, 0, len(rec.Fields))
	placed := make(map[string]bool, len(canonicalOrder))
	for _, name := range canonicalOrder {
		if vals := rec.Get(name); vals != nil {
			out = append(out, reference.Field{Name: name, Values: vals})
			placed[name] = true
		}
	}
	for _, f := range rec.Fields {
		if !placed[f.Name] {
			out = append(out, f)
		}
	}
	return out
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
