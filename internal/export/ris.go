package export

import (
	"strings"

	"github.com/matsen/ris2bib/internal/mapping"
	"github.com/matsen/ris2bib/internal/reference"
)

// RISWriter renders records as RIS entries.
type RISWriter struct {
	tables *mapping.Tables
}

// NewRISWriter returns a writer that resolves types and tags through tables.
func NewRISWriter(tables *mapping.Tables) *RISWriter {
	return &RISWriter{tables: tables}
}

// Render formats rec as one RIS entry ending in "ER  - ". Each value of a
// repeated field gets its own line; fields with no RIS tag are dropped. An
// unmapped type becomes GEN without a warning, since the reader already
// reported it.
func (w *RISWriter) Render(rec *reference.Record) string {
	risType, ok := w.tables.RISType(rec.Type)
	if !ok {
		risType = mapping.FallbackRISType
	}

	var b strings.Builder
	writeRISTag(&b, mapping.TagType, risType, false)
	writeRISTag(&b, mapping.TagID, rec.Key, false)

	for _, f := range orderedFields(rec) {
		if f.Name == reference.FieldPages {
			start, end := splitPages(strings.TrimSpace(firstOf(f.Values)))
			writeRISTag(&b, mapping.TagStartPage, start, false)
			writeRISTag(&b, mapping.TagEndPage, end, false)
			continue
		}

		tag, ok := w.tables.Tag(f.Name, rec.Type)
		if !ok {
			continue
		}
		multiline := w.tables.Multiline(tag)
		for _, v := range f.Values {
			writeRISTag(&b, tag, v, multiline)
		}
	}

	b.WriteString(mapping.TagEnd + "  - \n")
	return b.String()
}

// writeRISTag writes one tag line, skipping empty values. Line breaks are
// kept as continuation lines for multiline tags and collapsed otherwise.
func writeRISTag(b *strings.Builder, tag, value string, multiline bool) {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	if multiline {
		lines := strings.Split(strings.TrimSpace(value), "\n")
		kept := lines[:0]
		for _, l := range lines {
			if l = strings.TrimSpace(l); l != "" {
				kept = append(kept, l)
			}
		}
		value = strings.Join(kept, "\n")
	} else {
		value = reference.CollapseSpace(value)
	}
	if value == "" {
		return
	}
	b.WriteString(tag + "  - " + value + "\n")
}

// splitPages splits "10--20", "10-20", "10–20" or "10—20" into start and
// end pages.
func splitPages(pages string) (string, string) {
	if pages == "" {
		return "", ""
	}
	for _, sep := range []string{"--", "-", "–", "—"} {
		if i := strings.Index(pages, sep); i >= 0 {
			return strings.TrimSpace(pages[:i]), strings.Trim(strings.TrimSpace(pages[i+len(sep):]), "-–—")
		}
	}
	return pages, ""
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
