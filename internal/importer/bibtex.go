package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/nickng/bibtex"

	"github.com/matsen/ris2bib/internal/mapping"
	"github.com/matsen/ris2bib/internal/reference"
	"github.com/matsen/ris2bib/internal/warning"
)

// fieldAliases maps biblatex field names onto the record vocabulary.
var fieldAliases = map[string]string{
	"journaltitle": reference.FieldJournal,
	"location":     reference.FieldAddress,
}

// BibTeXReader parses BibTeX text into records. Grammar handling (braces,
// quotes, @string macros) is delegated to github.com/nickng/bibtex.
type BibTeXReader struct {
	tables *mapping.Tables
}

// NewBibTeXReader returns a reader that resolves entry types through tables.
func NewBibTeXReader(tables *mapping.Tables) *BibTeXReader {
	return &BibTeXReader{tables: tables}
}

// Read parses text entry by entry. An entry the grammar rejects is skipped
// with a MalformedEntry warning; the rest still convert.
func (r *BibTeXReader) Read(source, text string, sink warning.Sink) []*reference.Record {
	sink = warning.OrDiscard(sink)
	chunks := splitEntries(text)

	// @string definitions are replayed ahead of every entry so macros
	// resolve even though entries are parsed one at a time.
	var macros strings.Builder
	for _, c := range chunks {
		if c.kind == "string" {
			macros.WriteString(c.text)
			macros.WriteString("\n")
		}
	}

	var records []*reference.Record
	position := 0
	for _, c := range chunks {
		switch c.kind {
		case "string", "comment", "preamble":
			continue
		}
		position++

		entry, err := parseEntry(macros.String(), c.text)
		if err != nil {
			sink.Observe(warning.Warning{
				Kind:    warning.MalformedEntry,
				Source:  source,
				Record:  position,
				Message: fmt.Sprintf("skipping entry %s (line %d): %v", entryLabel(c), c.line, err),
			})
			continue
		}

		records = append(records, r.toRecord(source, position, entry, c.text, sink))
	}

	return records
}

// parseMu serialises bibtex.Parse, whose lexer and parser state are
// package globals.
var parseMu sync.Mutex

func parseEntry(macros, text string) (*bibtex.BibEntry, error) {
	parseMu.Lock()
	defer parseMu.Unlock()

	bib, err := bibtex.Parse(strings.NewReader(macros + trailingComma.ReplaceAllString(text, "}")))
	if err != nil {
		// A failed parse leaves the lexer stuck in field mode and every
		// later Parse fails with it. Parsing a lone comma resets it.
		_, _ = bibtex.Parse(strings.NewReader(","))
		return nil, err
	}
	if len(bib.Entries) == 0 {
		return nil, fmt.Errorf("no entry found")
	}
	return bib.Entries[len(bib.Entries)-1], nil
}

// trailingComma matches a comma after the last field of an entry.
var trailingComma = regexp.MustCompile(`,\s*\}\s*$`)

func (r *BibTeXReader) toRecord(source string, position int, entry *bibtex.BibEntry, text string, sink warning.Sink) *reference.Record {
	entryType := strings.ToLower(strings.TrimSpace(entry.Type))
	rec := reference.New(entryType)
	rec.Key = strings.TrimSpace(entry.CiteName)
	rec.Source = source

	if _, ok := r.tables.RISType(entryType); !ok {
		sink.Observe(warning.Warning{
			Kind:    warning.UnknownType,
			Source:  source,
			Record:  position,
			Message: fmt.Sprintf("unknown BibTeX type %q; writing it as %s (RIS %s)", entryType, mapping.FallbackBibType, mapping.FallbackRISType),
		})
		rec.Type = mapping.FallbackBibType
	}

	for _, name := range fieldOrder(text, entry.Fields) {
		value := entry.Fields[name]
		if value == nil {
			continue
		}
		field := strings.ToLower(name)
		if alias, ok := fieldAliases[field]; ok {
			if _, taken := entry.Fields[alias]; taken {
				continue
			}
			field = alias
		}
		for _, v := range splitValue(field, unwrapBraces(value.String())) {
			rec.Add(field, v)
		}
	}

	return rec
}

// splitValue turns one BibTeX value into record values: name lists split on
// "and", keywords on commas or semicolons. Abstracts and notes keep their
// line breaks; every other value is collapsed onto one line.
func splitValue(field, raw string) []string {
	switch field {
	case reference.FieldAuthor, reference.FieldEditor:
		return reference.SplitAuthors(raw)
	case reference.FieldKeywords:
		var out []string
		for _, kw := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' }) {
			if kw = reference.CollapseSpace(kw); kw != "" {
				out = append(out, kw)
			}
		}
		return out
	case reference.FieldAbstract, reference.FieldNote:
		lines := strings.Split(strings.TrimSpace(raw), "\n")
		for i, l := range lines {
			lines[i] = strings.TrimSpace(l)
		}
		if v := strings.Join(lines, "\n"); v != "" {
			return []string{v}
		}
		return nil
	}
	if v := reference.CollapseSpace(raw); v != "" {
		return []string{v}
	}
	return nil
}

// unwrapBraces removes protective braces enclosing the whole value, as in
// title = {{The Title}}.
func unwrapBraces(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' && balanced(s[1:len(s)-1]) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// fieldOrder returns the entry's field names in the order they appear in the
// source text; the parser hands them back as an unordered map.
func fieldOrder(text string, fields map[string]bibtex.BibString) []string {
	lower := strings.ToLower(text)
	type placed struct {
		name string
		pos  int
	}
	order := make([]placed, 0, len(fields))
	for name := range fields {
		pos := len(lower)
		pattern := regexp.MustCompile(`[\s,{(]` + regexp.QuoteMeta(strings.ToLower(name)) + `\s*=`)
		if loc := pattern.FindStringIndex(lower); loc != nil {
			pos = loc[0]
		}
		order = append(order, placed{name: name, pos: pos})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].pos != order[j].pos {
			return order[i].pos < order[j].pos
		}
		return order[i].name < order[j].name
	})

	names := make([]string, len(order))
	for i, p := range order {
		names[i] = p.name
	}
	return names
}

func entryLabel(c chunk) string {
	if c.key != "" {
		return fmt.Sprintf("%q", c.key)
	}
	return "@" + c.kind
}
