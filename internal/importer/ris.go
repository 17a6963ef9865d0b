package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matsen/ris2bib/internal/mapping"
	"github.com/matsen/ris2bib/internal/reference"
	"github.com/matsen/ris2bib/internal/warning"
)

// tagLine matches "AU  - Doe, Jane": a two-character tag, exactly two
// spaces, a hyphen, optional whitespace, then the value.
var tagLine = regexp.MustCompile(`^([A-Z0-9]{2})  -\s*(.*)$`)

// risState is the position of the RIS parser within the input.
type risState int

const (
	// preamble: nothing but header lines seen so far; everything up to the
	// first TY is ignored.
	preamble risState = iota
	// awaitingRecordStart: between records. TY opens a record; any other
	// tag opens one without a type.
	awaitingRecordStart
	// inRecord: collecting fields until ER, the next TY or end of input.
	inRecord
)

// RISReader parses RIS text into records.
type RISReader struct {
	tables *mapping.Tables
}

// NewRISReader returns a reader that resolves tags through tables.
func NewRISReader(tables *mapping.Tables) *RISReader {
	return &RISReader{tables: tables}
}

// Read parses text, reporting type-level problems to sink. source names the
// input in warnings. Unparseable lines are skipped without a warning.
func (r *RISReader) Read(source, text string, sink warning.Sink) []*reference.Record {
	p := &risParser{
		tables: r.tables,
		sink:   warning.OrDiscard(sink),
		source: source,
	}

	// The whole input is already in memory, so lines are split directly
	// and no line is too long to read.
	for _, line := range strings.Split(strings.TrimPrefix(text, "\ufeff"), "\n") {
		p.line(strings.TrimRight(line, "\r"))
	}
	p.finish()

	return p.records
}

type risParser struct {
	tables *mapping.Tables
	sink   warning.Sink
	source string

	state   risState
	records []*reference.Record

	rec       *reference.Record
	lastTag   string // tag of the most recent tag line in rec
	lastField string // field receiving continuation lines, "" to drop them
	startPage string
	endPage   string
}

func (p *risParser) line(line string) {
	m := tagLine.FindStringSubmatch(line)
	if m == nil {
		if p.state == inRecord {
			p.continuation(line)
		}
		return
	}
	tag, value := m[1], strings.TrimSpace(m[2])

	switch p.state {
	case preamble:
		if tag == mapping.TagType {
			p.begin(value, true)
		}
	case awaitingRecordStart:
		switch tag {
		case mapping.TagEnd:
		case mapping.TagType:
			p.begin(value, true)
		default:
			p.begin("", false)
			p.tag(tag, value)
		}
	case inRecord:
		switch tag {
		case mapping.TagEnd:
			p.end()
		case mapping.TagType:
			p.end()
			p.begin(value, true)
		default:
			p.tag(tag, value)
		}
	}
}

// begin opens a record. hasType is false for a record that starts without
// a TY line.
func (p *risParser) begin(risType string, hasType bool) {
	p.rec = reference.New(mapping.FallbackBibType)
	p.rec.Source = p.source
	p.lastTag, p.lastField = mapping.TagType, ""
	p.startPage, p.endPage = "", ""
	p.state = inRecord

	position := len(p.records) + 1
	if !hasType {
		p.sink.Observe(warning.Warning{
			Kind:    warning.UnknownType,
			Source:  p.source,
			Record:  position,
			Message: fmt.Sprintf("no TY tag; using %s", mapping.FallbackBibType),
		})
		return
	}

	bibType, ok := p.tables.BibType(risType)
	if !ok {
		p.sink.Observe(warning.Warning{
			Kind:    warning.UnknownType,
			Source:  p.source,
			Record:  position,
			Message: fmt.Sprintf("unknown RIS type %q; using %s", risType, mapping.FallbackBibType),
		})
		return
	}
	p.rec.Type = bibType
}

func (p *risParser) tag(tag, value string) {
	repeated := tag == p.lastTag
	p.lastTag, p.lastField = tag, ""

	switch tag {
	case mapping.TagID:
		p.rec.Key = value
		return
	case mapping.TagStartPage:
		p.startPage = value
		return
	case mapping.TagEndPage:
		p.endPage = value
		return
	}

	field, ok := p.tables.Field(tag, p.rec.Type)
	if !ok {
		return
	}
	p.lastField = field

	if repeated && p.tables.Multiline(tag) && p.rec.Extend(field, "\n", value) {
		return
	}
	p.rec.Add(field, value)
}

func (p *risParser) continuation(line string) {
	text := strings.TrimSpace(line)
	if text == "" || p.lastField == "" {
		return
	}
	sep := " "
	if p.tables.Multiline(p.lastTag) {
		sep = "\n"
	}
	p.rec.Extend(p.lastField, sep, text)
}

// end closes the current record and waits for the next one.
func (p *risParser) end() {
	switch {
	case p.startPage != "" && p.endPage != "":
		p.rec.Set(reference.FieldPages, p.startPage+"--"+p.endPage)
	case p.startPage != "":
		p.rec.Set(reference.FieldPages, p.startPage)
	case p.endPage != "":
		p.rec.Set(reference.FieldPages, p.endPage)
	}

	if years := p.rec.Get(reference.FieldYear); len(years) > 0 {
		for i, v := range years {
			if y := reference.ExtractYear(v); y != "" {
				years[i] = y
			}
		}
	}

	p.records = append(p.records, p.rec)
	p.rec = nil
	p.state = awaitingRecordStart
}

func (p *risParser) finish() {
	if p.state == inRecord {
		p.end()
	}
}
