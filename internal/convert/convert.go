// Package convert drives a whole conversion: it reads the inputs, parses
// them into records, assigns citation keys and renders the target format.
//
// A Converter holds only immutable collaborators. Every call to Convert owns
// its key set, so one Converter may serve independent calls, but a single
// call is strictly sequential.
package convert

import (
	"fmt"

	"github.com/matsen/ris2bib/internal/citekey"
	"github.com/matsen/ris2bib/internal/export"
	"github.com/matsen/ris2bib/internal/importer"
	"github.com/matsen/ris2bib/internal/mapping"
	"github.com/matsen/ris2bib/internal/reference"
	"github.com/matsen/ris2bib/internal/storage"
	"github.com/matsen/ris2bib/internal/warning"
)

// Request describes one conversion.
type Request struct {
	Inputs []string

	// Output, if set, receives the result text; it is created or
	// overwritten unless Append is set. It is left untouched when no
	// record was rendered.
	Output string
	Append bool

	// From forces the input format. Unknown detects it per file.
	From importer.Format
	// To is the target format and must be RIS or BibTeX.
	To importer.Format

	// Existing names a .bib file whose citation keys are reserved and whose
	// DOIs are not emitted again. BibTeX target only.
	Existing string
}

// Result is the outcome of a conversion.
type Result struct {
	Text    string
	Records int // records rendered
	Skipped int // records dropped as already present in Existing
}

// Converter runs conversions.
type Converter struct {
	tables *mapping.Tables
	keys   *citekey.Generator
	fs     storage.FileSystem
	bib    *export.BibTeXWriter
	ris    *export.RISWriter
}

// New returns a converter. A nil fs uses the local disk.
func New(tables *mapping.Tables, keys *citekey.Generator, fs storage.FileSystem) *Converter {
	if fs == nil {
		fs = storage.OS{}
	}
	return &Converter{
		tables: tables,
		keys:   keys,
		fs:     fs,
		bib:    export.NewBibTeXWriter(),
		ris:    export.NewRISWriter(tables),
	}
}

// Default returns a converter with the built-in tables and stopwords.
func Default() *Converter {
	return New(mapping.Default(), citekey.New(), storage.OS{})
}

// Convert runs req. Warnings reach sink as they occur. A file that cannot
// be read or written aborts the call with a *storage.FileAccessError and
// nothing is written.
func (c *Converter) Convert(req Request, sink warning.Sink) (*Result, error) {
	sink = warning.OrDiscard(sink)

	var r renderer
	switch req.To {
	case importer.BibTeX:
		br := &bibRenderer{c: c, keys: citekey.NewKeySet()}
		if req.Existing != "" {
			text, err := c.fs.ReadText(req.Existing)
			if err != nil {
				return nil, err
			}
			br.index = export.IndexBibTeX(text)
			br.keys = citekey.NewKeySet(br.index.KeyList()...)
		}
		r = br
	case importer.RIS:
		r = &risRenderer{c: c}
	default:
		return nil, fmt.Errorf("unsupported target format: %s", req.To)
	}

	res := &Result{}
	var entries []string
	err := c.each(req.Inputs, req.From, sink, func(path string, recs []*reference.Record) {
		for i, rec := range recs {
			entry, ok := r.render(rec, path, i+1, sink)
			if !ok {
				res.Skipped++
				continue
			}
			entries = append(entries, entry)
			res.Records++
		}
	})
	if err != nil {
		return nil, err
	}
	res.Text = export.JoinEntries(entries)

	if req.Output != "" && res.Records > 0 {
		if err := c.write(req.Output, res.Text, req.Append); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Records parses inputs without rendering them.
func (c *Converter) Records(inputs []string, from importer.Format, sink warning.Sink) ([]*reference.Record, error) {
	var all []*reference.Record
	err := c.each(inputs, from, warning.OrDiscard(sink), func(_ string, recs []*reference.Record) {
		all = append(all, recs...)
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// RISToBibTeX converts RIS inputs to BibTeX.
func (c *Converter) RISToBibTeX(inputs []string, output string, sink warning.Sink) (string, error) {
	return c.text(Request{Inputs: inputs, Output: output, From: importer.RIS, To: importer.BibTeX}, sink)
}

// BibTeXToRIS converts BibTeX inputs to RIS.
func (c *Converter) BibTeXToRIS(inputs []string, output string, sink warning.Sink) (string, error) {
	return c.text(Request{Inputs: inputs, Output: output, From: importer.BibTeX, To: importer.RIS}, sink)
}

// Rekey rewrites BibTeX inputs with freshly generated citation keys.
func (c *Converter) Rekey(inputs []string, output string, sink warning.Sink) (string, error) {
	return c.text(Request{Inputs: inputs, Output: output, From: importer.BibTeX, To: importer.BibTeX}, sink)
}

func (c *Converter) text(req Request, sink warning.Sink) (string, error) {
	res, err := c.Convert(req, sink)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// each reads and parses inputs in order, handing each file's records to fn
// before the next file is read.
func (c *Converter) each(inputs []string, from importer.Format, sink warning.Sink, fn func(path string, recs []*reference.Record)) error {
	for _, path := range inputs {
		text, err := c.fs.ReadText(path)
		if err != nil {
			return err
		}

		format := from
		if format == importer.Unknown {
			format = importer.Detect(path, text)
		}
		reader, err := importer.NewReader(format, c.tables)
		if err != nil {
			sink.Observe(warning.Warning{
				Kind:    warning.UnknownFormat,
				Source:  path,
				Message: "cannot tell whether this is RIS or BibTeX; skipping",
			})
			continue
		}

		recs := reader.Read(path, text, sink)
		if len(recs) == 0 {
			sink.Observe(warning.Warning{
				Kind:    warning.NoRecords,
				Source:  path,
				Message: fmt.Sprintf("no records found in %s", path),
			})
			continue
		}
		fn(path, recs)
	}
	return nil
}

func (c *Converter) write(path, text string, appending bool) error {
	if appending {
		if text == "" {
			return nil
		}
		return c.fs.AppendText(path, text)
	}
	return c.fs.WriteText(path, text)
}
