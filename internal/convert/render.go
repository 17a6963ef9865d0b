package convert

import (
	"fmt"

	"github.com/matsen/ris2bib/internal/citekey"
	"github.com/matsen/ris2bib/internal/export"
	"github.com/matsen/ris2bib/internal/reference"
	"github.com/matsen/ris2bib/internal/warning"
)

// renderer turns one record into target text. ok is false when the record
// is deliberately left out.
type renderer interface {
	render(rec *reference.Record, source string, position int, sink warning.Sink) (entry string, ok bool)
}

// bibRenderer keys and renders BibTeX entries. keys spans the whole call.
type bibRenderer struct {
	c     *Converter
	keys  *citekey.KeySet
	index *export.BibTeXIndex
}

func (r *bibRenderer) render(rec *reference.Record, source string, position int, sink warning.Sink) (string, bool) {
	if r.index != nil {
		if existing, ok := r.index.HasDOI(rec.First(reference.FieldDOI)); ok {
			sink.Observe(warning.Warning{
				Kind:    warning.Duplicate,
				Source:  source,
				Record:  position,
				Message: fmt.Sprintf("DOI %s already present as %s; skipping", rec.First(reference.FieldDOI), existing),
			})
			return "", false
		}
	}

	key, gaps := r.c.keys.Generate(rec, r.keys)
	for _, g := range gaps {
		sink.Observe(warning.Warning{
			Kind:    warning.MissingField,
			Source:  source,
			Record:  position,
			Message: fmt.Sprintf("key %s: %s", key, g),
		})
	}
	return r.c.bib.Render(rec, key), true
}

type risRenderer struct {
	c *Converter
}

func (r *risRenderer) render(rec *reference.Record, _ string, _ int, _ warning.Sink) (string, bool) {
	return r.c.ris.Render(rec), true
}
