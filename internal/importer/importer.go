// Package importer parses RIS and BibTeX text into format-neutral records.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matsen/ris2bib/internal/mapping"
	"github.com/matsen/ris2bib/internal/reference"
	"github.com/matsen/ris2bib/internal/warning"
)

// Reader turns the text of one input into records, in input order.
type Reader interface {
	Read(source, text string, sink warning.Sink) []*reference.Record
}

// Format identifies a bibliography text format.
type Format int

const (
	Unknown Format = iota
	RIS
	BibTeX
)

func (f Format) String() string {
	switch f {
	case RIS:
		return "ris"
	case BibTeX:
		return "bibtex"
	}
	return "unknown"
}

// Extension returns the conventional file extension, with the dot.
func (f Format) Extension() string {
	switch f {
	case RIS:
		return ".ris"
	case BibTeX:
		return ".bib"
	}
	return ""
}

// ParseFormat accepts "ris", "bib" or "bibtex" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ris":
		return RIS, nil
	case "bib", "bibtex":
		return BibTeX, nil
	}
	return Unknown, fmt.Errorf("unknown format: %q (valid: ris, bib)", s)
}

// NewReader returns the reader for f.
func NewReader(f Format, tables *mapping.Tables) (Reader, error) {
	switch f {
	case RIS:
		return NewRISReader(tables), nil
	case BibTeX:
		return NewBibTeXReader(tables), nil
	}
	return nil, fmt.Errorf("no reader for format %s", f)
}

// sniffLen is how much of an input is inspected when the extension is not
// conclusive.
const sniffLen = 2000

// Detect guesses the format of an input from its extension, then from its
// leading content.
func Detect(path, content string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ris":
		return RIS
	case ".bib", ".bibtex":
		return BibTeX
	}

	snippet := content
	if len(snippet) > sniffLen {
		snippet = snippet[:sniffLen]
	}
	snippet = strings.ToLower(snippet)
	switch {
	case strings.Contains(snippet, "ty  -"):
		return RIS
	case strings.Contains(snippet, "@"):
		return BibTeX
	}
	return Unknown
}
