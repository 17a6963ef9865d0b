// Package citekey derives BibTeX citation keys of the form
// {surname}{year}{titleword} from format-neutral records.
package citekey

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matsen/ris2bib/internal/reference"
)

// Placeholders substituted for absent key components.
const (
	AnonAuthor   = "anon"
	NoDate       = "n.d."
	UntitledWord = "untitled"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// yearFields are scanned in order for a four-digit year.
var yearFields = []string{reference.FieldYear, reference.FieldDate}

// Gap records a key component that fell back to its placeholder.
type Gap struct {
	Field       string
	Placeholder string
	Reason      string
}

func (g Gap) String() string {
	return fmt.Sprintf("%s: %s; key uses %q", g.Field, g.Reason, g.Placeholder)
}

// Generator builds citation keys. It holds only immutable configuration and
// may be shared; uniqueness state lives in a KeySet.
type Generator struct {
	stopwords map[string]bool
}

// New returns a generator using the default stopwords plus extra.
func New(extra ...string) *Generator {
	g := &Generator{stopwords: make(map[string]bool, len(defaultStopwords)+len(extra))}
	for _, w := range defaultStopwords {
		g.stopwords[w] = true
	}
	for _, w := range extra {
		if w = fold(strings.TrimSpace(w)); w != "" {
			g.stopwords[w] = true
		}
	}
	return g
}

// Base returns the key for rec before any uniqueness suffix, along with the
// components that fell back to placeholders.
func (g *Generator) Base(rec *reference.Record) (string, []Gap) {
	var gaps []Gap

	surname, gap := surnameOf(rec)
	if gap != nil {
		gaps = append(gaps, *gap)
	}
	year, gap := yearOf(rec)
	if gap != nil {
		gaps = append(gaps, *gap)
	}
	word, gap := g.titleWord(rec.First(reference.FieldTitle))
	if gap != nil {
		gaps = append(gaps, *gap)
	}

	return Clean(surname + year + word), gaps
}

// Generate returns a key for rec that is unique within keys, and claims it.
func (g *Generator) Generate(rec *reference.Record, keys *KeySet) (string, []Gap) {
	base, gaps := g.Base(rec)
	return keys.Claim(base), gaps
}

func surnameOf(rec *reference.Record) (string, *Gap) {
	for _, field := range []string{reference.FieldAuthor, reference.FieldEditor} {
		names := rec.Get(field)
		if len(names) == 0 {
			continue
		}
		if s := Clean(reference.Surname(names[0])); s != "" {
			return s, nil
		}
		return AnonAuthor, &Gap{Field: reference.FieldAuthor, Placeholder: AnonAuthor, Reason: fmt.Sprintf("no usable surname in %q", names[0])}
	}
	return AnonAuthor, &Gap{Field: reference.FieldAuthor, Placeholder: AnonAuthor, Reason: "absent"}
}

func yearOf(rec *reference.Record) (string, *Gap) {
	var seen []string
	for _, field := range yearFields {
		for _, v := range rec.Get(field) {
			if y := reference.ExtractYear(v); y != "" {
				return y, nil
			}
			seen = append(seen, v)
		}
	}
	if len(seen) > 0 {
		return NoDate, &Gap{Field: reference.FieldYear, Placeholder: NoDate, Reason: fmt.Sprintf("no four-digit year in %q", seen[0])}
	}
	return NoDate, &Gap{Field: reference.FieldYear, Placeholder: NoDate, Reason: "absent"}
}

func (g *Generator) titleWord(title string) (string, *Gap) {
	if strings.TrimSpace(title) == "" {
		return UntitledWord, &Gap{Field: reference.FieldTitle, Placeholder: UntitledWord, Reason: "absent"}
	}
	for _, w := range nonAlnum.Split(fold(title), -1) {
		if w != "" && !g.stopwords[w] {
			return w, nil
		}
	}
	return UntitledWord, &Gap{Field: reference.FieldTitle, Placeholder: UntitledWord, Reason: fmt.Sprintf("no significant word in %q", title)}
}

// Clean lowercases s, strips diacritics and drops every character outside
// [a-z0-9].
func Clean(s string) string {
	return nonAlnum.ReplaceAllString(fold(s), "")
}
