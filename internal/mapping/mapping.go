// Package mapping holds the associations between RIS type codes and tags and
// their BibTeX entry types and field names.
//
// Tables are built once and never modified; readers and writers receive them
// explicitly so alternate tables can be swapped in.
package mapping

import (
	"sort"
	"strings"

	"github.com/matsen/ris2bib/internal/reference"
)

// Fallback types used when a source type has no mapping.
const (
	FallbackBibType = "misc"
	FallbackRISType = "GEN"
)

// RIS tags with structural meaning, handled by the readers and writers
// directly rather than through the field table.
const (
	TagType      = "TY"
	TagEnd       = "ER"
	TagID        = "ID"
	TagStartPage = "SP"
	TagEndPage   = "EP"
	TagSecondary = "T2"
)

type pair struct{ from, to string }

// Listed in preference order: the first RIS code listed for a BibTeX type is
// the one written back out.
var risTypes = []pair{
	{"JOUR", "article"},
	{"EJOUR", "article"},
	{"MGZN", "article"},
	{"NEWS", "article"},
	{"BOOK", "book"},
	{"EBOOK", "book"},
	{"EDBOOK", "book"},
	{"CHAP", "inbook"},
	{"ECHAP", "inbook"},
	{"CONF", "inproceedings"},
	{"CPAPER", "inproceedings"},
	{"THES", "phdthesis"},
	{"RPRT", "techreport"},
	{"UNPB", "unpublished"},
	{"ELEC", "online"},
	{"GEN", "misc"},
}

// BibTeX types without a RIS code of their own, or with a different
// preferred code than the reverse of risTypes gives.
var bibTypes = []pair{
	{"incollection", "CHAP"},
	{"conference", "CONF"},
	{"mastersthesis", "THES"},
	{"thesis", "THES"},
	{"report", "RPRT"},
	{"booklet", "BOOK"},
	{"manual", "BOOK"},
	{"proceedings", "CONF"},
	{"electronic", "ELEC"},
	{"www", "ELEC"},
}

// The first tag listed for a field is the one written back out.
var risTags = []pair{
	{"AU", reference.FieldAuthor},
	{"A1", reference.FieldAuthor},
	{"A2", reference.FieldEditor},
	{"ED", reference.FieldEditor},
	{"TI", reference.FieldTitle},
	{"T1", reference.FieldTitle},
	{"JO", reference.FieldJournal},
	{"JF", reference.FieldJournal},
	{"JA", reference.FieldJournal},
	{"BT", reference.FieldBooktitle},
	{"PY", reference.FieldYear},
	{"Y1", reference.FieldYear},
	{"DA", reference.FieldDate},
	{"Y2", reference.FieldDate},
	{"VL", reference.FieldVolume},
	{"IS", reference.FieldNumber},
	{"DO", reference.FieldDOI},
	{"UR", reference.FieldURL},
	{"N1", reference.FieldNote},
	{"AB", reference.FieldAbstract},
	{"N2", reference.FieldAbstract},
	{"KW", reference.FieldKeywords},
	{"PB", reference.FieldPublisher},
	{"CY", reference.FieldAddress},
	{"SN", reference.FieldISSN},
	{"ET", reference.FieldEdition},
	{"LA", reference.FieldLanguage},
}

// Entry types whose container title is a booktitle rather than a journal.
var booktitleTypes = []string{"inproceedings", "incollection", "inbook", "proceedings", "conference"}

// multiline tags keep their line breaks on continuation.
var multiline = []string{"AB", "N2"}

// Tables is an immutable set of RIS/BibTeX associations.
type Tables struct {
	risToBib   map[string]string
	bibToRIS   map[string]string
	tagToField map[string]string
	fieldToTag map[string]string
	booktitle  map[string]bool
	multiline  map[string]bool
}

// Overrides replace or extend entries of the default tables. Keys and values
// are case-normalized: RIS codes and tags upper, BibTeX names lower.
type Overrides struct {
	RISTypes    map[string]string // RIS type -> BibTeX type
	BibTeXTypes map[string]string // BibTeX type -> RIS type
	RISTags     map[string]string // RIS tag -> field
}

// Default returns the built-in tables.
func Default() *Tables {
	return New(Overrides{})
}

// New builds tables from the defaults with o applied on top.
func New(o Overrides) *Tables {
	t := &Tables{
		risToBib:   make(map[string]string),
		bibToRIS:   make(map[string]string),
		tagToField: make(map[string]string),
		fieldToTag: make(map[string]string),
		booktitle:  make(map[string]bool),
		multiline:  make(map[string]bool),
	}

	for _, p := range risTypes {
		t.addRISType(p.from, p.to)
	}
	for _, p := range bibTypes {
		t.bibToRIS[p.from] = p.to
	}
	for _, p := range risTags {
		t.addTag(p.from, p.to)
	}
	for _, name := range booktitleTypes {
		t.booktitle[name] = true
	}
	for _, tag := range multiline {
		t.multiline[tag] = true
	}

	for _, from := range sortedKeys(o.RISTypes) {
		risType, bibType := upper(from), lower(o.RISTypes[from])
		t.risToBib[risType] = bibType
		if _, ok := t.bibToRIS[bibType]; !ok {
			t.bibToRIS[bibType] = risType
		}
	}
	for _, from := range sortedKeys(o.BibTeXTypes) {
		t.bibToRIS[lower(from)] = upper(o.BibTeXTypes[from])
	}
	for _, from := range sortedKeys(o.RISTags) {
		tag, field := upper(from), lower(o.RISTags[from])
		t.tagToField[tag] = field
		if _, ok := t.fieldToTag[field]; !ok {
			t.fieldToTag[field] = tag
		}
	}

	return t
}

func (t *Tables) addRISType(risType, bibType string) {
	t.risToBib[risType] = bibType
	if _, ok := t.bibToRIS[bibType]; !ok {
		t.bibToRIS[bibType] = risType
	}
}

func (t *Tables) addTag(tag, field string) {
	t.tagToField[tag] = field
	if _, ok := t.fieldToTag[field]; !ok {
		t.fieldToTag[field] = tag
	}
}

// BibType maps a RIS type code to a BibTeX entry type.
func (t *Tables) BibType(risType string) (string, bool) {
	bibType, ok := t.risToBib[upper(risType)]
	return bibType, ok
}

// RISType maps a BibTeX entry type to a RIS type code.
func (t *Tables) RISType(bibType string) (string, bool) {
	risType, ok := t.bibToRIS[lower(bibType)]
	return risType, ok
}

// Field maps a RIS tag to a field name. T2 resolves to the container title
// appropriate for entryType.
func (t *Tables) Field(tag, entryType string) (string, bool) {
	tag = upper(tag)
	if tag == TagSecondary {
		if _, overridden := t.tagToField[tag]; !overridden {
			return t.ContainerField(entryType), true
		}
	}
	field, ok := t.tagToField[tag]
	return field, ok
}

// Tag maps a field name to the RIS tag written for it. A booktitle is
// written as T2 for types that carry one.
func (t *Tables) Tag(field, entryType string) (string, bool) {
	field = lower(field)
	if field == reference.FieldBooktitle && t.UsesBooktitle(entryType) {
		return TagSecondary, true
	}
	tag, ok := t.fieldToTag[field]
	return tag, ok
}

// UsesBooktitle reports whether entryType names its container as booktitle.
func (t *Tables) UsesBooktitle(entryType string) bool {
	return t.booktitle[lower(entryType)]
}

// ContainerField returns the field holding the container title for entryType.
func (t *Tables) ContainerField(entryType string) string {
	if t.UsesBooktitle(entryType) {
		return reference.FieldBooktitle
	}
	return reference.FieldJournal
}

// Multiline reports whether continuation lines of tag keep their line breaks.
func (t *Tables) Multiline(tag string) bool {
	return t.multiline[upper(tag)]
}

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// sortedKeys gives overrides a deterministic application order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
