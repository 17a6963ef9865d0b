// Package reference defines the format-neutral bibliographic record shared by
// the RIS and BibTeX readers and writers.
package reference

// Field names use the BibTeX vocabulary; readers translate source tags into
// these names and writers translate them back out.
const (
	FieldAuthor    = "author"
	FieldEditor    = "editor"
	FieldTitle     = "title"
	FieldJournal   = "journal"
	FieldBooktitle = "booktitle"
	FieldYear      = "year"
	FieldDate      = "date"
	FieldVolume    = "volume"
	FieldNumber    = "number"
	FieldPages     = "pages"
	FieldDOI       = "doi"
	FieldURL       = "url"
	FieldNote      = "note"
	FieldAbstract  = "abstract"
	FieldKeywords  = "keywords"
	FieldPublisher = "publisher"
	FieldAddress   = "address"
	FieldISSN      = "issn"
	FieldEdition   = "edition"
	FieldLanguage  = "language"
)

// Record is one bibliographic entry: an entry type plus an ordered mapping
// from field name to one or more values.
type Record struct {
	// Type is the BibTeX-vocabulary entry type (article, book, misc, ...).
	Type string `json:"type"`

	// Key is the identifier carried by the source entry (BibTeX citation
	// key or RIS ID), empty if the source had none.
	Key string `json:"key,omitempty"`

	// Source is the input path the record was read from.
	Source string `json:"source,omitempty"`

	Fields []Field `json:"fields"`
}

// Field is a named, possibly repeated, record value.
type Field struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// New returns an empty record of the given type.
func New(entryType string) *Record {
	return &Record{Type: entryType}
}

func (r *Record) index(name string) int {
	for i, f := range r.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the record has a value for name.
func (r *Record) Has(name string) bool {
	return r.index(name) >= 0
}

// Get returns all values for name, or nil.
func (r *Record) Get(name string) []string {
	if i := r.index(name); i >= 0 {
		return r.Fields[i].Values
	}
	return nil
}

// First returns the first value for name, or "".
func (r *Record) First(name string) string {
	if vals := r.Get(name); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Add appends value to the field, creating the field at the end of the
// field order if it is not yet present.
func (r *Record) Add(name, value string) {
	if i := r.index(name); i >= 0 {
		r.Fields[i].Values = append(r.Fields[i].Values, value)
		return
	}
	r.Fields = append(r.Fields, Field{Name: name, Values: []string{value}})
}

// Set replaces all values of the field, keeping its position if present.
func (r *Record) Set(name string, values ...string) {
	if i := r.index(name); i >= 0 {
		r.Fields[i].Values = values
		return
	}
	r.Fields = append(r.Fields, Field{Name: name, Values: values})
}

// Extend joins text onto the last value of the field using sep.
// It reports false if the field has no value to extend.
func (r *Record) Extend(name, sep, text string) bool {
	i := r.index(name)
	if i < 0 || len(r.Fields[i].Values) == 0 {
		return false
	}
	vals := r.Fields[i].Values
	last := len(vals) - 1
	if vals[last] == "" {
		vals[last] = text
	} else {
		vals[last] += sep + text
	}
	return true
}

// Delete removes the field.
func (r *Record) Delete(name string) {
	if i := r.index(name); i >= 0 {
		r.Fields = append(r.Fields[:i], r.Fields[i+1:]...)
	}
}

// Names returns field names in first-seen order.
func (r *Record) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}
