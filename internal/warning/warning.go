// Package warning carries the non-fatal diagnostics produced while
// converting records.
package warning

import "fmt"

// Kind classifies a warning.
type Kind string

const (
	// UnknownType: the source entry type has no mapping; the fallback was used.
	UnknownType Kind = "unknown_type"
	// MissingField: a field needed for the citation key was absent or unusable.
	MissingField Kind = "missing_field"
	// MalformedEntry: a BibTeX entry could not be parsed and was skipped.
	MalformedEntry Kind = "malformed_entry"
	// NoRecords: an input produced no records.
	NoRecords Kind = "no_records"
	// UnknownFormat: an input's format could not be detected and it was skipped.
	UnknownFormat Kind = "unknown_format"
	// Duplicate: a record already present in the target bibliography was skipped.
	Duplicate Kind = "duplicate"
)

// Warning describes a record or input that was only partially converted.
type Warning struct {
	Kind    Kind   `json:"kind"`
	Source  string `json:"source,omitempty"`
	Record  int    `json:"record,omitempty"` // 1-based position within Source, 0 if not record-specific
	Message string `json:"message"`
}

func (w Warning) String() string {
	switch {
	case w.Source != "" && w.Record > 0:
		return fmt.Sprintf("%s: record %d: %s", w.Source, w.Record, w.Message)
	case w.Source != "":
		return fmt.Sprintf("%s: %s", w.Source, w.Message)
	case w.Record > 0:
		return fmt.Sprintf("record %d: %s", w.Record, w.Message)
	}
	return w.Message
}

// Sink observes warnings in the order they are encountered.
type Sink interface {
	Observe(Warning)
}

// Func adapts a plain function to a Sink.
type Func func(Warning)

// Observe calls f(w).
func (f Func) Observe(w Warning) { f(w) }

// Discard drops every warning.
var Discard Sink = Func(func(Warning) {})

// Collector records warnings for later inspection. It is not safe for
// concurrent use.
type Collector struct {
	Warnings []Warning
}

// Observe appends w.
func (c *Collector) Observe(w Warning) {
	c.Warnings = append(c.Warnings, w)
}

// Kinds returns the kind of every collected warning, in order.
func (c *Collector) Kinds() []Kind {
	kinds := make([]Kind, len(c.Warnings))
	for i, w := range c.Warnings {
		kinds[i] = w.Kind
	}
	return kinds
}

// Strings returns the rendered form of every collected warning.
func (c *Collector) Strings() []string {
	out := make([]string, len(c.Warnings))
	for i, w := range c.Warnings {
		out[i] = w.String()
	}
	return out
}

// Tee forwards each warning to every sink in order.
func Tee(sinks ...Sink) Sink {
	return Func(func(w Warning) {
		for _, s := range sinks {
			s.Observe(w)
		}
	})
}

// OrDiscard returns s, or Discard if s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}
