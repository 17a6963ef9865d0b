package export

import (
	"strings"
	"testing"

	"github.com/matsen/ris2bib/internal/reference"
)

func record(entryType string, fields ...string) *reference.Record {
	r := reference.New(entryType)
	for i := 0; i+1 < len(fields); i += 2 {
		r.Add(fields[i], fields[i+1])
	}
	return r
}

func TestBibTeXWriter_Render(t *testing.T) {
	rec := record("article",
		"year", "2021",
		"title", "The Quiet Revolution",
		"author", "Doe, Jane",
	)

	got := NewBibTeXWriter().Render(rec, "doe2021quiet")
	want := "@article{doe2021quiet,\n" +
		"  author = {Doe, Jane},\n" +
		"  title = {The Quiet Revolution},\n" +
		"  year = {2021},\n" +
		"}\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestBibTeXWriter_FieldOrder(t *testing.T) {
	rec := record("article",
		"publisher", "Pub",
		"note", "A note",
		"url", "https://example.org",
		"doi", "10.1/x",
		"pages", "1--2",
		"number", "3",
		"volume", "4",
		"year", "2000",
		"journal", "J",
		"title", "T",
		"author", "A, B",
		"issn", "1234-5678",
	)

	got := NewBibTeXWriter().Render(rec, "k")
	order := []string{"author", "title", "journal", "year", "volume", "number", "pages", "doi", "url", "note", "publisher", "issn"}
	last := -1
	for _, name := range order {
		i := strings.Index(got, "  "+name+" = ")
		if i < 0 {
			t.Fatalf("Render() missing %s:\n%s", name, got)
		}
		if i < last {
			t.Errorf("Render() field %s out of order:\n%s", name, got)
		}
		last = i
	}
}

func TestBibTeXWriter_MultiValuedFields(t *testing.T) {
	rec := record("article",
		"author", "Doe, Jane",
		"author", "Roe, John",
		"author", "Poe, Edgar",
		"keywords", "alpha",
		"keywords", "beta",
		"abstract", "Line one\nline two",
		"title", "First title",
		"title", "Second title",
	)

	got := NewBibTeXWriter().Render(rec, "k")

	for _, want := range []string{
		"author = {Doe, Jane and Roe, John and Poe, Edgar}",
		"keywords = {alpha, beta}",
		"abstract = {Line one\nline two}",
		"title = {First title}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() should contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Second title") {
		t.Errorf("Render() should keep only the first title, got:\n%s", got)
	}
}

func TestBibTeXWriter_BracesPassThrough(t *testing.T) {
	rec := record("misc", "title", "The {DNA} of {Things}")

	got := NewBibTeXWriter().Render(rec, "k")
	if !strings.Contains(got, "title = {The {DNA} of {Things}}") {
		t.Errorf("Render() should pass braces through, got:\n%s", got)
	}
}

func TestBibTeXWriter_EmptyValuesAndType(t *testing.T) {
	rec := record("", "title", "Kept", "note", "  ")

	got := NewBibTeXWriter().Render(rec, "k")
	if !strings.HasPrefix(got, "@misc{k,\n") {
		t.Errorf("Render() with no type should use misc, got:\n%s", got)
	}
	if strings.Contains(got, "note = ") {
		t.Errorf("Render() should skip empty values, got:\n%s", got)
	}
}

func TestJoinEntries(t *testing.T) {
	w := NewBibTeXWriter()
	got := JoinEntries([]string{
		w.Render(record("article", "title", "A"), "a"),
		w.Render(record("book", "title", "B"), "b"),
	})

	if !strings.Contains(got, "}\n\n@book{b,") {
		t.Errorf("JoinEntries() should separate entries by a blank line, got:\n%s", got)
	}
	if JoinEntries(nil) != "" {
		t.Errorf("JoinEntries(nil) = %q, want empty", JoinEntries(nil))
	}
}

func TestIndexBibTeX(t *testing.T) {
	text := `@string{jx = "Journal"}
@article{Smith2026-ab,
  doi = {https://doi.org/10.1234/ABC},
  title = {One}
}
@book{ Other2020 ,
  title = {Two}
}
`
	idx := IndexBibTeX(text)

	if !idx.Keys["Smith2026-ab"] || !idx.Keys["Other2020"] {
		t.Errorf("Keys = %v, want Smith2026-ab and Other2020", idx.Keys)
	}
	if idx.Keys["jx"] {
		t.Error("Keys should not include @string names")
	}
	if key, ok := idx.HasDOI("10.1234/abc"); !ok || key != "Smith2026-ab" {
		t.Errorf("HasDOI() = (%q, %v), want (Smith2026-ab, true)", key, ok)
	}
	if _, ok := idx.HasDOI(""); ok {
		t.Error("HasDOI(\"\") = true, want false")
	}
	if got := len(idx.KeyList()); got != 2 {
		t.Errorf("len(KeyList()) = %d, want 2", got)
	}
}

func TestIndexBibTeX_VeryLongLine(t *testing.T) {
	text := "@article{first,\n  abstract = {" + strings.Repeat("y", 2*1024*1024) + "},\n}\n" +
		"@article{second,\n  doi = {10.5/later},\n}\n"

	idx := IndexBibTeX(text)

	if !idx.Keys["first"] || !idx.Keys["second"] {
		t.Errorf("Keys = %v, want first and second", idx.KeyList())
	}
	if key, ok := idx.HasDOI("10.5/later"); !ok || key != "second" {
		t.Errorf("HasDOI() = (%q, %v), want (second, true)", key, ok)
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1234/ABC", "10.1234/abc"},
		{"https://doi.org/10.1234/abc", "10.1234/abc"},
		{"http://doi.org/10.1234/abc", "10.1234/abc"},
		{"doi:10.1234/abc", "10.1234/abc"},
		{" DOI:10.1234/abc ", "10.1234/abc"},
	}

	for _, tt := range tests {
		if got := NormalizeDOI(tt.input); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
