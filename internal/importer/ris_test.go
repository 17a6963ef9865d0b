package importer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/ris2bib/internal/mapping"
	"github.com/matsen/ris2bib/internal/reference"
	"github.com/matsen/ris2bib/internal/warning"
)

func readRIS(t *testing.T, text string) ([]*reference.Record, *warning.Collector) {
	t.Helper()
	var c warning.Collector
	recs := NewRISReader(mapping.Default()).Read("test.ris", text, &c)
	return recs, &c
}

func TestRISReader_BasicRecord(t *testing.T) {
	recs, warns := readRIS(t, "TY  - JOUR\nAU  - Doe, Jane\nPY  - 2021\nTI  - The Quiet Revolution\nER  - \n")

	if len(recs) != 1 {
		t.Fatalf("Read() returned %d records, want 1", len(recs))
	}
	if len(warns.Warnings) != 0 {
		t.Errorf("Read() warnings = %v, want none", warns.Strings())
	}

	rec := recs[0]
	if rec.Type != "article" {
		t.Errorf("Type = %q, want article", rec.Type)
	}
	if rec.Source != "test.ris" {
		t.Errorf("Source = %q, want test.ris", rec.Source)
	}
	if got, want := rec.Names(), []string{"author", "year", "title"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := rec.First(reference.FieldTitle); got != "The Quiet Revolution" {
		t.Errorf("title = %q, want The Quiet Revolution", got)
	}
}

func TestRISReader_MultilineAbstractKeepsBreaks(t *testing.T) {
	recs, _ := readRIS(t, "TY  - JOUR\nAB  - First line\nsecond line\n   third line\nER  - \n")

	if got, want := recs[0].First(reference.FieldAbstract), "First line\nsecond line\nthird line"; got != want {
		t.Errorf("abstract = %q, want %q", got, want)
	}
}

func TestRISReader_RepeatedAbstractTagContinues(t *testing.T) {
	recs, _ := readRIS(t, "TY  - JOUR\nN2  - Part one\nN2  - Part two\nER  - \n")

	if got := recs[0].Get(reference.FieldAbstract); !reflect.DeepEqual(got, []string{"Part one\nPart two"}) {
		t.Errorf("abstract = %q, want one value joined by newline", got)
	}
}

func TestRISReader_OtherContinuationsJoinWithSpace(t *testing.T) {
	recs, _ := readRIS(t, "TY  - JOUR\nTI  - A rather long\n  title that wraps\nAU  - Doe,\n Jane\nER  - \n")

	if got, want := recs[0].First(reference.FieldTitle), "A rather long title that wraps"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
	if got, want := recs[0].First(reference.FieldAuthor), "Doe, Jane"; got != want {
		t.Errorf("author = %q, want %q", got, want)
	}
}

func TestRISReader_RepeatedTagsAppendValues(t *testing.T) {
	text := "TY  - JOUR\nAU  - Doe, Jane\nAU  - Roe, John\nAU  - Poe, Edgar\nKW  - alpha\nKW  - beta\nA1  - Moe, Max\nER  - \n"
	recs, _ := readRIS(t, text)

	wantAuthors := []string{"Doe, Jane", "Roe, John", "Poe, Edgar", "Moe, Max"}
	if got := recs[0].Get(reference.FieldAuthor); !reflect.DeepEqual(got, wantAuthors) {
		t.Errorf("author = %v, want %v", got, wantAuthors)
	}
	if got := recs[0].Get(reference.FieldKeywords); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("keywords = %v, want [alpha beta]", got)
	}
}

func TestRISReader_UnknownTypeFallsBack(t *testing.T) {
	recs, warns := readRIS(t, "TY  - XXXX\nAU  - Doe, Jane\nER  - \n")

	if recs[0].Type != mapping.FallbackBibType {
		t.Errorf("Type = %q, want %q", recs[0].Type, mapping.FallbackBibType)
	}
	if got := warns.Kinds(); !reflect.DeepEqual(got, []warning.Kind{warning.UnknownType}) {
		t.Fatalf("warning kinds = %v, want [unknown_type]", got)
	}
	if w := warns.Warnings[0]; w.Source != "test.ris" || w.Record != 1 {
		t.Errorf("warning = %+v, want source test.ris record 1", w)
	}
	if got := recs[0].First(reference.FieldAuthor); got != "Doe, Jane" {
		t.Errorf("author = %q, want fields still mapped", got)
	}
}

func TestRISReader_PreambleIgnored(t *testing.T) {
	text := "Provider: Example Export\nContent: text/plain\n\nAU  - Ghost, Author\nTY  - BOOK\nAU  - Real, Author\nER  - \n"
	recs, warns := readRIS(t, text)

	if len(recs) != 1 {
		t.Fatalf("Read() returned %d records, want 1", len(recs))
	}
	if got := recs[0].Get(reference.FieldAuthor); !reflect.DeepEqual(got, []string{"Real, Author"}) {
		t.Errorf("author = %v, want [Real, Author]", got)
	}
	if len(warns.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", warns.Strings())
	}
}

func TestRISReader_RecordWithoutType(t *testing.T) {
	text := "TY  - JOUR\nTI  - First\nER  - \n\nTI  - Second\nER  - \n"
	recs, warns := readRIS(t, text)

	if len(recs) != 2 {
		t.Fatalf("Read() returned %d records, want 2", len(recs))
	}
	if recs[1].Type != mapping.FallbackBibType {
		t.Errorf("second Type = %q, want %q", recs[1].Type, mapping.FallbackBibType)
	}
	if got := warns.Kinds(); !reflect.DeepEqual(got, []warning.Kind{warning.UnknownType}) {
		t.Errorf("warning kinds = %v, want [unknown_type]", got)
	}
	if warns.Warnings[0].Record != 2 {
		t.Errorf("warning record = %d, want 2", warns.Warnings[0].Record)
	}
}

func TestRISReader_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "\n\n", "not ris at all\n"} {
		recs, warns := readRIS(t, text)
		if len(recs) != 0 || len(warns.Warnings) != 0 {
			t.Errorf("Read(%q) = %d records, %d warnings, want none", text, len(recs), len(warns.Warnings))
		}
	}
}

func TestRISReader_MissingTerminator(t *testing.T) {
	recs, _ := readRIS(t, "TY  - JOUR\nTI  - One\nTY  - BOOK\nTI  - Two")

	if len(recs) != 2 {
		t.Fatalf("Read() returned %d records, want 2", len(recs))
	}
	if recs[0].Type != "article" || recs[1].Type != "book" {
		t.Errorf("types = %q, %q, want article, book", recs[0].Type, recs[1].Type)
	}
}

func TestRISReader_StructuralTags(t *testing.T) {
	text := "TY  - CONF\nID  - doe2020\nT2  - Proc. of Things\nSP  - 10\nEP  - 20\nPY  - 2020///\nDO  - 10.1/x\nER  -\n"
	recs, _ := readRIS(t, text)
	rec := recs[0]

	if rec.Type != "inproceedings" {
		t.Errorf("Type = %q, want inproceedings", rec.Type)
	}
	if rec.Key != "doe2020" {
		t.Errorf("Key = %q, want doe2020", rec.Key)
	}
	if got := rec.First(reference.FieldBooktitle); got != "Proc. of Things" {
		t.Errorf("booktitle = %q, want Proc. of Things", got)
	}
	if got := rec.First(reference.FieldPages); got != "10--20" {
		t.Errorf("pages = %q, want 10--20", got)
	}
	if got := rec.First(reference.FieldYear); got != "2020" {
		t.Errorf("year = %q, want 2020", got)
	}
	if rec.Has("ID") || rec.Has("SP") {
		t.Errorf("structural tags leaked into fields: %v", rec.Names())
	}
}

func TestRISReader_SecondaryTitleForArticle(t *testing.T) {
	recs, _ := readRIS(t, "TY  - JOUR\nT2  - Journal of Examples\nSP  - 5\nER  - \n")

	if got := recs[0].First(reference.FieldJournal); got != "Journal of Examples" {
		t.Errorf("journal = %q, want Journal of Examples", got)
	}
	if got := recs[0].First(reference.FieldPages); got != "5" {
		t.Errorf("pages = %q, want 5", got)
	}
}

func TestRISReader_WindowsLineEndingsAndBOM(t *testing.T) {
	recs, _ := readRIS(t, "\ufeffTY  - JOUR\r\nTI  - Windows\r\nAB  - one\r\ntwo\r\nER  - \r\n")

	if len(recs) != 1 {
		t.Fatalf("Read() returned %d records, want 1", len(recs))
	}
	if got := recs[0].First(reference.FieldTitle); got != "Windows" {
		t.Errorf("title = %q, want Windows", got)
	}
	if got := recs[0].First(reference.FieldAbstract); got != "one\ntwo" {
		t.Errorf("abstract = %q, want %q", got, "one\ntwo")
	}
}

func TestRISReader_UnmappedTagDropped(t *testing.T) {
	recs, _ := readRIS(t, "TY  - JOUR\nTI  - Kept\nC7  - dropped\n continued\nER  - \n")

	if got, want := recs[0].Names(), []string{"title"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := recs[0].First(reference.FieldTitle); got != "Kept" {
		t.Errorf("title = %q, want Kept", got)
	}
}

func TestRISReader_AlternateTables(t *testing.T) {
	tables := mapping.New(mapping.Overrides{RISTypes: map[string]string{"DATA": "dataset"}})
	var c warning.Collector
	recs := NewRISReader(tables).Read("x.ris", "TY  - DATA\nTI  - Numbers\nER  - \n", &c)

	if recs[0].Type != "dataset" {
		t.Errorf("Type = %q, want dataset", recs[0].Type)
	}
	if len(c.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", c.Strings())
	}
}

func TestRISReader_VeryLongLine(t *testing.T) {
	abstract := strings.Repeat("x", 2*1024*1024)
	text := "TY  - JOUR\nTI  - First\nER  - \n" +
		"TY  - JOUR\nTI  - Second\nAB  - " + abstract + "\nER  - \n" +
		"TY  - BOOK\nTI  - Third\nER  - \n"

	recs, warns := readRIS(t, text)

	if len(recs) != 3 {
		t.Fatalf("Read() returned %d records, want 3", len(recs))
	}
	if got := len(recs[1].First(reference.FieldAbstract)); got != len(abstract) {
		t.Errorf("abstract length = %d, want %d", got, len(abstract))
	}
	if recs[2].Type != "book" || recs[2].First(reference.FieldTitle) != "Third" {
		t.Errorf("third record = %+v", recs[2])
	}
	if len(warns.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", warns.Strings())
	}
}
