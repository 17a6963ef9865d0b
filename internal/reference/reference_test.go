package reference

import (
	"reflect"
	"testing"
)

func TestRecord_AddKeepsFirstSeenOrder(t *testing.T) {
	r := New("article")
	r.Add(FieldTitle, "A Title")
	r.Add(FieldAuthor, "Doe, Jane")
	r.Add(FieldAuthor, "Roe, John")

	if got, want := r.Names(), []string{"title", "author"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got, want := r.Get(FieldAuthor), []string{"Doe, Jane", "Roe, John"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Get(author) = %v, want %v", got, want)
	}
	if got := r.First(FieldAuthor); got != "Doe, Jane" {
		t.Errorf("First(author) = %q, want %q", got, "Doe, Jane")
	}
}

func TestRecord_Extend(t *testing.T) {
	r := New("article")
	if r.Extend(FieldAbstract, "\n", "orphan") {
		t.Error("Extend() on missing field = true, want false")
	}

	r.Add(FieldAbstract, "line one")
	r.Extend(FieldAbstract, "\n", "line two")
	if got, want := r.First(FieldAbstract), "line one\nline two"; got != want {
		t.Errorf("First(abstract) = %q, want %q", got, want)
	}

	r.Add(FieldTitle, "")
	r.Extend(FieldTitle, " ", "Filled")
	if got := r.First(FieldTitle); got != "Filled" {
		t.Errorf("Extend() onto empty value = %q, want %q", got, "Filled")
	}
}

func TestRecord_SetAndDelete(t *testing.T) {
	r := New("book")
	r.Add(FieldTitle, "T")
	r.Add(FieldYear, "2020///")
	r.Add(FieldPublisher, "P")

	r.Set(FieldYear, "2020")
	if got, want := r.Names(), []string{"title", "year", "publisher"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() after Set = %v, want %v", got, want)
	}
	if got := r.First(FieldYear); got != "2020" {
		t.Errorf("First(year) = %q, want 2020", got)
	}

	r.Delete(FieldYear)
	if r.Has(FieldYear) {
		t.Error("Has(year) after Delete = true, want false")
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestSurname(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Doe, Jane", "Doe"},
		{"  van der Berg, Anna ", "van der Berg"},
		{"Jane Doe", "Doe"},
		{"WHO", "WHO"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Surname(tt.input); got != tt.want {
				t.Errorf("Surname(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitAuthors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "Smith, Alice", []string{"Smith, Alice"}},
		{"two", "Smith, Alice and Johnson, Bob", []string{"Smith, Alice", "Johnson, Bob"}},
		{"line break inside list", "Smith, Alice and\n  Johnson, Bob", []string{"Smith, Alice", "Johnson, Bob"}},
		{"name containing and", "Anderson, Kim", []string{"Anderson, Kim"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitAuthors(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAuthors(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
