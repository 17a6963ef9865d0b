package config

import "github.com/matsen/ris2bib/internal/reference"

func recordWith(author, year, title string) *reference.Record {
	rec := reference.New("article")
	rec.Add(reference.FieldAuthor, author)
	rec.Add(reference.FieldYear, year)
	rec.Add(reference.FieldTitle, title)
	return rec
}
