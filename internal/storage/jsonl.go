package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matsen/ris2bib/internal/reference"
)

// WriteRecords writes one JSON object per record.
func WriteRecords(w io.Writer, recs []*reference.Record) error {
	for i, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return nil
}
