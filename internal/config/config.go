// Package config handles the optional user configuration that extends the
// built-in type and tag mappings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/matsen/ris2bib/internal/citekey"
	"github.com/matsen/ris2bib/internal/mapping"
)

// Config represents configuration stored in ~/.config/ris2bib/config.yml.
type Config struct {
	RISTypes    map[string]string `yaml:"ris_types,omitempty" json:"ris_types,omitempty"`       // RIS type -> BibTeX type
	BibTeXTypes map[string]string `yaml:"bibtex_types,omitempty" json:"bibtex_types,omitempty"` // BibTeX type -> RIS type
	RISTags     map[string]string `yaml:"ris_tags,omitempty" json:"ris_tags,omitempty"`         // RIS tag -> field name
	Stopwords   []string          `yaml:"stopwords,omitempty" json:"stopwords,omitempty"`       // extra title stopwords
}

// ErrInvalidConfig is returned when a config file parses but holds values
// the converter cannot use.
var ErrInvalidConfig = errors.New("invalid config")

var (
	risCode  = regexp.MustCompile(`^[A-Z0-9]+$`)
	risTag   = regexp.MustCompile(`^[A-Z0-9]{2}$`)
	bibName  = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
	reserved = map[string]bool{
		mapping.TagType:      true,
		mapping.TagEnd:       true,
		mapping.TagID:        true,
		mapping.TagStartPage: true,
		mapping.TagEndPage:   true,
	}
)

// Validate checks every mapping entry. All problems are reported together.
func (c *Config) Validate() error {
	var problems []string

	for _, k := range sortedKeys(c.RISTypes) {
		if !risCode.MatchString(strings.ToUpper(strings.TrimSpace(k))) {
			problems = append(problems, fmt.Sprintf("ris_types: invalid RIS type %q", k))
		}
		if !bibName.MatchString(strings.ToLower(strings.TrimSpace(c.RISTypes[k]))) {
			problems = append(problems, fmt.Sprintf("ris_types.%s: invalid BibTeX type %q", k, c.RISTypes[k]))
		}
	}
	for _, k := range sortedKeys(c.BibTeXTypes) {
		if !bibName.MatchString(strings.ToLower(strings.TrimSpace(k))) {
			problems = append(problems, fmt.Sprintf("bibtex_types: invalid BibTeX type %q", k))
		}
		if !risCode.MatchString(strings.ToUpper(strings.TrimSpace(c.BibTeXTypes[k]))) {
			problems = append(problems, fmt.Sprintf("bibtex_types.%s: invalid RIS type %q", k, c.BibTeXTypes[k]))
		}
	}
	for _, k := range sortedKeys(c.RISTags) {
		tag := strings.ToUpper(strings.TrimSpace(k))
		switch {
		case !risTag.MatchString(tag):
			problems = append(problems, fmt.Sprintf("ris_tags: invalid RIS tag %q (want two letters or digits)", k))
		case reserved[tag]:
			problems = append(problems, fmt.Sprintf("ris_tags: %s is structural and cannot be remapped", tag))
		}
		if !bibName.MatchString(strings.ToLower(strings.TrimSpace(c.RISTags[k]))) {
			problems = append(problems, fmt.Sprintf("ris_tags.%s: invalid field name %q", k, c.RISTags[k]))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Overrides returns the mapping overrides the config declares.
func (c *Config) Overrides() mapping.Overrides {
	return mapping.Overrides{
		RISTypes:    c.RISTypes,
		BibTeXTypes: c.BibTeXTypes,
		RISTags:     c.RISTags,
	}
}

// Tables builds mapping tables with the config applied.
func (c *Config) Tables() *mapping.Tables {
	return mapping.New(c.Overrides())
}

// KeyGenerator builds a citation key generator with the config's stopwords.
func (c *Config) KeyGenerator() *citekey.Generator {
	return citekey.New(c.Stopwords...)
}

// IsEmpty reports whether the config changes nothing.
func (c *Config) IsEmpty() bool {
	return len(c.RISTypes) == 0 && len(c.BibTeXTypes) == 0 && len(c.RISTags) == 0 && len(c.Stopwords) == 0
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
