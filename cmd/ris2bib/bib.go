package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/ris2bib/internal/convert"
	"github.com/matsen/ris2bib/internal/importer"
)

func init() {
	addOutputFlags(bibCmd, true)
	rootCmd.AddCommand(bibCmd)
}

var bibCmd = &cobra.Command{
	Use:     "bib <file.ris>...",
	Aliases: []string{"tobib"},
	Short:   "Convert RIS files to BibTeX",
	Long: `Convert one or more RIS files to a single BibTeX bibliography.

Citation keys are generated from the first author's surname, the year and
the first significant title word, and are unique across all inputs.

Examples:
  ris2bib bib export.ris
  ris2bib bib a.ris b.ris -o refs.bib
  ris2bib bib new.ris -o refs.bib --append`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBib,
}

func runBib(cmd *cobra.Command, args []string) error {
	return runConversion(cmd, convert.Request{
		Inputs: args,
		From:   importer.RIS,
		To:     importer.BibTeX,
	})
}
