package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/ris2bib/internal/convert"
	"github.com/matsen/ris2bib/internal/importer"
)

func init() {
	addOutputFlags(risCmd, false)
	rootCmd.AddCommand(risCmd)
}

var risCmd = &cobra.Command{
	Use:   "ris <file.bib>...",
	Short: "Convert BibTeX files to RIS",
	Long: `Convert one or more BibTeX files to RIS.

Each citation key is carried over as the RIS ID tag. Entries the BibTeX
parser rejects are skipped with a warning.

Examples:
  ris2bib ris refs.bib
  ris2bib ris refs.bib -o refs.ris`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRIS,
}

func runRIS(cmd *cobra.Command, args []string) error {
	return runConversion(cmd, convert.Request{
		Inputs: args,
		From:   importer.BibTeX,
		To:     importer.RIS,
	})
}
