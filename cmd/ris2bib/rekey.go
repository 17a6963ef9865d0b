package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/ris2bib/internal/convert"
	"github.com/matsen/ris2bib/internal/importer"
)

func init() {
	addOutputFlags(rekeyCmd, true)
	rootCmd.AddCommand(rekeyCmd)
}

var rekeyCmd = &cobra.Command{
	Use:   "rekey <file.bib>...",
	Short: "Rewrite BibTeX files with generated citation keys",
	Long: `Rewrite BibTeX entries with citation keys generated the same way the
bib command generates them.

Examples:
  ris2bib rekey refs.bib -o rekeyed.bib`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRekey,
}

func runRekey(cmd *cobra.Command, args []string) error {
	return runConversion(cmd, convert.Request{
		Inputs: args,
		From:   importer.BibTeX,
		To:     importer.BibTeX,
	})
}
