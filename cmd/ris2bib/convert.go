package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/ris2bib/internal/convert"
	"github.com/matsen/ris2bib/internal/importer"
)

var (
	convertFrom string
	convertTo   string
)

func init() {
	addOutputFlags(convertCmd, true)
	convertCmd.Flags().StringVar(&convertFrom, "from", "auto", "Input format: auto, ris or bib")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Output format: ris or bib (required)")
	convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert files of either format to one target format",
	Long: `Convert a mix of RIS and BibTeX files to one target format.

With --from auto, each input's format is taken from its extension (.ris,
.bib), or else guessed from its first 2000 bytes. Inputs that look like
neither are skipped with a warning.

Examples:
  ris2bib convert --to bib a.ris b.bib export.txt -o all.bib
  ris2bib convert --to ris refs.bib`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, err := parseFormatFlag("from", convertFrom)
	if err != nil {
		return err
	}
	to, err := parseFormatFlag("to", convertTo)
	if err != nil {
		return err
	}
	if to == importer.Unknown {
		return withCode(ExitError, "--to must be ris or bib")
	}

	return runConversion(cmd, convert.Request{
		Inputs: args,
		From:   from,
		To:     to,
	})
}
