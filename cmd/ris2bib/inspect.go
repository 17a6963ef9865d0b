package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ris2bib/internal/storage"
)

var inspectFrom string

func init() {
	inspectCmd.Flags().StringVar(&inspectFrom, "from", "auto", "Input format: auto, ris or bib")
	inspectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSONL to this file instead of stdout")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Print parsed records as JSONL",
	Long: `Parse inputs and print one JSON object per record, showing the entry
type, source key and every field value exactly as the readers produced
them. Useful for checking a mapping before converting.

Examples:
  ris2bib inspect export.ris
  ris2bib inspect refs.bib | jq .fields`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	from, err := parseFormatFlag("from", inspectFrom)
	if err != nil {
		return err
	}
	conv, err := loadConverter()
	if err != nil {
		return err
	}

	recs, err := conv.Records(args, from, &warningPrinter{w: cmd.ErrOrStderr()})
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}
	if len(recs) == 0 {
		return withCode(ExitDataError, "no records found")
	}

	var buf bytes.Buffer
	if err := storage.WriteRecords(&buf, recs); err != nil {
		return &exitError{code: ExitError, err: err}
	}
	if outputPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), buf.String())
		return nil
	}
	if err := (storage.OS{}).WriteText(outputPath, buf.String()); err != nil {
		return &exitError{code: ExitError, err: err}
	}
	printStatus(cmd.OutOrStdout(), StatusResponse{Status: "ok", Path: outputPath, Records: len(recs)})
	return nil
}
