package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/ris2bib/internal/config"
	"github.com/matsen/ris2bib/internal/convert"
	"github.com/matsen/ris2bib/internal/importer"
	"github.com/matsen/ris2bib/internal/storage"
	"github.com/matsen/ris2bib/internal/warning"
)

// Flags shared by the conversion commands.
var (
	outputPath   string
	appendOutput bool
	existingPath string
)

func addOutputFlags(cmd *cobra.Command, bibtexTarget bool) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&appendOutput, "append", false, "Append to the -o file instead of overwriting it")
	if bibtexTarget {
		cmd.Flags().StringVar(&existingPath, "existing", "", "Reserve the citation keys of this .bib file and skip DOIs it already holds")
	}
}

// loadConverter builds a converter from the effective config.
func loadConverter() (*convert.Converter, error) {
	cfg, err := config.LoadGlobalConfig(configPath)
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: err}
	}
	return convert.New(cfg.Tables(), cfg.KeyGenerator(), storage.OS{}), nil
}

// runConversion applies the shared flags to req, runs it, and reports the
// result on stdout.
func runConversion(cmd *cobra.Command, req convert.Request) error {
	req.Output = outputPath
	req.Append = appendOutput
	if appendOutput && outputPath == "" {
		return withCode(ExitError, "--append requires -o")
	}
	if req.To == importer.BibTeX {
		req.Existing = existingPath
		// Appending to a .bib reserves its keys unless another file was named.
		if req.Existing == "" && appendOutput && fileExists(outputPath) {
			req.Existing = outputPath
		}
	}

	conv, err := loadConverter()
	if err != nil {
		return err
	}

	var seen warning.Collector
	res, err := conv.Convert(req, warning.Tee(&warningPrinter{w: cmd.ErrOrStderr()}, &seen))
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}
	if len(req.Inputs) > 0 && res.Records == 0 && res.Skipped == 0 {
		return withCode(ExitDataError, "no records converted from %d %s", len(req.Inputs), plural(len(req.Inputs), "input", "inputs"))
	}

	if req.Output == "" {
		fmt.Fprint(cmd.OutOrStdout(), res.Text)
		return nil
	}
	printStatus(cmd.OutOrStdout(), StatusResponse{
		Status:   "ok",
		Path:     req.Output,
		Records:  res.Records,
		Skipped:  res.Skipped,
		Warnings: len(seen.Warnings),
	})
	return nil
}

// parseFormatFlag accepts "auto" or "" as detection.
func parseFormatFlag(name, value string) (importer.Format, error) {
	if value == "" || value == "auto" {
		return importer.Unknown, nil
	}
	f, err := importer.ParseFormat(value)
	if err != nil {
		return importer.Unknown, withCode(ExitError, "--%s: %v", name, err)
	}
	return f, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
