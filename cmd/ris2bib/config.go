package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ris2bib/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show which config file is in effect and what it adds to the built-in
mappings.

Keys:
  ris_types     RIS type -> BibTeX entry type
  bibtex_types  BibTeX entry type -> RIS type
  ris_tags      RIS tag -> BibTeX field name
  stopwords     extra words skipped when choosing the key's title word`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig(configPath)
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}
	path, _ := config.ResolvePath(configPath)
	exists := fileExists(path)

	out := cmd.OutOrStdout()
	if !humanOutput {
		return outputJSON(out, ConfigResponse{Path: path, Exists: exists, Config: cfg})
	}

	if !exists {
		fmt.Fprintln(out, config.HelpfulConfigMessage())
		return nil
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}
	fmt.Fprintf(out, "# %s\n%s", path, data)
	return nil
}
