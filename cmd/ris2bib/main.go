// Package main provides the ris2bib CLI entry point.
package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// configPath overrides the config file location
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		code := ExitError
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(code)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ris2bib",
	Short: "Convert bibliographies between RIS and BibTeX",
	Long: `ris2bib converts RIS bibliographies to BibTeX and back.

BibTeX output gets generated citation keys of the form
{surname}{year}{titleword}, unique across all inputs of one run.
Converted text goes to stdout unless -o is given. Warnings go to stderr
and do not change the exit code.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if present (ignore error if not found)
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/ris2bib/config.yml, or $RIS2BIB_CONFIG)")
	rootCmd.Version = Version
}
