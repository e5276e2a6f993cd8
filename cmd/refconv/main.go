// Package main provides the refconv CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refconv",
	Short: "Convert bibliographic references between formats",
	Long: `refconv converts bibliographic reference data between formats.

Supported formats:
  bibtex, biblatex, ris, csl-json, endnote

Core features:
  - Parse any supported format into a canonical entry model
  - Generate any supported format from parsed entries
  - Detect a file's format from its content
  - Validate syntax without converting
  - Keep a local SQLite library of imported entries

All commands output JSON by default; pass --human for plain text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
