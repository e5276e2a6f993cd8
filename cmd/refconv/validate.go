package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reflib/refconv/internal/convert"
	"github.com/reflib/refconv/internal/entry"
)

var validateFormat string

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "", "Format to validate against (detected when omitted)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file|->",
	Short: "Check reference file syntax without converting",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

// ValidateResponse is the JSON response for the validate command.
type ValidateResponse struct {
	Format   entry.Format    `json:"format"`
	Valid    bool            `json:"valid"`
	Warnings []entry.Warning `json:"warnings"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	content, err := readInput(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	format := entry.Format(validateFormat)
	if validateFormat == "" {
		detected, ok := convert.DetectFormat(content)
		if !ok {
			exitWithError(ExitDataError, "could not detect input format; use --format")
		}
		format = detected
	} else if !format.Valid() {
		exitWithError(ExitConfigError, "unknown format: %s", validateFormat)
	}

	warnings, err := convert.Validate(content, format)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	valid := true
	for _, w := range warnings {
		if w.Severity == entry.SeverityError {
			valid = false
			break
		}
	}

	if humanOutput {
		printWarnings(warnings)
		if valid {
			fmt.Println("ok")
			return nil
		}
		os.Exit(ExitDataError)
	}

	if err := outputJSON(ValidateResponse{Format: format, Valid: valid, Warnings: warnings}); err != nil {
		return err
	}
	if !valid {
		os.Exit(ExitDataError)
	}
	return nil
}
