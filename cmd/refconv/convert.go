package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reflib/refconv/internal/clipboard"
	"github.com/reflib/refconv/internal/config"
	"github.com/reflib/refconv/internal/convert"
	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/export"
)

var (
	convertFrom   string
	convertTo     string
	convertSort   bool
	convertIndent string
	convertOut    string
	convertCopy   bool
)

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Source format (detected from content when omitted)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Target format")
	convertCmd.Flags().BoolVar(&convertSort, "sort", false, "Sort entries by id")
	convertCmd.Flags().StringVar(&convertIndent, "indent", "", "Indentation unit for JSON output")
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "Write converted text to a file instead of the response")
	convertCmd.Flags().BoolVar(&convertCopy, "copy", false, "Copy converted text to the clipboard")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file|->",
	Short: "Convert references to another format",
	Long: `Convert references between bibliographic formats.

Usage:
  refconv convert --to ris library.bib
  refconv convert --from bibtex --to csl-json library.bib
  cat library.bib | refconv convert --to endnote -

The source format is detected from the content unless --from is given.
--to falls back to the default_to setting in the global config.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

// ConvertResponse is the JSON response for the convert command.
type ConvertResponse struct {
	From   entry.Format            `json:"from"`
	To     entry.Format            `json:"to"`
	Output string                  `json:"output,omitempty"`
	Result *entry.ConversionResult `json:"result"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	content, err := readInput(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	from, to := resolveFormats(content)

	opts := &export.Options{Sort: convertSort, Indent: convertIndent}
	if cfg, err := config.LoadGlobalConfig(); err == nil {
		if !cmd.Flags().Changed("sort") {
			opts.Sort = cfg.Sort
		}
		if opts.Indent == "" {
			opts.Indent = cfg.Indent
		}
	}

	res, err := convert.Convert(content, from, to, opts)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if convertOut != "" {
		if err := os.WriteFile(convertOut, []byte(res.Output), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", convertOut, err)
		}
	}
	if convertCopy {
		if err := clipboard.Copy(res.Output); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
	}

	if humanOutput {
		if convertOut == "" {
			fmt.Print(res.Output)
		}
		printWarnings(res.Result.Warnings)
		return nil
	}

	resp := ConvertResponse{From: from, To: to, Result: res.Result}
	if convertOut == "" {
		resp.Output = res.Output
	}
	return outputJSON(resp)
}

// resolveFormats settles the source and target formats from flags,
// detection, and the global config, exiting on an unusable combination.
func resolveFormats(content string) (from, to entry.Format) {
	if convertFrom != "" {
		from = entry.Format(convertFrom)
		if !from.Valid() {
			exitWithError(ExitConfigError, "unknown source format: %s", convertFrom)
		}
	} else {
		detected, ok := convert.DetectFormat(content)
		if !ok {
			exitWithError(ExitDataError, "could not detect input format; use --from")
		}
		from = detected
	}

	target := convertTo
	if target == "" {
		if cfg, err := config.LoadGlobalConfig(); err == nil {
			target = cfg.DefaultTo
		}
	}
	if target == "" {
		exitWithError(ExitConfigError, "no target format; use --to or set default_to")
	}
	to = entry.Format(target)
	if !to.Valid() {
		exitWithError(ExitConfigError, "unknown target format: %s", target)
	}
	return from, to
}

// printWarnings lists warnings on stderr in human mode.
func printWarnings(warnings []entry.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", w.Severity, w.Type, w.EntryID, w.Message)
	}
}
