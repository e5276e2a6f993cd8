package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reflib/refconv/internal/config"
	"github.com/reflib/refconv/internal/convert"
	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/export"
	"github.com/reflib/refconv/internal/importer"
	"github.com/reflib/refconv/internal/library"
)

var (
	libImportFrom  string
	libExportTo    string
	libListType    string
	libListAuthor  string
	libListYear    int
	libMergeDedupe string
)

func init() {
	libImportCmd.Flags().StringVar(&libImportFrom, "from", "", "Source format, or \"paperpile\" (detected when omitted)")
	libExportCmd.Flags().StringVar(&libExportTo, "to", "", "Target format")
	libExportCmd.MarkFlagRequired("to")
	libListCmd.Flags().StringVar(&libListType, "type", "", "Filter by canonical type")
	libListCmd.Flags().StringVar(&libListAuthor, "author", "", "Filter by author family name")
	libListCmd.Flags().IntVar(&libListYear, "year", 0, "Filter by publication year")
	libMergeCmd.Flags().StringVar(&libMergeDedupe, "dedupe", "id", "Dedupe key: id or doi")

	libraryCmd.AddCommand(libImportCmd, libListCmd, libExportCmd, libMergeCmd, libRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local reference library",
	Long: `Manage the local SQLite reference library.

The library path comes from the REFCONV_LIBRARY environment variable,
the library_path setting in the global config, or the default location
next to the config file.`,
}

// openLibrary opens the configured library database, exiting on failure.
func openLibrary() *library.Library {
	_ = godotenv.Load()
	lib, err := library.Open(config.LibraryPath())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return lib
}

// LibraryImportResponse is the JSON response for library import.
type LibraryImportResponse struct {
	Format   entry.Format    `json:"format"`
	Imported int             `json:"imported"`
	Warnings []entry.Warning `json:"warnings,omitempty"`
}

var libImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Parse a reference file into the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(args[0])
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}

		var format entry.Format
		var result *entry.ConversionResult
		switch {
		case libImportFrom == "paperpile":
			// Paperpile JSON exports are not CSL-JSON; they get their
			// own importer
			format = entry.Format(libImportFrom)
			result = importer.ParsePaperpile([]byte(content))
		case libImportFrom == "":
			detected, ok := convert.DetectFormat(content)
			if !ok {
				exitWithError(ExitDataError, "could not detect input format; use --from")
			}
			format = detected
			result, err = convert.Parse(content, format)
			if err != nil {
				exitWithError(ExitConfigError, "%v", err)
			}
		default:
			format = entry.Format(libImportFrom)
			if !format.Valid() {
				exitWithError(ExitConfigError, "unknown format: %s", libImportFrom)
			}
			result, err = convert.Parse(content, format)
			if err != nil {
				exitWithError(ExitConfigError, "%v", err)
			}
		}

		lib := openLibrary()
		defer lib.Close()

		imported, err := lib.Save(result.Entries)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}

		if humanOutput {
			fmt.Printf("imported %d entries\n", imported)
			printWarnings(result.Warnings)
			return nil
		}
		return outputJSON(LibraryImportResponse{
			Format:   format,
			Imported: imported,
			Warnings: result.Warnings,
		})
	},
}

var libListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := openLibrary()
		defer lib.Close()

		entries, err := lib.List()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}

		entries = entry.Filter(entries, entry.Criteria{
			Type:         libListType,
			AuthorFamily: libListAuthor,
			Year:         libListYear,
		})

		if humanOutput {
			for _, e := range entries {
				fmt.Printf("%-24s %-18s %s\n", e.ID, e.Type, e.Title)
			}
			return nil
		}
		return outputJSON(entries)
	},
}

var libExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate a reference file from the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		to := entry.Format(libExportTo)
		if !to.Valid() {
			exitWithError(ExitConfigError, "unknown target format: %s", libExportTo)
		}

		lib := openLibrary()
		defer lib.Close()

		entries, err := lib.List()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}

		output, err := export.Generate(entries, to, &export.Options{Sort: true})
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		fmt.Print(output)
		return nil
	},
}

// LibraryMergeResponse is the JSON response for library merge.
type LibraryMergeResponse struct {
	Merged  int `json:"merged"`
	Dropped int `json:"dropped"`
}

var libMergeCmd = &cobra.Command{
	Use:   "merge <file|-> [<file> ...]",
	Short: "Merge reference files into the library, dropping duplicates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if libMergeDedupe != "id" && libMergeDedupe != "doi" {
			exitWithError(ExitConfigError, "dedupe key must be id or doi")
		}

		lib := openLibrary()
		defer lib.Close()

		existing, err := lib.List()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}

		sets := [][]entry.Entry{existing}
		incoming := 0
		for _, arg := range args {
			content, err := readInput(arg)
			if err != nil {
				exitWithError(ExitError, "%v", err)
			}
			format, ok := convert.DetectFormat(content)
			if !ok {
				exitWithError(ExitDataError, "could not detect format of %s", arg)
			}
			result, err := convert.Parse(content, format)
			if err != nil {
				exitWithError(ExitConfigError, "%v", err)
			}
			incoming += len(result.Entries)
			sets = append(sets, result.Entries)
		}

		merged := entry.Merge(sets, libMergeDedupe)
		if _, err := lib.Save(merged); err != nil {
			exitWithError(ExitError, "%v", err)
		}

		added := len(merged) - len(existing)
		resp := LibraryMergeResponse{Merged: added, Dropped: incoming - added}
		if humanOutput {
			fmt.Printf("merged %d entries, dropped %d duplicates\n", resp.Merged, resp.Dropped)
			return nil
		}
		return outputJSON(resp)
	},
}

// LibraryRemoveResponse is the JSON response for library remove.
type LibraryRemoveResponse struct {
	Removed int `json:"removed"`
}

var libRemoveCmd = &cobra.Command{
	Use:   "remove <id> [<id> ...]",
	Short: "Remove entries from the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := openLibrary()
		defer lib.Close()

		removed, err := lib.Remove(args)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Printf("removed %d entries\n", removed)
			return nil
		}
		return outputJSON(LibraryRemoveResponse{Removed: removed})
	},
}
