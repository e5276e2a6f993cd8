package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reflib/refconv/internal/convert"
	"github.com/reflib/refconv/internal/entry"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <file|->",
	Short: "Detect the format of a reference file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

// DetectResponse is the JSON response for the detect command.
type DetectResponse struct {
	Format   entry.Format `json:"format,omitempty"`
	Detected bool         `json:"detected"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	content, err := readInput(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	format, ok := convert.DetectFormat(content)
	if humanOutput {
		if !ok {
			fmt.Println("unknown")
		} else {
			fmt.Println(format)
		}
		return nil
	}
	return outputJSON(DetectResponse{Format: format, Detected: ok})
}
