// Package parser turns raw bibliographic text into the canonical entry
// model. One Parser implementation exists per supported format, all
// behind the same interface; parsing failures become warnings in the
// result, never errors or panics.
package parser

import (
	"fmt"

	"github.com/reflib/refconv/internal/entry"
)

// Parser parses one bibliographic format.
type Parser interface {
	// Format returns the format tag this parser handles.
	Format() entry.Format
	// Parse converts raw content into entries. Malformed records are
	// skipped and reported as error-severity warnings; Parse itself
	// never fails.
	Parse(content string) *entry.ConversionResult
	// Validate runs a syntax-only check without building entries.
	// It never mutates its input and never panics.
	Validate(content string) []entry.Warning
}

// New returns the parser for a format.
func New(format entry.Format) (Parser, error) {
	switch format {
	case entry.FormatBibTeX:
		return &BibTeX{}, nil
	case entry.FormatBibLaTeX:
		return &BibLaTeX{}, nil
	case entry.FormatRIS:
		return &RIS{}, nil
	case entry.FormatCSLJSON:
		return &CSLJSON{}, nil
	case entry.FormatEndNote:
		return &EndNote{}, nil
	}
	return nil, fmt.Errorf("unsupported format: %q", format)
}

// fallbackID builds the positional entry id used when a format carries no
// usable identifier: entry1, entry2, ...
func fallbackID(index int) string {
	return fmt.Sprintf("entry%d", index+1)
}

// noEntriesWarning is the document-scoped warning Validate returns for
// input containing no recognizable entries.
func noEntriesWarning() entry.Warning {
	return entry.Warning{
		EntryID:  "document",
		Severity: entry.SeverityWarning,
		Type:     entry.WarnEmptyInput,
		Message:  "no entries found",
	}
}
