// Package convert orchestrates the parse -> generate pipeline and
// detects formats from raw content.
package convert

import (
	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/export"
	"github.com/reflib/refconv/internal/parser"
)

// Parse runs the parser for the given format over content.
func Parse(content string, format entry.Format) (*entry.ConversionResult, error) {
	p, err := parser.New(format)
	if err != nil {
		return nil, err
	}
	return p.Parse(content), nil
}

// Generate serializes entries into the target format.
func Generate(entries []entry.Entry, format entry.Format, opts *export.Options) (string, error) {
	return export.Generate(entries, format, opts)
}

// Validate runs the syntax-only check of the matching parser.
func Validate(content string, format entry.Format) ([]entry.Warning, error) {
	p, err := parser.New(format)
	if err != nil {
		return nil, err
	}
	return p.Validate(content), nil
}

// Result pairs the generated output with the parse result that produced
// it, so callers can surface warnings alongside the converted text.
type Result struct {
	Output string                  `json:"output"`
	Result *entry.ConversionResult `json:"result"`
}

// Convert parses content in the from format and generates the to
// format. Parse-time warnings are returned with the output; they never
// abort the conversion.
func Convert(content string, from, to entry.Format, opts *export.Options) (*Result, error) {
	parsed, err := Parse(content, from)
	if err != nil {
		return nil, err
	}

	output, err := Generate(parsed.Entries, to, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Output: output, Result: parsed}, nil
}
