// Package export serializes canonical entries back into the supported
// bibliographic formats.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reflib/refconv/internal/entry"
)

// Options controls generator output.
type Options struct {
	// Sort orders entries by id (stable) before serializing.
	Sort bool
	// Indent is the indentation unit for JSON-based targets.
	// Empty means two spaces.
	Indent string
}

// Generate serializes entries into the target format.
func Generate(entries []entry.Entry, format entry.Format, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}

	ordered := entries
	if opts.Sort {
		ordered = make([]entry.Entry, len(entries))
		copy(ordered, entries)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].ID < ordered[j].ID
		})
	}

	switch format {
	case entry.FormatBibTeX, entry.FormatBibLaTeX:
		return toBibTeXList(ordered, format), nil
	case entry.FormatRIS:
		return toRISList(ordered), nil
	case entry.FormatCSLJSON:
		return toCSLJSON(ordered, opts.Indent)
	case entry.FormatEndNote:
		return toEndNoteList(ordered), nil
	}
	return "", fmt.Errorf("unsupported format: %q", format)
}

// sortedKeys returns map keys in lexical order for stable output.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatName serializes a contributor back to "Family, Given" or its
// literal form.
func formatName(n entry.Name) string {
	if n.Literal != "" {
		return n.Literal
	}
	if n.Given != "" {
		return n.Family + ", " + n.Given
	}
	return n.Family
}

// formatNameList joins contributors in BibTeX style.
func formatNameList(names []entry.Name, encode func(string) string) string {
	var formatted []string
	for _, n := range names {
		if n.Literal != "" {
			// braces keep organization names unsplit
			formatted = append(formatted, "{"+encode(n.Literal)+"}")
			continue
		}
		formatted = append(formatted, encode(formatName(n)))
	}
	return strings.Join(formatted, " and ")
}
