package convert

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/reflib/refconv/internal/entry"
)

var (
	bibtexRe  = regexp.MustCompile(`@[A-Za-z]+\s*\{`)
	risRe     = regexp.MustCompile(`(?m)^TY {0,2}- `)
	endnoteRe = regexp.MustCompile(`(?m)^%0 `)
)

// DetectFormat sniffs the format of raw content. Returns false when the
// content is ambiguous; the caller must then name the format explicitly.
func DetectFormat(content string) (entry.Format, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", false
	}

	// JSON object/array shape means CSL-JSON
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if json.Valid([]byte(trimmed)) {
			return entry.FormatCSLJSON, true
		}
	}

	if risRe.MatchString(content) {
		return entry.FormatRIS, true
	}
	if endnoteRe.MatchString(content) {
		return entry.FormatEndNote, true
	}
	// BibTeX and biblatex share one syntax; report the family parser
	if bibtexRe.MatchString(content) {
		return entry.FormatBibTeX, true
	}
	return "", false
}
