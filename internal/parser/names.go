package parser

import (
	"strings"

	"github.com/reflib/refconv/internal/entry"
)

// ParseNameList splits a BibTeX-style contributor list on the literal
// separator " and " and parses each part.
func ParseNameList(s string) []entry.Name {
	var names []entry.Name
	for _, part := range splitDepthAware(s, " and ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, ParseName(part))
	}
	return names
}

// ParseName parses a single contributor. "Family, Given" splits on the
// first comma; a fully braced value ({World Health Organization}) or a
// single bare token becomes a literal; "Given Family" without a comma
// takes the last token as the family name.
func ParseName(s string) entry.Name {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return entry.Name{Literal: strings.TrimSpace(s[1 : len(s)-1])}
	}

	if i := strings.Index(s, ","); i >= 0 {
		return entry.Name{
			Family: strings.TrimSpace(s[:i]),
			Given:  strings.TrimSpace(s[i+1:]),
		}
	}

	tokens := strings.Fields(s)
	switch len(tokens) {
	case 0:
		return entry.Name{}
	case 1:
		return entry.Name{Literal: tokens[0]}
	default:
		return entry.Name{
			Family: tokens[len(tokens)-1],
			Given:  strings.Join(tokens[:len(tokens)-1], " "),
		}
	}
}

// splitDepthAware splits s on sep, ignoring separators inside braces so
// that {Company and Sons} stays one name.
func splitDepthAware(s, sep string) []string {
	var parts []string
	depth := 0
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				parts = append(parts, s[start:i])
				i += len(sep) - 1
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
