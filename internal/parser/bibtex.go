package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/latex"
	"github.com/reflib/refconv/internal/typemap"
)

// BibTeX parses @type{key, field = value, ...} records. The @string
// macro table lives on the stack of each Parse call, so instances are
// stateless and safe for concurrent use.
type BibTeX struct{}

func (p *BibTeX) Format() entry.Format { return entry.FormatBibTeX }

func (p *BibTeX) Parse(content string) *entry.ConversionResult {
	r := &entry.ConversionResult{}
	macros := make(map[string]string)
	ids := entry.IDAllocator{}
	src := stripLineComments(content)

	index := 0
	i := 0
	for {
		at := strings.IndexByte(src[i:], '@')
		if at < 0 {
			break
		}
		i += at + 1

		j := i
		for j < len(src) && isAlpha(src[j]) {
			j++
		}
		blockType := strings.ToLower(src[i:j])

		k := j
		for k < len(src) && isSpace(src[k]) {
			k++
		}
		if blockType == "" || k >= len(src) || src[k] != '{' {
			continue
		}

		body, end, ok := matchBrace(src, k)
		if !ok {
			r.Warnings = append(r.Warnings, entry.Warning{
				EntryID:  bestEffortKey(src[k+1:], index),
				Severity: entry.SeverityError,
				Type:     entry.WarnSyntax,
				Message:  fmt.Sprintf("@%s entry has no matching closing brace", blockType),
			})
			next := nextRecordStart(src, k)
			if next < 0 {
				break
			}
			i = next
			continue
		}
		i = end + 1

		switch blockType {
		case "comment", "preamble":
			// ignored blocks
		case "string":
			defineMacro(body, macros)
		default:
			parseBibTeXRecord(blockType, body, index, macros, ids, r)
			index++
		}
	}

	return r.Finalize()
}

func (p *BibTeX) Validate(content string) []entry.Warning {
	src := stripLineComments(content)
	if strings.TrimSpace(src) == "" {
		return []entry.Warning{noEntriesWarning()}
	}

	var warnings []entry.Warning

	open := strings.Count(src, "{")
	closed := strings.Count(src, "}")
	if open != closed {
		warnings = append(warnings, entry.Warning{
			EntryID:  "document",
			Severity: entry.SeverityError,
			Type:     entry.WarnSyntax,
			Message:  fmt.Sprintf("unbalanced braces: %d opening, %d closing", open, closed),
		})
	}

	if !bibtexEntryRe.MatchString(src) {
		warnings = append(warnings, noEntriesWarning())
	}
	return warnings
}

var bibtexEntryRe = regexp.MustCompile(`@[A-Za-z]+\s*\{`)

// parseBibTeXRecord builds one entry from a record body "key, f = v, ...".
func parseBibTeXRecord(nativeType, body string, index int, macros map[string]string, ids entry.IDAllocator, r *entry.ConversionResult) {
	parts := splitTopLevel(body, ',')
	key := strings.TrimSpace(parts[0])
	if key == "" {
		key = fallbackID(index)
	}
	key = ids.Claim(key)

	e := entry.Entry{
		ID:   key,
		Type: typemap.Normalize(nativeType, entry.FormatBibTeX),
		Metadata: &entry.FormatMetadata{
			Source:       entry.FormatBibTeX,
			OriginalType: nativeType,
		},
	}

	var year, month, day, dateField string

	for _, field := range parts[1:] {
		if strings.TrimSpace(field) == "" {
			continue
		}
		eq := indexTopLevel(field, '=')
		if eq < 0 {
			r.Warnings = append(r.Warnings, entry.Warning{
				EntryID:  key,
				Severity: entry.SeverityWarning,
				Type:     entry.WarnSyntax,
				Message:  fmt.Sprintf("field without '=' skipped: %q", strings.TrimSpace(field)),
			})
			continue
		}
		name := strings.ToLower(strings.TrimSpace(field[:eq]))
		value := resolveValue(field[eq+1:], macros)

		switch name {
		case "author":
			e.Author = ParseNameList(latex.Decode(value))
		case "editor":
			e.Editor = ParseNameList(latex.Decode(value))
		case "translator":
			e.Translator = ParseNameList(latex.Decode(value))
		case "year":
			year = value
		case "month":
			month = value
		case "day":
			day = value
		case "date":
			dateField = value
		case "urldate":
			e.Accessed = parseDelimitedDate(value)
		default:
			if canonical, ok := typemap.FieldToCanonical(name, entry.FormatBibTeX); ok {
				e.SetScalar(canonical, latex.Decode(value))
			} else {
				// custom fields keep the raw, un-decoded value
				e.SetCustomField(name, value)
			}
		}
	}

	if dateField != "" {
		e.Issued = parseDelimitedDate(dateField)
	}
	if e.Issued == nil {
		e.Issued = combineDate(year, month, day)
	}

	r.Entries = append(r.Entries, e)
}

// defineMacro records an @string{name = value} definition. Lookup is
// case-insensitive; later definitions shadow earlier ones.
func defineMacro(body string, macros map[string]string) {
	eq := indexTopLevel(body, '=')
	if eq < 0 {
		return
	}
	name := strings.ToLower(strings.TrimSpace(body[:eq]))
	if name == "" {
		return
	}
	macros[name] = resolveValue(body[eq+1:], macros)
}

// resolveValue resolves a field value: {...} or "..." delimiters are
// stripped (inner braces preserved), bare numbers pass through, anything
// else is a macro reference, and # concatenates the resolved operands.
func resolveValue(raw string, macros map[string]string) string {
	var out strings.Builder
	for _, operand := range splitTopLevel(raw, '#') {
		operand = strings.TrimSpace(operand)
		switch {
		case operand == "":
		case operand[0] == '{' && operand[len(operand)-1] == '}':
			out.WriteString(operand[1 : len(operand)-1])
		case operand[0] == '"' && operand[len(operand)-1] == '"' && len(operand) >= 2:
			out.WriteString(operand[1 : len(operand)-1])
		default:
			if _, err := strconv.Atoi(operand); err == nil {
				out.WriteString(operand)
				break
			}
			if v, ok := macros[strings.ToLower(operand)]; ok {
				out.WriteString(v)
			} else {
				out.WriteString(operand)
			}
		}
	}
	return out.String()
}

// splitTopLevel splits on sep at brace depth zero, outside quoted
// strings. Nested groups like {The {RNA} World} survive intact.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				inQuote = !inQuote
			}
		case sep:
			if depth == 0 && !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// indexTopLevel returns the first index of sep at depth zero outside
// quotes, or -1.
func indexTopLevel(s string, sep byte) int {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				inQuote = !inQuote
			}
		case sep:
			if depth == 0 && !inQuote {
				return i
			}
		}
	}
	return -1
}

// matchBrace returns the content between the brace at openIdx and its
// matching close, plus the close index. ok is false when unmatched.
func matchBrace(s string, openIdx int) (body string, closeIdx int, ok bool) {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[openIdx+1 : i], i, true
			}
		}
	}
	return "", 0, false
}

// stripLineComments removes %-prefixed comment lines.
func stripLineComments(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// nextRecordStart finds the next '@' that begins a line after pos, used
// to resume scanning after an unterminated record.
func nextRecordStart(s string, pos int) int {
	for i := pos; i < len(s)-1; i++ {
		if s[i] == '\n' {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j < len(s) && s[j] == '@' {
				return j
			}
		}
	}
	return -1
}

// bestEffortKey extracts a citation key from the start of an entry body
// for warning attribution, falling back to the positional id.
func bestEffortKey(body string, index int) string {
	end := len(body)
	for i := 0; i < len(body); i++ {
		if body[i] == ',' || body[i] == '\n' || body[i] == '}' {
			end = i
			break
		}
	}
	if key := strings.TrimSpace(body[:end]); key != "" {
		return key
	}
	return fallbackID(index)
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
