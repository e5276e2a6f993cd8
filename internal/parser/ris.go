package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/typemap"
)

// RIS parses the line-oriented RIS tagged format. Records run from a TY
// line to the matching ER line; a TY before the previous ER closes the
// prior record silently during Parse, while Validate flags it.
type RIS struct{}

func (p *RIS) Format() entry.Format { return entry.FormatRIS }

// risTagRe matches a tagged line: a strict two-character uppercase code,
// a dash, and the value. Non-conforming lines are skipped.
var risTagRe = regexp.MustCompile(`^([A-Z][A-Z0-9]) {0,2}- ?(.*)$`)

type risTag struct {
	tag   string
	value string
}

func (p *RIS) Parse(content string) *entry.ConversionResult {
	r := &entry.ConversionResult{}

	var tags []risTag
	open := false
	index := 0
	ids := entry.IDAllocator{}

	flush := func() {
		if !open {
			return
		}
		e := buildRISEntry(tags, index)
		e.ID = ids.Claim(e.ID)
		r.Entries = append(r.Entries, e)
		index++
		tags = nil
		open = false
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		m := risTagRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tag, value := m[1], strings.TrimSpace(m[2])

		switch tag {
		case "TY":
			// an unterminated previous record is closed implicitly
			flush()
			open = true
			tags = append(tags, risTag{tag, value})
		case "ER":
			flush()
		default:
			if open {
				tags = append(tags, risTag{tag, value})
			}
		}
	}
	flush()

	return r.Finalize()
}

func (p *RIS) Validate(content string) []entry.Warning {
	var warnings []entry.Warning

	open := false
	sawEntry := false
	for i, line := range strings.Split(content, "\n") {
		m := risTagRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		switch m[1] {
		case "TY":
			sawEntry = true
			if open {
				warnings = append(warnings, entry.Warning{
					EntryID:  "document",
					Severity: entry.SeverityWarning,
					Type:     entry.WarnSyntax,
					Message:  fmt.Sprintf("line %d: TY without preceding ER", i+1),
				})
			}
			open = true
		case "ER":
			if !open {
				warnings = append(warnings, entry.Warning{
					EntryID:  "document",
					Severity: entry.SeverityWarning,
					Type:     entry.WarnSyntax,
					Message:  fmt.Sprintf("line %d: ER without preceding TY", i+1),
				})
			}
			open = false
		}
	}

	if open {
		warnings = append(warnings, entry.Warning{
			EntryID:  "document",
			Severity: entry.SeverityWarning,
			Type:     entry.WarnSyntax,
			Message:  "last entry is not terminated by ER",
		})
	}
	if !sawEntry {
		warnings = append(warnings, noEntriesWarning())
	}
	return warnings
}

// buildRISEntry converts one record's tags into a canonical entry.
func buildRISEntry(tags []risTag, index int) entry.Entry {
	e := entry.Entry{Metadata: &entry.FormatMetadata{Source: entry.FormatRIS}}

	var keywords []string
	var sp, ep string

	for _, t := range tags {
		switch t.tag {
		case "TY":
			e.Metadata.OriginalType = t.value
			e.Type = typemap.Normalize(t.value, entry.FormatRIS)
		case "AU", "A1":
			e.Author = append(e.Author, ParseName(t.value))
		case "ED", "A2":
			e.Editor = append(e.Editor, ParseName(t.value))
		case "A3":
			e.Translator = append(e.Translator, ParseName(t.value))
		case "KW":
			if t.value != "" {
				keywords = append(keywords, t.value)
			}
		case "SP":
			sp = t.value
		case "EP":
			ep = t.value
		case "PY", "Y1":
			if e.Issued == nil {
				e.Issued = parseDelimitedDate(t.value)
			}
		case "DA":
			if e.Issued == nil {
				e.Issued = parseDelimitedDate(t.value)
			}
		case "Y2":
			e.Accessed = parseDelimitedDate(t.value)
		default:
			canonical, ok := typemap.FieldToCanonical(t.tag, entry.FormatRIS)
			if !ok {
				e.SetCustomField(t.tag, t.value)
				continue
			}
			if current, _ := e.Scalar(canonical); current != "" {
				// repeated scalar tags keep the first value
				e.SetCustomField(t.tag, t.value)
				continue
			}
			e.SetScalar(canonical, t.value)
		}
	}

	if len(keywords) > 0 {
		e.Keyword = strings.Join(keywords, "; ")
	}

	// SP/EP compose the page range; a bare EP is accepted as-is
	switch {
	case sp != "" && ep != "":
		e.Page = sp + "-" + ep
	case sp != "":
		e.Page = sp
	case ep != "":
		e.Page = ep
	}

	e.ID = synthesizeID(e, index)
	return e
}

// synthesizeID derives an id from the first author's surname and the
// publication year, falling back to the positional entryN form.
func synthesizeID(e entry.Entry, index int) string {
	var id string
	if len(e.Author) > 0 {
		name := e.Author[0].Family
		if name == "" {
			name = e.Author[0].Literal
		}
		id = strings.ToLower(strings.ReplaceAll(name, " ", ""))
	}
	if y := e.Issued.Year(); y > 0 {
		id += fmt.Sprintf("%d", y)
	}
	if id == "" {
		return fallbackID(index)
	}
	return id
}
