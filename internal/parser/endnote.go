package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/typemap"
)

// EndNote parses the EndNote tagged export format: %X-tagged lines with
// literal type strings ("%0 Journal Article"). Records start at a %0
// line; untagged lines continue the previous tag's value.
type EndNote struct{}

func (p *EndNote) Format() entry.Format { return entry.FormatEndNote }

// endnoteTagRe matches "%X value" where X is one tag character.
var endnoteTagRe = regexp.MustCompile(`^%([0-9A-Za-z@!#$&*+^?~=<>])\s?(.*)$`)

type endnoteTag struct {
	tag   string
	value string
}

func (p *EndNote) Parse(content string) *entry.ConversionResult {
	r := &entry.ConversionResult{}

	var tags []endnoteTag
	open := false
	index := 0
	ids := entry.IDAllocator{}

	flush := func() {
		if !open {
			return
		}
		e := buildEndNoteEntry(tags, index)
		e.ID = ids.Claim(e.ID)
		r.Entries = append(r.Entries, e)
		index++
		tags = nil
		open = false
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		m := endnoteTagRe.FindStringSubmatch(line)
		if m == nil {
			// untagged non-blank lines continue the previous value
			if open && strings.TrimSpace(line) != "" && len(tags) > 0 {
				tags[len(tags)-1].value += " " + strings.TrimSpace(line)
			}
			continue
		}
		tag, value := "%"+m[1], strings.TrimSpace(m[2])

		if tag == "%0" {
			flush()
			open = true
		}
		if open {
			tags = append(tags, endnoteTag{tag, value})
		}
	}
	flush()

	return r.Finalize()
}

func (p *EndNote) Validate(content string) []entry.Warning {
	if strings.TrimSpace(content) == "" {
		return []entry.Warning{noEntriesWarning()}
	}

	var warnings []entry.Warning
	sawEntry := false
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "%0") {
			continue
		}
		sawEntry = true
		if strings.TrimSpace(strings.TrimPrefix(line, "%0")) == "" {
			warnings = append(warnings, entry.Warning{
				EntryID:  "document",
				Severity: entry.SeverityWarning,
				Type:     entry.WarnMissingField,
				Message:  fmt.Sprintf("line %d: %%0 without a reference type", i+1),
			})
		}
	}
	if !sawEntry {
		warnings = append(warnings, noEntriesWarning())
	}
	return warnings
}

func buildEndNoteEntry(tags []endnoteTag, index int) entry.Entry {
	e := entry.Entry{Metadata: &entry.FormatMetadata{Source: entry.FormatEndNote}}

	var keywords []string
	var year, date string

	for _, t := range tags {
		switch t.tag {
		case "%0":
			e.Metadata.OriginalType = t.value
			e.Type = typemap.Normalize(t.value, entry.FormatEndNote)
		case "%A":
			e.Author = append(e.Author, ParseName(t.value))
		case "%E":
			e.Editor = append(e.Editor, ParseName(t.value))
		case "%H":
			e.Translator = append(e.Translator, ParseName(t.value))
		case "%K":
			if t.value != "" {
				keywords = append(keywords, t.value)
			}
		case "%D":
			year = t.value
		case "%8":
			date = t.value
		default:
			canonical, ok := typemap.FieldToCanonical(t.tag, entry.FormatEndNote)
			if !ok {
				e.SetCustomField(t.tag, t.value)
				continue
			}
			if current, _ := e.Scalar(canonical); current != "" {
				e.SetCustomField(t.tag, t.value)
				continue
			}
			e.SetScalar(canonical, t.value)
		}
	}

	if len(keywords) > 0 {
		e.Keyword = strings.Join(keywords, "; ")
	}

	// %D carries the year; %8 may refine it with month and day
	if d := parseDelimitedDate(date); d != nil {
		e.Issued = d
	} else if d := combineDate(year, "", ""); d != nil {
		e.Issued = d
	}
	if e.Issued != nil && year != "" {
		// the %D year wins over whatever %8 started with
		if y := parseYear(year); y > 0 && len(e.Issued.DateParts) > 0 && len(e.Issued.DateParts[0]) > 0 {
			e.Issued.DateParts[0][0] = y
		}
	}

	e.ID = synthesizeID(e, index)
	return e
}

func parseYear(s string) int {
	d := combineDate(s, "", "")
	return d.Year()
}
