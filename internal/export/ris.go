package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/typemap"
)

// risTagOrder lists the scalar fields a RIS record carries, in the order
// they are emitted. Pages and dates have their own tag handling.
var risTagOrder = []string{
	"title",
	"container-title",
	"collection-title",
	"volume",
	"issue",
	"edition",
	"publisher",
	"publisher-place",
	"ISSN",
	"language",
	"DOI",
	"URL",
	"abstract",
	"note",
}

// toRIS converts one entry to a RIS record, TY through ER.
func toRIS(e entry.Entry) string {
	var b strings.Builder

	writeTag := func(tag, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("%s  - %s\n", tag, value))
		}
	}

	nativeType, _ := typemap.Denormalize(e.Type, entry.FormatRIS)
	writeTag("TY", nativeType)

	for _, n := range e.Author {
		writeTag("AU", formatName(n))
	}
	for _, n := range e.Editor {
		writeTag("ED", formatName(n))
	}
	for _, n := range e.Translator {
		writeTag("A3", formatName(n))
	}

	for _, canonical := range risTagOrder {
		value, _ := e.Scalar(canonical)
		if value == "" {
			continue
		}
		if tag, ok := typemap.FieldFromCanonical(canonical, entry.FormatRIS); ok {
			writeTag(tag, value)
		}
	}

	if sp, ep := splitPageRange(e.Page); sp != "" || ep != "" {
		writeTag("SP", sp)
		writeTag("EP", ep)
	}

	if e.Issued.Year() > 0 {
		writeTag("PY", risDate(e.Issued))
	}
	if e.Accessed.Year() > 0 {
		writeTag("Y2", risDate(e.Accessed))
	}

	for _, kw := range strings.Split(e.Keyword, ";") {
		writeTag("KW", strings.TrimSpace(kw))
	}

	if e.Metadata != nil {
		for _, tag := range sortedKeys(e.Metadata.CustomFields) {
			if !risCustomTagRe.MatchString(tag) {
				continue
			}
			for _, value := range e.Metadata.CustomFields[tag] {
				writeTag(tag, value)
			}
		}
	}

	b.WriteString("ER  - \n")
	return b.String()
}

// toRISList converts multiple entries, blank-line separated.
func toRISList(entries []entry.Entry) string {
	var records []string
	for _, e := range entries {
		records = append(records, toRIS(e))
	}
	return strings.Join(records, "\n")
}

// risCustomTagRe: only two-character codes can be re-emitted as RIS tags.
var risCustomTagRe = regexp.MustCompile(`^[A-Z][A-Z0-9]$`)

// splitPageRange breaks "100-110" into start and end pages. A single
// page becomes the start page.
func splitPageRange(page string) (sp, ep string) {
	page = strings.TrimSpace(page)
	if page == "" {
		return "", ""
	}
	for _, sep := range []string{"--", "-", "–"} {
		if i := strings.Index(page, sep); i > 0 {
			return strings.TrimSpace(page[:i]), strings.TrimSpace(page[i+len(sep):])
		}
	}
	return page, ""
}

// risDate renders a partial date as YYYY/MM/DD with trailing slashes
// trimmed to the known parts.
func risDate(d *entry.PartialDate) string {
	out := fmt.Sprintf("%d", d.Year())
	if m := d.Month(); m > 0 {
		out += fmt.Sprintf("/%02d", m)
		if day := d.Day(); day > 0 {
			out += fmt.Sprintf("/%02d", day)
		}
	}
	return out
}
