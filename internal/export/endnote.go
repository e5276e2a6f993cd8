package export

import (
	"fmt"
	"strings"

	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/typemap"
)

// endnoteTagOrder lists the scalar fields an EndNote record carries, in
// emission order.
var endnoteTagOrder = []string{
	"title",
	"container-title",
	"collection-title",
	"volume",
	"issue",
	"page",
	"edition",
	"publisher",
	"publisher-place",
	"ISBN",
	"language",
	"DOI",
	"URL",
	"abstract",
	"note",
}

// toEndNote converts one entry to an EndNote tagged record.
func toEndNote(e entry.Entry) string {
	var b strings.Builder

	writeTag := func(tag, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("%s %s\n", tag, value))
		}
	}

	nativeType, _ := typemap.Denormalize(e.Type, entry.FormatEndNote)
	writeTag("%0", nativeType)

	for _, n := range e.Author {
		writeTag("%A", formatName(n))
	}
	for _, n := range e.Editor {
		writeTag("%E", formatName(n))
	}
	for _, n := range e.Translator {
		writeTag("%H", formatName(n))
	}

	for _, canonical := range endnoteTagOrder {
		value, _ := e.Scalar(canonical)
		if value == "" {
			continue
		}
		if tag, ok := typemap.FieldFromCanonical(canonical, entry.FormatEndNote); ok {
			writeTag(tag, value)
		}
	}

	if y := e.Issued.Year(); y > 0 {
		writeTag("%D", fmt.Sprintf("%d", y))
		if m := e.Issued.Month(); m > 0 {
			writeTag("%8", risDate(e.Issued))
		}
	}

	for _, kw := range strings.Split(e.Keyword, ";") {
		writeTag("%K", strings.TrimSpace(kw))
	}

	if e.Metadata != nil {
		for _, tag := range sortedKeys(e.Metadata.CustomFields) {
			if !strings.HasPrefix(tag, "%") {
				continue
			}
			for _, value := range e.Metadata.CustomFields[tag] {
				writeTag(tag, value)
			}
		}
	}

	return b.String()
}

// toEndNoteList converts multiple entries, blank-line separated.
func toEndNoteList(entries []entry.Entry) string {
	var records []string
	for _, e := range entries {
		records = append(records, toEndNote(e))
	}
	return strings.Join(records, "\n")
}
