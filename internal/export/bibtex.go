package export

import (
	"fmt"
	"strings"

	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/latex"
	"github.com/reflib/refconv/internal/typemap"
)

// toBibTeX converts one entry to a BibTeX (or biblatex) record. The
// native type comes from the format's type table; whether that mapping
// lost information is the caller's concern via typemap.Denormalize.
func toBibTeX(e entry.Entry, format entry.Format) string {
	nativeType, _ := typemap.Denormalize(e.Type, format)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", nativeType, e.ID))

	writeField := func(name, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, value))
		}
	}

	writeField("title", latex.Encode(e.Title))
	if len(e.Author) > 0 {
		writeField("author", formatNameList(e.Author, latex.Encode))
	}
	if len(e.Editor) > 0 {
		writeField("editor", formatNameList(e.Editor, latex.Encode))
	}
	if len(e.Translator) > 0 {
		writeField("translator", formatNameList(e.Translator, latex.Encode))
	}

	writeField(containerField(nativeType), latex.Encode(e.ContainerTitle))
	writeField("series", latex.Encode(e.CollectionTitle))
	writeField("volume", e.Volume)
	writeField("number", e.Issue)
	writeField("pages", e.Page)
	writeField("chapter", e.ChapterNumber)
	writeField("edition", latex.Encode(e.Edition))
	writeField("publisher", latex.Encode(e.Publisher))
	writeField("address", latex.Encode(e.PublisherPlace))

	if y := e.Issued.Year(); y > 0 {
		writeField("year", fmt.Sprintf("%d", y))
		if m := e.Issued.Month(); m > 0 {
			writeField("month", monthName(m))
			if d := e.Issued.Day(); d > 0 {
				writeField("day", fmt.Sprintf("%d", d))
			}
		}
	}
	if a := e.Accessed; a.Year() > 0 {
		writeField("urldate", isoDate(a))
	}

	writeField("doi", e.DOI)
	writeField("url", e.URL)
	writeField("isbn", e.ISBN)
	writeField("issn", e.ISSN)
	writeField("language", e.Language)
	writeField("type", latex.Encode(e.Genre))
	writeField("keywords", latex.Encode(e.Keyword))
	writeField("abstract", latex.Encode(e.Abstract))
	writeField("note", latex.Encode(e.Note))
	writeField("pagetotal", e.NumberOfPages)

	// unmapped native fields round-trip with their raw values
	if e.Metadata != nil {
		for _, name := range sortedKeys(e.Metadata.CustomFields) {
			for _, value := range e.Metadata.CustomFields[name] {
				writeField(name, value)
			}
		}
	}

	out := strings.TrimSuffix(b.String(), ",\n")
	return out + "\n}\n"
}

// toBibTeXList converts multiple entries, blank-line separated.
func toBibTeXList(entries []entry.Entry, format entry.Format) string {
	var records []string
	for _, e := range entries {
		records = append(records, toBibTeX(e, format))
	}
	return strings.Join(records, "\n")
}

// containerField picks the BibTeX field that holds the container title
// for a native entry type.
func containerField(nativeType string) string {
	switch nativeType {
	case "inproceedings", "inbook", "incollection", "conference", "proceedings":
		return "booktitle"
	default:
		return "journal"
	}
}

var bibtexMonths = [...]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return bibtexMonths[m-1]
}

// isoDate renders a partial date as YYYY[-MM[-DD]].
func isoDate(d *entry.PartialDate) string {
	out := fmt.Sprintf("%d", d.Year())
	if m := d.Month(); m > 0 {
		out += fmt.Sprintf("-%02d", m)
		if day := d.Day(); day > 0 {
			out += fmt.Sprintf("-%02d", day)
		}
	}
	return out
}
