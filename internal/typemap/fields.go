package typemap

import (
	"strings"

	"github.com/reflib/refconv/internal/entry"
)

// Per-format field tables map native field or tag names to canonical
// scalar field names. Contributor, date, and page-range fields have
// format-specific handling in the parsers and are not listed here.
// Natives absent from a table are preserved as custom fields.

var bibtexFields = map[string]string{
	"abstract":     "abstract",
	"address":      "publisher-place",
	"booktitle":    "container-title",
	"chapter":      "chapter-number",
	"doi":          "DOI",
	"edition":      "edition",
	"institution":  "publisher",
	"isbn":         "ISBN",
	"issn":         "ISSN",
	"journal":      "container-title",
	"journaltitle": "container-title",
	"keywords":     "keyword",
	"language":     "language",
	"note":         "note",
	"number":       "issue",
	"pages":        "page",
	"pagetotal":    "number-of-pages",
	"publisher":    "publisher",
	"school":       "publisher",
	"series":       "collection-title",
	"title":        "title",
	"type":         "genre",
	"url":          "URL",
	"volume":       "volume",
}

// bibtexFieldNames is the preferred native name per canonical field on
// egress, where the forward table is many-to-one.
var bibtexFieldNames = map[string]string{
	"DOI":              "doi",
	"ISBN":             "isbn",
	"ISSN":             "issn",
	"URL":              "url",
	"abstract":         "abstract",
	"chapter-number":   "chapter",
	"collection-title": "series",
	"container-title":  "journal",
	"edition":          "edition",
	"genre":            "type",
	"issue":            "number",
	"keyword":          "keywords",
	"language":         "language",
	"note":             "note",
	"number-of-pages":  "pagetotal",
	"page":             "pages",
	"publisher":        "publisher",
	"publisher-place":  "address",
	"title":            "title",
	"volume":           "volume",
}

var risFields = map[string]string{
	"AB": "abstract",
	"CY": "publisher-place",
	"DO": "DOI",
	"ET": "edition",
	"IS": "issue",
	"JF": "container-title",
	"JO": "container-title",
	"LA": "language",
	"N1": "note",
	"N2": "abstract",
	"PB": "publisher",
	"SN": "ISSN",
	"T1": "title",
	"T2": "container-title",
	"T3": "collection-title",
	"TI": "title",
	"UR": "URL",
	"VL": "volume",
}

var risFieldNames = map[string]string{
	"DOI":              "DO",
	"ISSN":             "SN",
	"URL":              "UR",
	"abstract":         "AB",
	"collection-title": "T3",
	"container-title":  "T2",
	"edition":          "ET",
	"issue":            "IS",
	"language":         "LA",
	"note":             "N1",
	"publisher":        "PB",
	"publisher-place":  "CY",
	"title":            "TI",
	"volume":           "VL",
}

var endnoteFields = map[string]string{
	"%B": "container-title",
	"%C": "publisher-place",
	"%I": "publisher",
	"%J": "container-title",
	"%N": "issue",
	"%P": "page",
	"%R": "DOI",
	"%S": "collection-title",
	"%T": "title",
	"%U": "URL",
	"%V": "volume",
	"%X": "abstract",
	"%Z": "note",
	"%@": "ISBN",
	"%G": "language",
	"%7": "edition",
}

var endnoteFieldNames = map[string]string{
	"DOI":              "%R",
	"ISBN":             "%@",
	"URL":              "%U",
	"abstract":         "%X",
	"collection-title": "%S",
	"container-title":  "%J",
	"edition":          "%7",
	"issue":            "%N",
	"language":         "%G",
	"note":             "%Z",
	"page":             "%P",
	"publisher":        "%I",
	"publisher-place":  "%C",
	"title":            "%T",
	"volume":           "%V",
}

// FieldToCanonical maps a native field or tag name to its canonical
// scalar field name. BibTeX names match case-insensitively; RIS and
// EndNote tags are exact. CSL-JSON needs no mapping and always misses.
func FieldToCanonical(native string, format entry.Format) (string, bool) {
	switch format {
	case entry.FormatBibTeX, entry.FormatBibLaTeX:
		c, ok := bibtexFields[strings.ToLower(native)]
		return c, ok
	case entry.FormatRIS:
		c, ok := risFields[native]
		return c, ok
	case entry.FormatEndNote:
		c, ok := endnoteFields[native]
		return c, ok
	}
	return "", false
}

// FieldFromCanonical maps a canonical scalar field name to the preferred
// native name on egress.
func FieldFromCanonical(canonical string, format entry.Format) (string, bool) {
	switch format {
	case entry.FormatBibTeX, entry.FormatBibLaTeX:
		n, ok := bibtexFieldNames[canonical]
		return n, ok
	case entry.FormatRIS:
		n, ok := risFieldNames[canonical]
		return n, ok
	case entry.FormatEndNote:
		n, ok := endnoteFieldNames[canonical]
		return n, ok
	case entry.FormatCSLJSON:
		return canonical, true
	}
	return "", false
}
