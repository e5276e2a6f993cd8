package typemap

import (
	"strings"

	"github.com/reflib/refconv/internal/entry"
)

// typeTable holds one format's type vocabulary: native-to-canonical
// lookup, the preferred native type per canonical type, and the format's
// generic catch-all used when nothing better exists.
type typeTable struct {
	toCanonical   map[string]string
	fromCanonical map[string]string
	generic       string
}

var bibtexTypes = &typeTable{
	generic: "misc",
	toCanonical: map[string]string{
		"article":       "article-journal",
		"book":          "book",
		"booklet":       "pamphlet",
		"conference":    "paper-conference",
		"inbook":        "chapter",
		"incollection":  "chapter",
		"inproceedings": "paper-conference",
		"manual":        "report",
		"mastersthesis": "thesis",
		"misc":          "document",
		"phdthesis":     "thesis",
		"proceedings":   "book",
		"techreport":    "report",
		"unpublished":   "manuscript",
	},
	fromCanonical: map[string]string{
		"article":           "article",
		"article-journal":   "article",
		"article-magazine":  "article",
		"article-newspaper": "article",
		"book":              "book",
		"chapter":           "inbook",
		"document":          "misc",
		"manuscript":        "unpublished",
		"pamphlet":          "booklet",
		"paper-conference":  "inproceedings",
		"report":            "techreport",
		"thesis":            "phdthesis",
	},
}

// biblatexTypes extends the BibTeX vocabulary with the native slots the
// biblatex data model adds (dataset, software, online, patent, ...), which
// makes those canonical types non-lossy on egress.
var biblatexTypes = func() *typeTable {
	t := &typeTable{
		generic:       "misc",
		toCanonical:   make(map[string]string),
		fromCanonical: make(map[string]string),
	}
	for k, v := range bibtexTypes.toCanonical {
		t.toCanonical[k] = v
	}
	for k, v := range bibtexTypes.fromCanonical {
		t.fromCanonical[k] = v
	}

	for k, v := range map[string]string{
		"dataset":    "dataset",
		"electronic": "webpage",
		"online":     "webpage",
		"patent":     "patent",
		"report":     "report",
		"software":   "software",
		"thesis":     "thesis",
		"www":        "webpage",
	} {
		t.toCanonical[k] = v
	}
	for k, v := range map[string]string{
		"dataset":  "dataset",
		"patent":   "patent",
		"report":   "report",
		"software": "software",
		"thesis":   "thesis",
		"webpage":  "online",
	} {
		t.fromCanonical[k] = v
	}
	return t
}()

var risTypes = &typeTable{
	generic: "GEN",
	toCanonical: map[string]string{
		"bill":    "bill",
		"blog":    "post-weblog",
		"book":    "book",
		"case":    "legal_case",
		"chap":    "chapter",
		"comp":    "software",
		"conf":    "paper-conference",
		"cpaper":  "paper-conference",
		"data":    "dataset",
		"dbase":   "dataset",
		"ebook":   "book",
		"echap":   "chapter",
		"ejour":   "article-journal",
		"elec":    "webpage",
		"figure":  "figure",
		"gen":     "document",
		"icomm":   "personal_communication",
		"jfull":   "periodical",
		"jour":    "article-journal",
		"manscpt": "manuscript",
		"map":     "map",
		"mgzn":    "article-magazine",
		"mpct":    "motion_picture",
		"music":   "musical_score",
		"news":    "article-newspaper",
		"pamp":    "pamphlet",
		"pat":     "patent",
		"pcomm":   "personal_communication",
		"rprt":    "report",
		"sound":   "song",
		"stand":   "standard",
		"stat":    "legislation",
		"thes":    "thesis",
		"unpb":    "manuscript",
		"video":   "motion_picture",
		"web":     "webpage",
	},
	fromCanonical: map[string]string{
		"article":                "GEN",
		"article-journal":        "JOUR",
		"article-magazine":       "MGZN",
		"article-newspaper":      "NEWS",
		"bill":                   "BILL",
		"book":                   "BOOK",
		"chapter":                "CHAP",
		"dataset":                "DATA",
		"document":               "GEN",
		"figure":                 "FIGURE",
		"legal_case":             "CASE",
		"legislation":            "STAT",
		"manuscript":             "MANSCPT",
		"map":                    "MAP",
		"motion_picture":         "MPCT",
		"musical_score":          "MUSIC",
		"pamphlet":               "PAMP",
		"paper-conference":       "CONF",
		"patent":                 "PAT",
		"periodical":             "JFULL",
		"personal_communication": "ICOMM",
		"post-weblog":            "BLOG",
		"report":                 "RPRT",
		"software":               "COMP",
		"song":                   "SOUND",
		"standard":               "STAND",
		"thesis":                 "THES",
		"webpage":                "ELEC",
	},
}

var endnoteTypes = &typeTable{
	generic: "Generic",
	toCanonical: map[string]string{
		"bill":                     "bill",
		"blog":                     "post-weblog",
		"book":                     "book",
		"book section":             "chapter",
		"case":                     "legal_case",
		"computer program":         "software",
		"conference paper":         "paper-conference",
		"conference proceedings":   "paper-conference",
		"dataset":                  "dataset",
		"edited book":              "book",
		"film or broadcast":        "motion_picture",
		"generic":                  "document",
		"journal article":          "article-journal",
		"legal rule or regulation": "legislation",
		"magazine article":         "article-magazine",
		"manuscript":               "manuscript",
		"map":                      "map",
		"newspaper article":        "article-newspaper",
		"patent":                   "patent",
		"personal communication":   "personal_communication",
		"report":                   "report",
		"standard":                 "standard",
		"thesis":                   "thesis",
		"web page":                 "webpage",
	},
	fromCanonical: map[string]string{
		"article":                "Generic",
		"article-journal":        "Journal Article",
		"article-magazine":       "Magazine Article",
		"article-newspaper":      "Newspaper Article",
		"bill":                   "Bill",
		"book":                   "Book",
		"chapter":                "Book Section",
		"dataset":                "Dataset",
		"document":               "Generic",
		"legal_case":             "Case",
		"legislation":            "Legal Rule or Regulation",
		"manuscript":             "Manuscript",
		"map":                    "Map",
		"motion_picture":         "Film or Broadcast",
		"paper-conference":       "Conference Paper",
		"patent":                 "Patent",
		"personal_communication": "Personal Communication",
		"post-weblog":            "Blog",
		"report":                 "Report",
		"software":               "Computer Program",
		"standard":               "Standard",
		"thesis":                 "Thesis",
		"webpage":                "Web Page",
	},
}

// cslTypes is the identity table: CSL-JSON already speaks the canonical
// vocabulary.
var cslTypes = func() *typeTable {
	t := &typeTable{
		generic:       FallbackType,
		toCanonical:   make(map[string]string, len(CanonicalTypes)),
		fromCanonical: make(map[string]string, len(CanonicalTypes)),
	}
	for _, c := range CanonicalTypes {
		t.toCanonical[strings.ToLower(c)] = c
		t.fromCanonical[c] = c
	}
	return t
}()

var typeTables = map[entry.Format]*typeTable{
	entry.FormatBibTeX:   bibtexTypes,
	entry.FormatBibLaTeX: biblatexTypes,
	entry.FormatRIS:      risTypes,
	entry.FormatEndNote:  endnoteTypes,
	entry.FormatCSLJSON:  cslTypes,
}

// NativeTypes returns every native type name in a format's table, in no
// particular order.
func NativeTypes(format entry.Format) []string {
	t, ok := typeTables[format]
	if !ok {
		return nil
	}
	natives := make([]string, 0, len(t.toCanonical))
	for k := range t.toCanonical {
		natives = append(natives, k)
	}
	return natives
}

// Normalize maps a native type string to its canonical type. Lookup is
// case-insensitive. Unknown types (and unknown formats) map to the
// documented fallback; Normalize never fails.
func Normalize(rawType string, format entry.Format) string {
	t, ok := typeTables[format]
	if !ok {
		return FallbackType
	}
	if c, ok := t.toCanonical[strings.ToLower(strings.TrimSpace(rawType))]; ok {
		return c
	}
	return FallbackType
}

// Denormalize maps a canonical type to a format's native type. lossy is
// true when the format has no native slot and the generic catch-all is
// substituted; it depends only on the (canonicalType, format) pair.
func Denormalize(canonicalType string, format entry.Format) (native string, lossy bool) {
	t, ok := typeTables[format]
	if !ok {
		return canonicalType, true
	}
	if n, ok := t.fromCanonical[canonicalType]; ok {
		return n, false
	}
	return t.generic, true
}
