// Package entry defines the canonical intermediate model shared by all
// format parsers and generators.
package entry

// Format identifies a supported bibliographic file format.
type Format string

const (
	FormatBibTeX   Format = "bibtex"
	FormatBibLaTeX Format = "biblatex"
	FormatRIS      Format = "ris"
	FormatCSLJSON  Format = "csl-json"
	FormatEndNote  Format = "endnote"
)

// Formats lists every supported format tag.
var Formats = []Format{FormatBibTeX, FormatBibLaTeX, FormatRIS, FormatCSLJSON, FormatEndNote}

// Valid reports whether f is a supported format tag.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Entry is the format-neutral bibliographic record. Field names follow the
// CSL variable vocabulary so CSL-JSON needs no remapping.
type Entry struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Title           string `json:"title,omitempty"`
	ContainerTitle  string `json:"container-title,omitempty"`
	CollectionTitle string `json:"collection-title,omitempty"`

	Author     []Name `json:"author,omitempty"`
	Editor     []Name `json:"editor,omitempty"`
	Translator []Name `json:"translator,omitempty"`

	Issued   *PartialDate `json:"issued,omitempty"`
	Accessed *PartialDate `json:"accessed,omitempty"`

	Volume         string `json:"volume,omitempty"`
	Issue          string `json:"issue,omitempty"`
	Page           string `json:"page,omitempty"`
	Edition        string `json:"edition,omitempty"`
	NumberOfPages  string `json:"number-of-pages,omitempty"`
	ChapterNumber  string `json:"chapter-number,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
	PublisherPlace string `json:"publisher-place,omitempty"`
	Genre          string `json:"genre,omitempty"`
	Language       string `json:"language,omitempty"`

	DOI  string `json:"DOI,omitempty"`
	URL  string `json:"URL,omitempty"`
	ISBN string `json:"ISBN,omitempty"`
	ISSN string `json:"ISSN,omitempty"`

	Abstract string `json:"abstract,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
	Note     string `json:"note,omitempty"`

	// Extra holds canonical-keyed values the struct does not model,
	// copied verbatim from CSL-JSON input.
	Extra map[string]any `json:"-"`

	// Metadata records provenance: which format the entry came from, its
	// native type, and native fields with no canonical mapping.
	Metadata *FormatMetadata `json:"_formatMetadata,omitempty"`
}

// Name is a single contributor. Either Family/Given or Literal is set;
// Literal covers organizations and other unsplittable names.
type Name struct {
	Family  string `json:"family,omitempty"`
	Given   string `json:"given,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// PartialDate is a CSL date: year with optional month and day.
// Missing parts are omitted from the inner slice, never zero.
type PartialDate struct {
	DateParts [][]int `json:"date-parts"`
}

// NewDate builds a PartialDate from year, month, day. Zero month or day
// truncates the parts list at that point.
func NewDate(year, month, day int) *PartialDate {
	parts := []int{year}
	if month > 0 {
		parts = append(parts, month)
		if day > 0 {
			parts = append(parts, day)
		}
	}
	return &PartialDate{DateParts: [][]int{parts}}
}

// Year returns the year, or 0 when the date is empty.
func (d *PartialDate) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// Month returns the month, or 0 when unknown.
func (d *PartialDate) Month() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) < 2 {
		return 0
	}
	return d.DateParts[0][1]
}

// Day returns the day, or 0 when unknown.
func (d *PartialDate) Day() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) < 3 {
		return 0
	}
	return d.DateParts[0][2]
}

// FormatMetadata tracks where an entry was parsed from.
type FormatMetadata struct {
	Source Format `json:"source"`
	// OriginalType is the native type string before normalization.
	OriginalType string `json:"originalType,omitempty"`
	// CustomFields preserves native fields with no canonical mapping,
	// keyed by their native name. Values keep their raw form.
	CustomFields map[string][]string `json:"customFields,omitempty"`
}

// SetCustomField records an unmapped native field on the entry,
// creating the metadata side-table as needed.
func (e *Entry) SetCustomField(name, value string) {
	if e.Metadata == nil {
		e.Metadata = &FormatMetadata{}
	}
	if e.Metadata.CustomFields == nil {
		e.Metadata.CustomFields = make(map[string][]string)
	}
	e.Metadata.CustomFields[name] = append(e.Metadata.CustomFields[name], value)
}
