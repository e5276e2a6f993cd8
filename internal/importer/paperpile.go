// Package importer converts reference-manager export files that are not
// standard bibliographic formats into canonical entries.
package importer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/reflib/refconv/internal/entry"
)

// FlexibleString can unmarshal from either string or number JSON values.
// Paperpile exports are inconsistent about year and month types.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// paperpileItem is a single entry from a Paperpile JSON export. Only the
// fields we map are modeled.
type paperpileItem struct {
	ID        string         `json:"_id"`
	Citekey   string         `json:"citekey"`
	DOI       string         `json:"doi"`
	Title     string         `json:"title"`
	Abstract  string         `json:"abstract"`
	Journal   string         `json:"journal"`
	Volume    FlexibleString `json:"volume"`
	Issue     FlexibleString `json:"issue"`
	Pages     string         `json:"pages"`
	URL       []string       `json:"url"`
	Published struct {
		Year  FlexibleString `json:"year"`
		Month FlexibleString `json:"month"`
		Day   FlexibleString `json:"day"`
	} `json:"published"`
	Author []struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"author"`
	Attachments []struct {
		ArticlePDF int    `json:"article_pdf"` // 1 = main PDF, 0 = supplement
		Filename   string `json:"filename"`
	} `json:"attachments"`
}

// ParsePaperpile parses a Paperpile JSON export. Items missing a title
// are rejected with an error warning; everything else is converted on a
// best-effort basis.
func ParsePaperpile(data []byte) *entry.ConversionResult {
	var items []paperpileItem
	if err := json.Unmarshal(data, &items); err != nil {
		return entry.ErrorResult(entry.WarnSyntax, fmt.Sprintf("parsing Paperpile JSON: %v", err))
	}

	r := &entry.ConversionResult{}
	ids := entry.IDAllocator{}
	for i, item := range items {
		e, ok := paperpileEntry(item, i)
		if !ok {
			r.Warnings = append(r.Warnings, entry.Warning{
				EntryID:  paperpileID(item, i),
				Severity: entry.SeverityError,
				Type:     entry.WarnMissingField,
				Message:  "missing required field \"title\"",
			})
			continue
		}
		e.ID = ids.Claim(e.ID)
		r.Entries = append(r.Entries, e)
	}
	return r.Finalize()
}

func paperpileEntry(item paperpileItem, index int) (entry.Entry, bool) {
	if item.Title == "" {
		return entry.Entry{}, false
	}

	e := entry.Entry{
		ID:             paperpileID(item, index),
		Type:           "article-journal",
		Title:          item.Title,
		Abstract:       item.Abstract,
		ContainerTitle: item.Journal,
		Volume:         item.Volume.String(),
		Issue:          item.Issue.String(),
		Page:           item.Pages,
		DOI:            item.DOI,
		Metadata:       &entry.FormatMetadata{Source: entry.FormatCSLJSON},
	}
	if len(item.URL) > 0 {
		e.URL = item.URL[0]
	}

	for _, a := range item.Author {
		e.Author = append(e.Author, entry.Name{Family: a.Last, Given: a.First})
	}

	if y, err := strconv.Atoi(item.Published.Year.String()); err == nil {
		m, d := 0, 0
		if n, err := strconv.Atoi(item.Published.Month.String()); err == nil && n >= 1 && n <= 12 {
			m = n
			if n, err := strconv.Atoi(item.Published.Day.String()); err == nil && n >= 1 && n <= 31 {
				d = n
			}
		}
		e.Issued = entry.NewDate(y, m, d)
	}

	// attachment filenames survive as custom fields
	for _, att := range item.Attachments {
		if att.Filename == "" {
			continue
		}
		if att.ArticlePDF == 1 {
			e.SetCustomField("pdf", att.Filename)
		} else {
			e.SetCustomField("supplement", att.Filename)
		}
	}

	return e, true
}

// paperpileID prefers the citekey, then the Paperpile id, then a
// positional fallback.
func paperpileID(item paperpileItem, index int) string {
	if item.Citekey != "" {
		return item.Citekey
	}
	if item.ID != "" {
		return item.ID
	}
	return fmt.Sprintf("entry%d", index+1)
}
