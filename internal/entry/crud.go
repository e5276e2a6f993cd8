package entry

import "strings"

// Criteria selects entries in Filter. Zero-value fields match everything.
type Criteria struct {
	Type         string
	AuthorFamily string
	Year         int
	Keyword      string
}

// Filter returns the entries matching every non-zero criterion.
// The input slice is not modified.
func Filter(entries []Entry, c Criteria) []Entry {
	var out []Entry
	for _, e := range entries {
		if c.Type != "" && e.Type != c.Type {
			continue
		}
		if c.AuthorFamily != "" && !hasAuthorFamily(e, c.AuthorFamily) {
			continue
		}
		if c.Year != 0 && e.Issued.Year() != c.Year {
			continue
		}
		if c.Keyword != "" && !strings.Contains(strings.ToLower(e.Keyword), strings.ToLower(c.Keyword)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func hasAuthorFamily(e Entry, family string) bool {
	for _, n := range e.Author {
		if strings.EqualFold(n.Family, family) {
			return true
		}
	}
	return false
}

// Merge combines entry sets, dropping duplicates. dedupeKey is "id" or
// "doi"; the first occurrence of a key wins. Entries without a DOI are
// never considered duplicates under "doi".
func Merge(sets [][]Entry, dedupeKey string) []Entry {
	seen := make(map[string]bool)
	var out []Entry

	for _, set := range sets {
		for _, e := range set {
			var key string
			switch dedupeKey {
			case "doi":
				key = NormalizeDOI(e.DOI)
			default:
				key = e.ID
			}
			if key != "" && seen[key] {
				continue
			}
			if key != "" {
				seen[key] = true
			}
			out = append(out, e)
		}
	}
	return out
}

// NormalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}

// Update describes a partial update. Nil fields leave the entry unchanged.
type Update struct {
	Type     *string
	Title    *string
	Author   *[]Name
	Issued   *PartialDate
	Volume   *string
	Issue    *string
	Page     *string
	DOI      *string
	URL      *string
	Keyword  *string
	Abstract *string
}

// ApplyUpdate returns a copy of e with the non-nil fields of u applied.
func ApplyUpdate(e Entry, u Update) Entry {
	if u.Type != nil {
		e.Type = *u.Type
	}
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Author != nil {
		e.Author = *u.Author
	}
	if u.Issued != nil {
		e.Issued = u.Issued
	}
	if u.Volume != nil {
		e.Volume = *u.Volume
	}
	if u.Issue != nil {
		e.Issue = *u.Issue
	}
	if u.Page != nil {
		e.Page = *u.Page
	}
	if u.DOI != nil {
		e.DOI = *u.DOI
	}
	if u.URL != nil {
		e.URL = *u.URL
	}
	if u.Keyword != nil {
		e.Keyword = *u.Keyword
	}
	if u.Abstract != nil {
		e.Abstract = *u.Abstract
	}
	return e
}

// Delete returns entries with the given ids removed.
func Delete(entries []Entry, ids []string) []Entry {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	var out []Entry
	for _, e := range entries {
		if !drop[e.ID] {
			out = append(out, e)
		}
	}
	return out
}
