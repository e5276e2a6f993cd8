package parser

import (
	"strconv"
	"strings"

	"github.com/reflib/refconv/internal/entry"
)

var monthAbbrevs = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// monthNumber resolves a month given as a numeral ("3", "03") or a name
// ("mar", "March"). Returns 0 when unrecognized.
func monthNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	key := strings.ToLower(s)
	if len(key) > 3 {
		key = key[:3]
	}
	return monthAbbrevs[key]
}

// combineDate builds a PartialDate from separate year/month/day strings,
// the way BibTeX records dates. Returns nil without a parseable year.
func combineDate(year, month, day string) *entry.PartialDate {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return nil
	}

	m := monthNumber(month)
	d := 0
	if m > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(day)); err == nil && n >= 1 && n <= 31 {
			d = n
		}
	}
	return entry.NewDate(y, m, d)
}

// parseDelimitedDate parses "YYYY/MM/DD" (RIS) or "YYYY-MM-DD" dates
// with optional trailing parts. Trailing free text after a third
// delimiter ("2024/06//summer") is ignored. Returns nil without a year.
func parseDelimitedDate(s string) *entry.PartialDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	sep := "/"
	if !strings.Contains(s, "/") && strings.Contains(s, "-") {
		sep = "-"
	}
	parts := strings.Split(s, sep)

	y, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}

	m, d := 0, 0
	if len(parts) > 1 {
		m = monthNumber(parts[1])
	}
	if m > 0 && len(parts) > 2 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil && n >= 1 && n <= 31 {
			d = n
		}
	}
	return entry.NewDate(y, m, d)
}
