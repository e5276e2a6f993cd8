package parser

import (
	"strings"
	"testing"

	"github.com/reflib/refconv/internal/entry"
)

func TestRIS_BasicRecord(t *testing.T) {
	input := "TY  - JOUR\nAU  - Smith, John\nPY  - 2024\nER  - \n"

	r := (&RIS{}).Parse(input)

	if len(r.Entries) != 1 {
		t.Fatalf("Parse() entries = %d, want 1", len(r.Entries))
	}
	e := r.Entries[0]
	if e.ID != "smith2024" {
		t.Errorf("ID = %q, want smith2024", e.ID)
	}
	if e.Type != "article-journal" {
		t.Errorf("Type = %q, want article-journal", e.Type)
	}
	if e.Metadata == nil || e.Metadata.Source != entry.FormatRIS || e.Metadata.OriginalType != "JOUR" {
		t.Errorf("Metadata = %+v, want source ris, originalType JOUR", e.Metadata)
	}
}

func TestRIS_PageRangeFromSPandEP(t *testing.T) {
	input := "TY  - JOUR\nSP  - 100\nEP  - 110\nER  - \n"

	r := (&RIS{}).Parse(input)

	if got := r.Entries[0].Page; got != "100-110" {
		t.Errorf("Page = %q, want 100-110", got)
	}
}

func TestRIS_EndPageOnly(t *testing.T) {
	input := "TY  - JOUR\nEP  - 110\nER  - \n"

	r := (&RIS{}).Parse(input)

	if got := r.Entries[0].Page; got != "110" {
		t.Errorf("Page = %q, want 110 (bare EP accepted)", got)
	}
}

func TestRIS_RepeatedTagsAccumulate(t *testing.T) {
	input := strings.Join([]string{
		"TY  - JOUR",
		"AU  - Smith, John",
		"AU  - Doe, Jane",
		"ED  - Roe, Richard",
		"A3  - Translator, Tom",
		"KW  - genomics",
		"KW  - evolution",
		"ER  - ",
	}, "\n")

	r := (&RIS{}).Parse(input)

	e := r.Entries[0]
	if len(e.Author) != 2 || e.Author[1].Family != "Doe" {
		t.Errorf("Author = %+v, want two authors", e.Author)
	}
	if len(e.Editor) != 1 || e.Editor[0].Family != "Roe" {
		t.Errorf("Editor = %+v, want Roe", e.Editor)
	}
	if len(e.Translator) != 1 {
		t.Errorf("Translator = %+v, want one", e.Translator)
	}
	if e.Keyword != "genomics; evolution" {
		t.Errorf("Keyword = %q, want 'genomics; evolution'", e.Keyword)
	}
}

func TestRIS_Dates(t *testing.T) {
	input := "TY  - JOUR\nPY  - 2024/06/15\nY2  - 2025/01\nER  - \n"

	r := (&RIS{}).Parse(input)

	e := r.Entries[0]
	if e.Issued.Year() != 2024 || e.Issued.Month() != 6 || e.Issued.Day() != 15 {
		t.Errorf("Issued = %v, want [[2024 6 15]]", e.Issued.DateParts)
	}
	if e.Accessed.Year() != 2025 || e.Accessed.Month() != 1 || e.Accessed.Day() != 0 {
		t.Errorf("Accessed = %v, want [[2025 1]]", e.Accessed.DateParts)
	}
}

func TestRIS_FallbackID(t *testing.T) {
	input := "TY  - JOUR\nTI  - Anonymous\nER  - \nTY  - JOUR\nTI  - Also Anonymous\nER  - \n"

	r := (&RIS{}).Parse(input)

	if len(r.Entries) != 2 {
		t.Fatalf("Parse() entries = %d, want 2", len(r.Entries))
	}
	if r.Entries[0].ID != "entry1" || r.Entries[1].ID != "entry2" {
		t.Errorf("IDs = %q, %q, want entry1, entry2", r.Entries[0].ID, r.Entries[1].ID)
	}
}

// A TY before the previous ER closes the prior entry silently during
// Parse; only Validate reports it.
func TestRIS_TYWithoutERAsymmetry(t *testing.T) {
	input := "TY  - JOUR\nTI  - First\nTY  - BOOK\nTI  - Second\nER  - \n"

	p := &RIS{}
	r := p.Parse(input)

	if len(r.Entries) != 2 {
		t.Fatalf("Parse() entries = %d, want 2", len(r.Entries))
	}
	if len(r.Warnings) != 0 {
		t.Errorf("Parse() warnings = %v, want none (lenient parse)", r.Warnings)
	}
	if r.Entries[0].Title != "First" || r.Entries[1].Title != "Second" {
		t.Errorf("titles = %q, %q", r.Entries[0].Title, r.Entries[1].Title)
	}

	warnings := p.Validate(input)
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "TY without preceding ER") {
			found = true
		}
	}
	if !found {
		t.Errorf("Validate() = %v, want a TY-without-ER warning", warnings)
	}
}

func TestRIS_NonConformingLinesSkipped(t *testing.T) {
	input := "junk line\nTY  - JOUR\nlowercase  - nope\nTI  - Kept\nER  - \n"

	r := (&RIS{}).Parse(input)

	if len(r.Entries) != 1 || r.Entries[0].Title != "Kept" {
		t.Errorf("entries = %+v, want title Kept", r.Entries)
	}
}

func TestRIS_UnmappedTagPreserved(t *testing.T) {
	input := "TY  - JOUR\nC1  - Custom value\nER  - \n"

	r := (&RIS{}).Parse(input)

	e := r.Entries[0]
	if e.Metadata == nil || len(e.Metadata.CustomFields["C1"]) != 1 {
		t.Errorf("CustomFields = %+v, want C1 preserved", e.Metadata)
	}
}

func TestRIS_ValidateEmptyInput(t *testing.T) {
	warnings := (&RIS{}).Validate("")
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "no entries") {
		t.Errorf("Validate(\"\") = %v, want 'no entries found'", warnings)
	}
}

func TestRIS_ValidateUnterminatedEntry(t *testing.T) {
	warnings := (&RIS{}).Validate("TY  - JOUR\nTI  - Open\n")
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "not terminated") {
			found = true
		}
	}
	if !found {
		t.Errorf("Validate() = %v, want an unterminated entry warning", warnings)
	}
}

func TestRIS_DuplicateIDsUniquified(t *testing.T) {
	record := "TY  - JOUR\nAU  - Smith, John\nPY  - 2024\nER  - \n"

	r := (&RIS{}).Parse(record + record + record)

	if len(r.Entries) != 3 {
		t.Fatalf("Parse() entries = %d, want 3", len(r.Entries))
	}
	want := []string{"smith2024", "smith2024a", "smith2024b"}
	for i, w := range want {
		if got := r.Entries[i].ID; got != w {
			t.Errorf("Entries[%d].ID = %q, want %q", i, got, w)
		}
	}
}
