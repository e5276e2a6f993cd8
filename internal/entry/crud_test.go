package entry

import (
	"reflect"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{
			ID:      "smith2024",
			Type:    "article-journal",
			Author:  []Name{{Family: "Smith", Given: "John"}},
			Issued:  NewDate(2024, 0, 0),
			Keyword: "genomics; evolution",
		},
		{
			ID:     "doe2020",
			Type:   "book",
			Author: []Name{{Family: "Doe", Given: "Jane"}},
			Issued: NewDate(2020, 0, 0),
		},
		{
			ID:   "anon1999",
			Type: "book",
		},
	}
}

func TestFilter(t *testing.T) {
	entries := testEntries()

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"by type", Criteria{Type: "book"}, []string{"doe2020", "anon1999"}},
		{"by author", Criteria{AuthorFamily: "smith"}, []string{"smith2024"}},
		{"by year", Criteria{Year: 2020}, []string{"doe2020"}},
		{"by keyword", Criteria{Keyword: "EVOLUTION"}, []string{"smith2024"}},
		{"combined", Criteria{Type: "book", Year: 2020}, []string{"doe2020"}},
		{"zero criteria match all", Criteria{}, []string{"smith2024", "doe2020", "anon1999"}},
		{"no match", Criteria{Type: "thesis"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range Filter(entries, tt.c) {
				got = append(got, e.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMerge_ByID(t *testing.T) {
	a := []Entry{{ID: "x", Title: "First"}, {ID: "y"}}
	b := []Entry{{ID: "x", Title: "Second"}, {ID: "z"}}

	got := Merge([][]Entry{a, b}, "id")

	if len(got) != 3 {
		t.Fatalf("Merge() = %d entries, want 3", len(got))
	}
	if got[0].Title != "First" {
		t.Errorf("duplicate id kept %q, want first occurrence", got[0].Title)
	}
}

func TestMerge_ByDOI(t *testing.T) {
	a := []Entry{{ID: "a", DOI: "10.1000/xyz"}, {ID: "noDOI1"}}
	b := []Entry{{ID: "b", DOI: "https://doi.org/10.1000/XYZ"}, {ID: "noDOI2"}}

	got := Merge([][]Entry{a, b}, "doi")

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	want := []string{"a", "noDOI1", "noDOI2"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Merge() ids = %v, want %v", ids, want)
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1000/xyz", "10.1000/xyz"},
		{"https://doi.org/10.1000/XYZ", "10.1000/xyz"},
		{"http://doi.org/10.1000/xyz", "10.1000/xyz"},
		{"doi:10.1000/xyz", "10.1000/xyz"},
		{"DOI:10.1000/xyz", "10.1000/xyz"},
		{"  10.1000/xyz  ", "10.1000/xyz"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDOI(tt.in); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyUpdate(t *testing.T) {
	e := Entry{ID: "x", Type: "book", Title: "Old", Volume: "1"}

	newTitle := "New"
	got := ApplyUpdate(e, Update{Title: &newTitle})

	if got.Title != "New" {
		t.Errorf("Title = %q, want New", got.Title)
	}
	if got.Type != "book" || got.Volume != "1" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if e.Title != "Old" {
		t.Error("input entry mutated")
	}
}

func TestDelete(t *testing.T) {
	entries := testEntries()

	got := Delete(entries, []string{"doe2020", "missing"})

	if len(got) != 2 {
		t.Fatalf("Delete() = %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.ID == "doe2020" {
			t.Error("deleted entry still present")
		}
	}
}
