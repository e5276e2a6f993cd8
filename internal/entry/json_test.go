package entry

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEntryJSONRoundTripKeepsExtra(t *testing.T) {
	e := Entry{
		ID:    "a1",
		Type:  "book",
		Title: "The Study",
		Extra: map[string]any{"original-title": "Die Studie"},
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"original-title":"Die Studie"`) {
		t.Errorf("marshaled entry is missing the passthrough key: %s", data)
	}

	var back Entry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back.Title != "The Study" {
		t.Errorf("Title = %q, want The Study", back.Title)
	}
	if v := back.Extra["original-title"]; v != "Die Studie" {
		t.Errorf(`Extra["original-title"] = %v, want Die Studie`, v)
	}
	if _, leaked := back.Extra["title"]; leaked {
		t.Errorf("modeled field leaked into Extra: %v", back.Extra)
	}
}

func TestEntryJSONModeledFieldWinsCollision(t *testing.T) {
	e := Entry{
		ID:    "a1",
		Type:  "book",
		Title: "Real",
		Extra: map[string]any{"title": "Shadow"},
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if obj["title"] != "Real" {
		t.Errorf(`title = %v, want Real`, obj["title"])
	}
}

func TestEntryJSONMetadataNotCollectedIntoExtra(t *testing.T) {
	data := `{"id": "a1", "type": "book", "_formatMetadata": {"source": "bibtex"}, "note-number": "7"}`

	var e Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if e.Metadata == nil || e.Metadata.Source != FormatBibTeX {
		t.Errorf("Metadata = %+v, want source bibtex", e.Metadata)
	}
	if _, leaked := e.Extra["_formatMetadata"]; leaked {
		t.Errorf("metadata leaked into Extra: %v", e.Extra)
	}
	if v := e.Extra["note-number"]; v != "7" {
		t.Errorf(`Extra["note-number"] = %v, want 7`, v)
	}
}
