package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reflib/refconv/internal/entry"
	"github.com/reflib/refconv/internal/typemap"
)

// CSLJSON parses CSL-JSON input, a single item object or an array of
// items. The vocabulary is already canonical, so fields are copied
// through rather than remapped.
type CSLJSON struct{}

func (p *CSLJSON) Format() entry.Format { return entry.FormatCSLJSON }

func (p *CSLJSON) Parse(content string) *entry.ConversionResult {
	items, errResult := decodeCSLItems(content)
	if errResult != nil {
		return errResult
	}

	r := &entry.ConversionResult{}
	ids := entry.IDAllocator{}
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			r.Warnings = append(r.Warnings, entry.Warning{
				EntryID:  fmt.Sprintf("item%d", i+1),
				Severity: entry.SeverityError,
				Type:     entry.WarnSyntax,
				Message:  "item is not a JSON object",
			})
			continue
		}
		e, warnings := buildCSLEntry(obj, i)
		r.Warnings = append(r.Warnings, warnings...)
		if e != nil {
			e.ID = ids.Claim(e.ID)
			r.Entries = append(r.Entries, *e)
		}
	}
	return r.Finalize()
}

func (p *CSLJSON) Validate(content string) []entry.Warning {
	if strings.TrimSpace(content) == "" {
		return []entry.Warning{noEntriesWarning()}
	}

	items, errResult := decodeCSLItems(content)
	if errResult != nil {
		return errResult.Warnings
	}
	if len(items) == 0 {
		return []entry.Warning{noEntriesWarning()}
	}

	var warnings []entry.Warning
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			warnings = append(warnings, entry.Warning{
				EntryID:  fmt.Sprintf("item%d", i+1),
				Severity: entry.SeverityError,
				Type:     entry.WarnSyntax,
				Message:  "item is not a JSON object",
			})
			continue
		}
		if _, ok := jsonString(obj["id"]); !ok {
			warnings = append(warnings, missingFieldWarning(i, "id"))
		}
		if _, ok := jsonString(obj["type"]); !ok {
			warnings = append(warnings, missingFieldWarning(i, "type"))
		}
	}
	return warnings
}

// decodeCSLItems unmarshals the document and normalizes it to an item
// list. A document-level failure returns a ready-made error result.
func decodeCSLItems(content string) ([]any, *entry.ConversionResult) {
	if strings.TrimSpace(content) == "" {
		return nil, entry.ErrorResult(entry.WarnSyntax, "empty input is not valid JSON")
	}

	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, entry.ErrorResult(entry.WarnSyntax, fmt.Sprintf("invalid JSON: %v", err))
	}

	switch v := raw.(type) {
	case []any:
		return v, nil
	case map[string]any:
		return []any{v}, nil
	}
	return nil, entry.ErrorResult(entry.WarnSyntax, "expected a JSON object or array of objects")
}

// buildCSLEntry converts one item. A nil entry means the item was
// rejected; the warnings explain why.
func buildCSLEntry(obj map[string]any, index int) (*entry.Entry, []entry.Warning) {
	var warnings []entry.Warning

	id, ok := jsonString(obj["id"])
	if !ok {
		return nil, []entry.Warning{missingFieldWarning(index, "id")}
	}
	rawType, ok := jsonString(obj["type"])
	if !ok {
		return nil, []entry.Warning{missingFieldWarning(index, "type")}
	}

	cslType, known := normalizeCSLType(rawType)
	if !known {
		warnings = append(warnings, entry.Warning{
			EntryID:  id,
			Severity: entry.SeverityWarning,
			Type:     entry.WarnUnknownType,
			Message:  fmt.Sprintf("unknown type %q, using %q", rawType, cslType),
		})
	}

	e := entry.Entry{
		ID:   id,
		Type: cslType,
		Metadata: &entry.FormatMetadata{
			Source:       entry.FormatCSLJSON,
			OriginalType: rawType,
		},
	}

	for key, value := range obj {
		switch key {
		case "id", "type", "_formatMetadata":
			continue
		case "author":
			e.Author = decodeCSLNames(value)
		case "editor":
			e.Editor = decodeCSLNames(value)
		case "translator":
			e.Translator = decodeCSLNames(value)
		case "issued":
			e.Issued = decodeCSLDate(value)
		case "accessed":
			e.Accessed = decodeCSLDate(value)
		default:
			if s, ok := jsonString(value); ok && e.SetScalar(key, s) {
				continue
			}
			if e.Extra == nil {
				e.Extra = make(map[string]any)
			}
			e.Extra[key] = value
		}
	}

	return &e, warnings
}

// normalizeCSLType lowercases the raw type and validates it against the
// taxonomy. Underscores become hyphens only when the raw value is not
// itself a taxonomy member, so legal_case and personal_communication
// survive normalization.
func normalizeCSLType(raw string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(raw))
	if typemap.IsCanonical(t) {
		return t, true
	}
	hyphenated := strings.ReplaceAll(t, "_", "-")
	if typemap.IsCanonical(hyphenated) {
		return hyphenated, true
	}
	return typemap.FallbackType, false
}

func decodeCSLNames(value any) []entry.Name {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	var names []entry.Name
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var n entry.Name
		n.Family, _ = jsonString(obj["family"])
		n.Given, _ = jsonString(obj["given"])
		n.Literal, _ = jsonString(obj["literal"])
		if n != (entry.Name{}) {
			names = append(names, n)
		}
	}
	return names
}

func decodeCSLDate(value any) *entry.PartialDate {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	ranges, ok := obj["date-parts"].([]any)
	if !ok || len(ranges) == 0 {
		return nil
	}
	first, ok := ranges[0].([]any)
	if !ok || len(first) == 0 {
		return nil
	}

	var parts []int
	for _, p := range first {
		if n, ok := p.(json.Number); ok {
			if v, err := n.Int64(); err == nil {
				parts = append(parts, int(v))
				continue
			}
		}
		break
	}
	if len(parts) == 0 {
		return nil
	}
	return &entry.PartialDate{DateParts: [][]int{parts}}
}

// jsonString coerces a JSON value to string: strings pass through and
// numbers (numeric ids are common) are stringified. Anything else,
// including null, fails.
func jsonString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	}
	return "", false
}

func missingFieldWarning(index int, field string) entry.Warning {
	return entry.Warning{
		EntryID:  fmt.Sprintf("item%d", index+1),
		Severity: entry.SeverityError,
		Type:     entry.WarnMissingField,
		Message:  fmt.Sprintf("missing required field %q", field),
	}
}
