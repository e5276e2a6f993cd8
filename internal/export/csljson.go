package export

import (
	"encoding/json"
	"fmt"

	"github.com/reflib/refconv/internal/entry"
)

// toCSLJSON serializes entries as a CSL-JSON array. Modeled fields come
// from the struct's CSL tags; Extra passthrough values and provenance
// metadata are merged in, so a parse/generate cycle is lossless.
func toCSLJSON(entries []entry.Entry, indent string) (string, error) {
	if indent == "" {
		indent = "  "
	}

	items := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		item, err := cslItem(e)
		if err != nil {
			return "", err
		}
		items = append(items, item)
	}

	data, err := json.MarshalIndent(items, "", indent)
	if err != nil {
		return "", fmt.Errorf("marshaling CSL-JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// cslItem flattens one entry into a JSON object. Entry's MarshalJSON
// merges Extra passthrough keys alongside the modeled fields.
func cslItem(e entry.Entry) (map[string]any, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshaling entry %s: %w", e.ID, err)
	}

	var item map[string]any
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("flattening entry %s: %w", e.ID, err)
	}
	return item, nil
}
