package entry

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// entryFields is Entry without its methods, so the codec below can use
// the plain struct-tag encoding without recursing.
type entryFields Entry

// entryJSONKeys is the set of object keys owned by Entry's modeled
// fields, derived from the struct tags.
var entryJSONKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(Entry{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

// MarshalJSON emits the modeled fields by their CSL tags and flattens
// Extra passthrough keys into the same object. Modeled fields win on
// key collisions.
func (e Entry) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(entryFields(e))
	if err != nil || len(e.Extra) == 0 {
		return data, err
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		if _, taken := obj[k]; !taken {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}

// UnmarshalJSON decodes the modeled fields and collects every key the
// struct does not own into Extra, so stored entries keep their
// passthrough values.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*entryFields)(e)); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return err
	}
	for k, v := range obj {
		if entryJSONKeys[k] {
			continue
		}
		if e.Extra == nil {
			e.Extra = make(map[string]any)
		}
		e.Extra[k] = v
	}
	return nil
}
