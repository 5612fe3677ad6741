package doct

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the document as a single JSON object holding the
// reserved NameKey entry plus every payload entry. encoding/json emits
// map keys in sorted order, so output is deterministic. Nested Document
// values marshal recursively through this method.
func (d Document) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.payload)+1)
	for k, v := range d.payload {
		m[k] = v
	}
	m[NameKey] = d.name
	return json.Marshal(m)
}

// UnmarshalJSON decodes a JSON object containing a string NameKey entry;
// everything else becomes the payload. A non-object value or a missing
// or non-string NameKey wraps ErrInvalidDocument. Nested documents come
// back as plain mappings that retain NameKey, so they still render as
// sub-sections. Numbers decode as float64 per encoding/json.
func (d *Document) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	name, ok := m[NameKey].(string)
	if !ok {
		return fmt.Errorf("%w: missing or non-string %q", ErrInvalidDocument, NameKey)
	}
	*d = New(name, m)
	return nil
}
