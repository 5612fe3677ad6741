package doct

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes the document with the same representation as the
// JSON codec: one mapping holding NameKey plus the payload. yaml.v3
// sorts map keys, so output is deterministic.
func (d Document) MarshalYAML() (any, error) {
	m := make(map[string]any, len(d.payload)+1)
	for k, v := range d.payload {
		m[k] = v
	}
	m[NameKey] = d.name
	return m, nil
}

// UnmarshalYAML decodes a YAML mapping with a string NameKey entry;
// everything else becomes the payload. A non-mapping value or a missing
// or non-string NameKey wraps ErrInvalidDocument.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	var m map[string]any
	if err := value.Decode(&m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	name, ok := m[NameKey].(string)
	if !ok {
		return fmt.Errorf("%w: missing or non-string %q", ErrInvalidDocument, NameKey)
	}
	*d = New(name, m)
	return nil
}
