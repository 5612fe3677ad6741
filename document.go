package doct

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

const (
	// NameKey is the reserved key that carries a document's name in
	// serialized form. It never appears in Keys, Values or Items but is
	// retrievable through Get for round-tripping.
	NameKey = "_name"

	reservedPrefix = "_"
)

// Document is an immutable, named key/value container for structured
// metadata records such as run headers and event descriptors.
//
// A Document is constructed once via [New] and read for its entire
// lifetime. Every write-style operation fails with [ErrDocumentReadOnly]
// without touching any state, so a single Document may be shared across
// concurrent readers with no locking.
//
// Payload values are arbitrary: scalars, nested Documents, plain
// string-keyed maps, or slices (notably slices of Documents). Keys
// beginning with an underscore are reserved: they are hidden from Keys,
// Values, Items and Len but remain visible to Get, Attr and Contains.
//
// To "modify" a Document, unpack it, mutate the returned copy, and
// construct a new one:
//
//	name, dd := doc.Unpack()
//	dd["new_key"] = "aardvark"
//	doc2 := doct.New(name, dd)
type Document struct {
	name    string
	payload map[string]any
}

// New constructs a Document from a name and an initial mapping. The
// entries of initial are copied (top level only); an incoming NameKey
// entry is dropped, the name argument always wins. Payload values are
// not validated.
func New(name string, initial map[string]any) Document {
	payload := make(map[string]any, len(initial))
	for k, v := range initial {
		if k == NameKey {
			continue
		}
		payload[k] = v
	}
	return Document{name: name, payload: payload}
}

// Name returns the document's name.
func (d Document) Name() string {
	return d.name
}

// Get returns the value stored under key, item-style. Get(NameKey)
// returns the document's name so that a document can be round-tripped
// through its raw form. A missing key wraps ErrKeyNotFound.
func (d Document) Get(key string) (any, error) {
	if key == NameKey {
		return d.name, nil
	}
	v, ok := d.payload[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return v, nil
}

// Attr returns the value stored under key, attribute-style. It reads the
// same backing store as Get for every key, including NameKey. A missing
// key wraps ErrAttributeNotFound, never ErrKeyNotFound.
func (d Document) Attr(key string) (any, error) {
	if key == NameKey {
		return d.name, nil
	}
	v, ok := d.payload[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAttributeNotFound, key)
	}
	return v, nil
}

// Contains reports whether key is present, reserved keys included.
func (d Document) Contains(key string) bool {
	if key == NameKey {
		return true
	}
	_, ok := d.payload[key]
	return ok
}

// Keys returns a restartable view over the document's non-reserved keys
// in lexicographic order. Each range over the view produces a full pass.
func (d Document) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range d.sortedKeys() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns a restartable view over the values of the document's
// non-reserved keys, in the order of Keys.
func (d Document) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, k := range d.sortedKeys() {
			if !yield(d.payload[k]) {
				return
			}
		}
	}
}

// Items returns a restartable view over the document's non-reserved
// key/value pairs in lexicographic key order.
func (d Document) Items() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range d.sortedKeys() {
			if !yield(k, d.payload[k]) {
				return
			}
		}
	}
}

// Len returns the number of non-reserved keys. It always equals the
// number of pairs yielded by Items.
func (d Document) Len() int {
	n := 0
	for k := range d.payload {
		if !isReserved(k) {
			n++
		}
	}
	return n
}

// Unpack is the sanctioned mutation escape hatch. It returns the
// document's name and an independent top-level copy of its payload
// (without NameKey) that the caller may freely mutate to build a new
// Document.
func (d Document) Unpack() (name string, payload map[string]any) {
	payload = make(map[string]any, len(d.payload))
	for k, v := range d.payload {
		payload[k] = v
	}
	return d.name, payload
}

// Set always fails with ErrDocumentReadOnly.
func (d Document) Set(key string, value any) error {
	return fmt.Errorf("%w: set %q", ErrDocumentReadOnly, key)
}

// SetAttr always fails with ErrDocumentReadOnly.
func (d Document) SetAttr(key string, value any) error {
	return fmt.Errorf("%w: set attribute %q", ErrDocumentReadOnly, key)
}

// Delete always fails with ErrDocumentReadOnly.
func (d Document) Delete(key string) error {
	return fmt.Errorf("%w: delete %q", ErrDocumentReadOnly, key)
}

// DeleteAttr always fails with ErrDocumentReadOnly.
func (d Document) DeleteAttr(key string) error {
	return fmt.Errorf("%w: delete attribute %q", ErrDocumentReadOnly, key)
}

// Update always fails with ErrDocumentReadOnly.
func (d Document) Update(entries map[string]any) error {
	return fmt.Errorf("%w: update", ErrDocumentReadOnly)
}

// Pop always fails with ErrDocumentReadOnly.
func (d Document) Pop(key string) (any, error) {
	return nil, fmt.Errorf("%w: pop %q", ErrDocumentReadOnly, key)
}

// Equal reports whether two documents have the same name and deeply
// equal payloads.
func (d Document) Equal(other Document) bool {
	if d.name != other.name || len(d.payload) != len(other.payload) {
		return false
	}
	for k, v := range d.payload {
		ov, ok := other.payload[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer by rendering the document with Format.
func (d Document) String() string {
	return Format(d)
}

// RefToUID returns a new Document identical to doc except that field,
// which must hold a nested document carrying a "uid" key, is replaced by
// that uid value. The input document is never mutated. A missing field,
// a non-document value, or a nested document without "uid" wraps
// ErrKeyNotFound.
func RefToUID(doc Document, field string) (Document, error) {
	name, payload := doc.Unpack()
	ref, ok := payload[field]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrKeyNotFound, field)
	}
	sub, ok := mappingOf(ref)
	if !ok {
		return Document{}, fmt.Errorf("%w: %q does not hold a document", ErrKeyNotFound, field)
	}
	uid, ok := sub["uid"]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q has no uid", ErrKeyNotFound, field)
	}
	payload[field] = uid
	return New(name, payload), nil
}

func isReserved(key string) bool {
	return strings.HasPrefix(key, reservedPrefix)
}

// sortedKeys returns the non-reserved payload keys in lexicographic
// order. Go maps are unordered, so this is what makes iteration and
// rendering deterministic.
func (d Document) sortedKeys() []string {
	keys := make([]string, 0, len(d.payload))
	for k := range d.payload {
		if !isReserved(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// mappingOf returns v's entries as a map[string]any when v is a Document
// (non-reserved entries only) or any string-keyed map. It is the shape
// probe shared by the renderers and RefToUID.
func mappingOf(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Document:
		out := make(map[string]any, len(m.payload))
		for k, val := range m.payload {
			if !isReserved(k) {
				out[k] = val
			}
		}
		return out, true
	case map[string]any:
		return m, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out[it.Key().String()] = it.Value().Interface()
	}
	return out, true
}
