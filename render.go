package doct

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Field names with dedicated rendering: a "descriptors" list expands into
// nested sections, a "data_keys" mapping of mappings renders as an
// aligned table.
const (
	descriptorsKey = "descriptors"
	dataKeysKey    = "data_keys"
)

// headings holds the section underline characters, one per recursion
// depth. The order follows the ReST heading convention: the recommended
// characters first, then every other valid heading character. Depths
// beyond the list cycle.
var headings = []rune{
	'=', '-', '`', ':', '.', '\'', '"', '~', '^', '_', '*', '+', '#',
	'!', '$', '%', '&', '(', ')', ',', '/', ';', '<', '>', '?', '@',
	'[', '\\', ']', '{', '|', '}',
}

// Display alignment hints for key/value lines: keys are truncated to the
// name width, values are padded (never truncated) to the value width.
const (
	fieldNameWidth  = 16
	fieldValueWidth = 40
)

// Format renders doc as human-readable text: a section header (the name
// underlined with the depth's heading character) followed by the
// non-reserved entries in sorted key order. Nested documents and every
// element of a "descriptors" list render as sub-sections after the plain
// fields, indented two spaces per depth. A "data_keys" mapping of
// mappings renders as an aligned table. Output is deterministic: the
// same document always renders to identical bytes.
func Format(doc Document) string {
	return vstr(doc, 0)
}

// vstr is the recursive document walker behind Format. Each call renders
// one section at the given depth and indents everything it returns,
// including its sub-sections, by the depth's prefix.
func vstr(doc Document, depth int) string {
	name := doc.name
	underline := headings[depth%len(headings)]

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(string(underline), utf8.RuneCountInString(name)))

	var sections []Document
	for _, key := range doc.sortedKeys() {
		value := doc.payload[key]
		switch {
		case key == descriptorsKey && isList(value):
			for _, elem := range listItems(value) {
				if sub, ok := asDocument(elem); ok {
					sections = append(sections, sub)
				} else {
					writeScalar(&b, key, elem)
				}
			}
		case key == dataKeysKey && isDataKeysMapping(value):
			b.WriteString("\n")
			b.WriteString(formatDataKeys(value))
		default:
			if sub, ok := asDocument(value); ok {
				sections = append(sections, sub)
				break
			}
			if m, ok := mappingOf(value); ok {
				fmt.Fprintf(&b, "\n%-*s:", fieldNameWidth, key)
				b.WriteString(formatDict(m, 1))
				break
			}
			writeScalar(&b, key, value)
		}
	}
	for _, sub := range sections {
		b.WriteString("\n")
		b.WriteString(vstr(sub, depth+1))
	}
	return indentLines(b.String(), depth)
}

// writeScalar emits one "key: value" line with the key truncated to the
// name width and the value left-justified to the value width.
func writeScalar(b *strings.Builder, key string, value any) {
	fmt.Fprintf(b, "\n%-*s: %-*v", fieldNameWidth, truncateRunes(key, fieldNameWidth), fieldValueWidth, value)
}

// formatDict renders a plain mapping as an indented key/value block,
// recursing one tab deeper for mapping values without emitting a line
// for the intermediate key itself. Keys are sorted at every level.
func formatDict(value map[string]any, tabs int) string {
	var b strings.Builder
	for _, k := range sortedMapKeys(value) {
		v := value[k]
		if m, ok := mappingOf(v); ok {
			b.WriteString(formatDict(m, tabs+1))
			continue
		}
		fmt.Fprintf(&b, "\n%s%-*s: %-*v",
			strings.Repeat("  ", tabs), fieldNameWidth, truncateRunes(k, fieldNameWidth), fieldValueWidth, v)
	}
	return b.String()
}

// isDataKeysMapping reports whether value is a non-empty mapping whose
// values are themselves all mappings, the shape required for tabular
// data_keys rendering. Anything else falls through to the generic
// branches.
func isDataKeysMapping(value any) bool {
	outer, ok := mappingOf(value)
	if !ok || len(outer) == 0 {
		return false
	}
	for _, inner := range outer {
		if _, ok := mappingOf(inner); !ok {
			return false
		}
	}
	return true
}

// formatDataKeys renders a data_keys mapping as an aligned table: one
// row per outer key (sorted), one column per the sorted union of inner
// keys, empty cell where a row lacks a column.
func formatDataKeys(value any) string {
	outer, _ := mappingOf(value)

	seen := make(map[string]struct{})
	for _, inner := range outer {
		m, _ := mappingOf(inner)
		for field := range m {
			seen[field] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	tw := table.NewWriter()
	tw.Style().Format.Header = text.FormatDefault
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignLeft}})

	header := table.Row{"data keys"}
	for _, field := range fields {
		header = append(header, field)
	}
	tw.AppendHeader(header)

	for _, dataKey := range sortedMapKeys(outer) {
		inner, _ := mappingOf(outer[dataKey])
		row := table.Row{dataKey}
		for _, field := range fields {
			if v, ok := inner[field]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

// asDocument reports whether v is document-shaped: a Document value, or
// a string-keyed mapping containing NameKey. The mapping form converts
// to a Document so its reserved keys stay hidden in the rendered body.
func asDocument(v any) (Document, bool) {
	if d, ok := v.(Document); ok {
		return d, true
	}
	m, ok := mappingOf(v)
	if !ok {
		return Document{}, false
	}
	name, ok := m[NameKey]
	if !ok {
		return Document{}, false
	}
	return New(fmt.Sprint(name), m), true
}

// isList reports whether v is list-shaped (a slice or array). Strings
// and mappings are not lists.
func isList(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

// listItems returns v's elements as []any.
func listItems(v any) []any {
	if items, ok := v.([]any); ok {
		return items
	}
	rv := reflect.ValueOf(v)
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// indentLines prefixes every line of s, empty lines included, with two
// spaces per depth level. Each recursion level applies its own prefix to
// everything it returns, so nested sections indent cumulatively.
func indentLines(s string, depth int) string {
	if depth == 0 {
		return s
	}
	prefix := strings.Repeat("  ", depth)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
