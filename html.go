package doct

import (
	"bytes"
	"html/template"
)

// documentHTML is the recursive fragment layout: one table per mapping
// level, one row per key, values escaped by html/template. Fields named
// "time" pass through the humanTime filter at every nesting level.
const documentHTML = `<table>
{{- range . }}
  <tr>
    <th> {{ .Key }} </th>
    <td>
      {{- if .Nested }}
      {{ template "document" .Rows }}
      {{- else if eq .Key "time" }}
      {{ humanTime .Value }}
      {{- else }}
      {{ .Value }}
      {{- end }}
    </td>
  </tr>
{{- end }}
</table>`

var documentTemplate = template.Must(template.New("document").
	Funcs(template.FuncMap{"humanTime": PrettyPrintTime}).
	Parse(documentHTML))

// htmlRow is one rendered table row. Nested marks mapping-shaped values,
// which render as a nested table instead of a scalar cell.
type htmlRow struct {
	Key    string
	Value  any
	Nested bool
	Rows   []htmlRow
}

// ToHTML renders doc as an HTML fragment: one outer table with a row per
// non-reserved key in sorted order, nested tables for mapping-shaped
// values, and the literal field name "time" humanized via
// PrettyPrintTime. Nested Document values keep their reserved keys
// hidden; plain mappings show all entries.
func ToHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, documentRows(doc)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func documentRows(doc Document) []htmlRow {
	rows := make([]htmlRow, 0, doc.Len())
	for _, k := range doc.sortedKeys() {
		rows = append(rows, rowFor(k, doc.payload[k]))
	}
	return rows
}

func rowFor(key string, value any) htmlRow {
	if sub, ok := value.(Document); ok {
		return htmlRow{Key: key, Nested: true, Rows: documentRows(sub)}
	}
	if m, ok := mappingOf(value); ok {
		rows := make([]htmlRow, 0, len(m))
		for _, k := range sortedMapKeys(m) {
			rows = append(rows, rowFor(k, m[k]))
		}
		return htmlRow{Key: key, Nested: true, Rows: rows}
	}
	return htmlRow{Key: key, Value: value}
}
