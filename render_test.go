package doct

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSimpleDocument(t *testing.T) {
	doc := New("animal", map[string]any{"legs": 4, "uid": "a1b2"})
	want := "\nanimal\n======" +
		fmt.Sprintf("\n%-16s: %-40v", "legs", 4) +
		fmt.Sprintf("\n%-16s: %-40v", "uid", "a1b2")
	assert.Equal(t, want, Format(doc))
}

func TestFormatDeterministic(t *testing.T) {
	a := New("run_start", map[string]any{"uid": "x", "beamline": "CSX", "scan_id": 7})
	b := New("run_start", map[string]any{"scan_id": 7, "uid": "x", "beamline": "CSX"})
	first := Format(a)
	assert.Equal(t, first, Format(a))
	assert.Equal(t, first, Format(b))
}

func TestFormatNestedIndentation(t *testing.T) {
	inner := New("inner", map[string]any{"x": 1})
	mid := New("middle", map[string]any{"inner": inner})
	outer := New("outer", map[string]any{"middle": mid})

	// Each recursion level re-indents everything below it, so a section
	// at depth d carries d*(d+1) leading spaces.
	want := "\nouter\n=====" +
		"\n  \n  middle\n  ------" +
		"\n      \n      inner\n      `````" +
		fmt.Sprintf("\n      %-16s: %-40v", "x", 1)
	assert.Equal(t, want, Format(outer))
}

func TestFormatHeadingCharacterByDepth(t *testing.T) {
	cases := []struct {
		depth     int
		underline string
	}{
		{0, "===="},
		{1, "----"},
		{2, "````"},
		{12, "####"},
		{31, "}}}}"},
		{32, "===="}, // heading characters cycle past the last one
		{33, "----"},
	}
	for _, tc := range cases {
		out := vstr(New("leaf", nil), tc.depth)
		prefix := strings.Repeat("  ", tc.depth)
		assert.Contains(t, out, "leaf\n"+prefix+tc.underline, "depth %d", tc.depth)
	}
}

func TestFormatDescriptorSections(t *testing.T) {
	primary := New("primary", map[string]any{"uid": "d1"})
	baseline := map[string]any{NameKey: "baseline", "uid": "d2"}
	stop := New("run_stop", map[string]any{
		"descriptors": []any{primary, baseline},
		"exit_status": "success",
	})
	out := Format(stop)

	assert.Contains(t, out, "\nrun_stop\n========")
	scalarLine := fmt.Sprintf("\n%-16s: %-40v", "exit_status", "success")
	assert.Contains(t, out, scalarLine)
	assert.Contains(t, out, "\n  primary\n  -------")
	assert.Contains(t, out, "\n  baseline\n  --------")
	assert.Contains(t, out, fmt.Sprintf("\n  %-16s: %-40v", "uid", "d2"))
	assert.NotContains(t, out, NameKey)

	// Plain fields render before the deferred sections, and descriptor
	// sections keep their list order.
	assert.Less(t, strings.Index(out, scalarLine), strings.Index(out, "primary"))
	assert.Less(t, strings.Index(out, "primary"), strings.Index(out, "baseline"))
}

func TestFormatDescriptorsNonDocumentElements(t *testing.T) {
	stop := New("run_stop", map[string]any{"descriptors": []any{"plain-ref", 7}})
	out := Format(stop)
	assert.Contains(t, out, fmt.Sprintf("\n%-16s: %-40v", "descriptors", "plain-ref"))
	assert.Contains(t, out, fmt.Sprintf("\n%-16s: %-40v", "descriptors", 7))
}

func TestFormatDescriptorsNonList(t *testing.T) {
	scalar := New("run_stop", map[string]any{"descriptors": "d-uid"})
	assert.Contains(t, Format(scalar), fmt.Sprintf("\n%-16s: %-40v", "descriptors", "d-uid"))

	mapped := New("run_stop", map[string]any{"descriptors": map[string]any{"a": 1}})
	out := Format(mapped)
	assert.Contains(t, out, fmt.Sprintf("\n%-16s:", "descriptors"))
	assert.Contains(t, out, fmt.Sprintf("\n  %-16s: %-40v", "a", 1))
}

func TestFormatNameMapBecomesSection(t *testing.T) {
	doc := New("header", map[string]any{
		"run_start": map[string]any{NameKey: "run_start", "uid": "rs-1"},
	})
	want := "\nheader\n======" +
		"\n  \n  run_start\n  ---------" +
		fmt.Sprintf("\n  %-16s: %-40v", "uid", "rs-1")
	assert.Equal(t, want, Format(doc))
}

func TestFormatPlainMapping(t *testing.T) {
	doc := New("run_start", map[string]any{
		"config": map[string]any{
			"exposure": 0.5,
			"nested":   map[string]any{"gain": 2},
		},
		"uid": "rs-2",
	})
	want := "\nrun_start\n=========" +
		fmt.Sprintf("\n%-16s:", "config") +
		fmt.Sprintf("\n  %-16s: %-40v", "exposure", 0.5) +
		fmt.Sprintf("\n    %-16s: %-40v", "gain", 2) +
		fmt.Sprintf("\n%-16s: %-40v", "uid", "rs-2")
	assert.Equal(t, want, Format(doc))
}

func TestFormatKeyTruncation(t *testing.T) {
	doc := New("x", map[string]any{"abcdefghijklmnopqrstuvwxyz": 1})
	out := Format(doc)
	assert.Contains(t, out, "\nabcdefghijklmnop: ")
	assert.NotContains(t, out, "qrstuvwxyz")

	// Keys introducing a mapping block are not truncated.
	doc = New("x", map[string]any{"configuration_parameters": map[string]any{"a": 1}})
	assert.Contains(t, Format(doc), "\nconfiguration_parameters:")

	// Leaf keys inside a mapping block are.
	doc = New("x", map[string]any{"c": map[string]any{"abcdefghijklmnopqrstuvwxyz": 1}})
	assert.Contains(t, Format(doc), "\n  abcdefghijklmnop: ")
}

func TestFormatDataKeysTable(t *testing.T) {
	doc := New("descriptor", map[string]any{
		"data_keys": map[string]any{"A": map[string]any{"dtype": "number"}},
	})
	want := "\ndescriptor\n==========\n" +
		"+-----------+--------+\n" +
		"| data keys | dtype  |\n" +
		"+-----------+--------+\n" +
		"| A         | number |\n" +
		"+-----------+--------+"
	assert.Equal(t, want, Format(doc))
}

func TestFormatDataKeysColumnsAndRows(t *testing.T) {
	doc := New("descriptor", map[string]any{
		"data_keys": map[string]any{
			"temp":  map[string]any{"dtype": "number", "source": "PV:T"},
			"image": map[string]any{"dtype": "array", "shape": "1024x1024"},
		},
	})
	out := Format(doc)

	// Columns are the sorted union of the inner keys; rows sort by data key.
	require.Contains(t, out, "data keys")
	assert.Less(t, strings.Index(out, "dtype"), strings.Index(out, "shape"))
	assert.Less(t, strings.Index(out, "shape"), strings.Index(out, "source"))
	assert.Less(t, strings.Index(out, "| image"), strings.Index(out, "| temp"))
	assert.Contains(t, out, "1024x1024")
	assert.Contains(t, out, "PV:T")
}

func TestFormatDataKeysFallThrough(t *testing.T) {
	// Empty mapping: rendered as an (empty) mapping block, not a table.
	doc := New("empty", map[string]any{"data_keys": map[string]any{}})
	want := "\nempty\n=====" + fmt.Sprintf("\n%-16s:", "data_keys")
	assert.Equal(t, want, Format(doc))

	// Values that are not all mappings: plain mapping block.
	doc = New("d", map[string]any{"data_keys": map[string]any{"A": 5}})
	out := Format(doc)
	assert.Contains(t, out, fmt.Sprintf("\n%-16s:", "data_keys"))
	assert.Contains(t, out, fmt.Sprintf("\n  %-16s: %-40v", "A", 5))
	assert.NotContains(t, out, "+--")

	// Non-mapping value: scalar line.
	doc = New("d", map[string]any{"data_keys": "xyz"})
	assert.Contains(t, Format(doc), fmt.Sprintf("\n%-16s: %-40v", "data_keys", "xyz"))
}

func TestFormatNestedDocumentValue(t *testing.T) {
	run := New("run_start", map[string]any{"uid": "rs-3"})
	header := New("header", map[string]any{"start": run, "uid": "h-1"})
	out := Format(header)

	assert.Contains(t, out, "\nheader\n======")
	assert.Contains(t, out, "\n  run_start\n  ---------")
	// The sub-document renders once, as a section, not as a scalar.
	assert.Equal(t, 1, strings.Count(out, "rs-3"))
	assert.Less(t, strings.Index(out, "h-1"), strings.Index(out, "run_start\n"))
}

func TestFormatHidesReservedKeys(t *testing.T) {
	doc := New("run_start", map[string]any{"uid": "u-1", "_cache": "internal"})
	out := Format(doc)
	assert.NotContains(t, out, "_cache")
	assert.NotContains(t, out, "internal")
}

func TestFormatStressDocument(t *testing.T) {
	// A header-shaped document touching every rendering branch at once.
	descriptor := New("descriptor", map[string]any{
		"uid": "desc-1",
		"data_keys": map[string]any{
			"I0":    map[string]any{"dtype": "number", "source": "PV:XF:23ID1-I0"},
			"image": map[string]any{"dtype": "array", "source": "CCD"},
		},
	})
	header := New("header", map[string]any{
		"start": map[string]any{
			NameKey:   "run_start",
			"uid":     "rs-9",
			"config":  map[string]any{"exposure": 0.25},
			"scan_id": 42,
		},
		"descriptors": []any{descriptor},
		"exit_status": "success",
	})
	out := Format(header)

	for _, want := range []string{
		"\nheader\n======",
		"\n  run_start\n  ---------",
		"\n  descriptor\n  ----------",
		"| data keys |",
		"| I0",
		"| image",
	} {
		assert.Contains(t, out, want)
	}
	// Rendering is stable even for the kitchen sink.
	assert.Equal(t, out, Format(header))
}
