// Package doct provides a read-only document type for experiment metadata.
//
// A Document is an immutable, name-tagged mapping. Values are reachable both
// by key lookup and by attribute-style access, every write operation fails
// with ErrDocumentReadOnly, and Unpack returns a plain map for callers that
// need to build a modified copy.
//
// # Documents
//
// New copies its initial mapping and tags it with a name. The name is
// reachable under the reserved "_name" key; keys starting with "_" are
// hidden from iteration but stay reachable through Get and Attr.
//
//	doc := doct.New("run_start", map[string]any{
//		"uid":  "4c212c",
//		"time": 1442521007.3438923,
//	})
//	uid, err := doc.Get("uid")
//
// # Rendering
//
// Format renders a document as an indented, reStructuredText-flavored text
// block with per-depth heading underlines; ToHTML renders nested tables.
// Both recurse into sub-documents. PrettyPrintTime turns Unix timestamps
// into human-friendly strings and is applied to "time" fields in HTML
// output.
//
// # Archive Format
//
// Encode and Decode exchange document collections through the DOCT v1
// archive format, a single-stream container:
//   - A 24-byte fixed header with magic bytes, version, and document count
//   - One section per document: a 16-byte section header followed by the
//     document serialized as JSON
//
// Sections are optionally compressed using ZIP, Zstandard, LZ4, or Brotli
// compression.
//
//	var buf bytes.Buffer
//	err := doct.Encode(&buf, docs, doct.WithCompression(doct.CompLZ4))
//	...
//	docs, err := doct.Decode(&buf)
//
// # Security Considerations
//
// The package includes built-in protection against oversized allocations and
// decompression bombs via configurable [Limits]. All size limits are enforced
// during decoding to prevent resource exhaustion attacks.
package doct
