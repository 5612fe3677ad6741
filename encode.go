package doct

import (
	"encoding/json"
	"fmt"
	"io"
)

// Encode writes docs to w using the DOCT v1 archive format.
//
// Each document is serialized as a JSON object carrying its payload plus
// the reserved "_name" key, then compressed into its own section.
//
// By default, Encode will:
//   - Use Zstandard (CompZSTD) compression for every section
//   - Enforce safe default size limits (see [DefaultLimits])
//
// Use WriteOption functions to customize this behavior:
//   - WithCompression(comp): change the section compression
//   - WithWriteLimits(l): set custom size limits
//
// Encode returns ErrLimitExceeded if the document count or any serialized
// document exceeds the configured limits.
func Encode(w io.Writer, docs []Document, opts ...WriteOption) error {
	cfg := writeConfig{
		limits:      DefaultLimits(),
		compression: CompZSTD,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if len(docs) > cfg.limits.MaxDocuments {
		return fmt.Errorf("%w: %d documents", ErrLimitExceeded, len(docs))
	}

	h := fixedHeaderV1{
		Magic:       Magic,
		Version:     VersionV1,
		HeaderFlags: 0,
		DocCount:    uint32(len(docs)),
		Reserved:    0,
	}
	if err := writeFixedHeader(w, h); err != nil {
		return err
	}

	for i := range docs {
		raw, err := json.Marshal(docs[i])
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		if uint64(len(raw)) > cfg.limits.MaxUncompressedLen {
			return fmt.Errorf("%w: document %d is %d bytes uncompressed", ErrLimitExceeded, i, len(raw))
		}
		flags, payload, err := compressPayload(cfg.compression, raw)
		if err != nil {
			return err
		}
		if uint64(len(payload)) > cfg.limits.MaxSectionLen {
			return fmt.Errorf("%w: document %d section is %d bytes", ErrLimitExceeded, i, len(payload))
		}
		sh := sectionHeaderV1{
			SectionType:  uint16(SectionDocument),
			SectionFlags: flags,
			PayloadLen:   uint64(len(payload)),
			Reserved:     0,
		}
		if err := writeSectionHeader(w, sh); err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}
