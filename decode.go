package doct

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a DOCT archive from r and returns its documents.
//
// The decoding process:
//  1. Reads and validates the 24-byte fixed header
//  2. Reads one section per document, in order
//  3. Decompresses each section and unmarshals it as a JSON object
//
// By default, Decode enforces safe default size limits (see [DefaultLimits]).
// Use WithReadLimits to set custom limits.
//
// Decode returns ErrInvalidMagic if the stream is not a DOCT archive,
// ErrUnsupportedVersion if the version is not 1, ErrLimitExceeded if any
// size limit is exceeded, and ErrInvalidPayload if a section does not
// decompress or parse as a document. Bytes past the final section are
// left unread.
func Decode(r io.Reader, opts ...ReadOption) ([]Document, error) {
	cfg := readConfig{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	h, err := readFixedHeader(r)
	if err != nil {
		return nil, err
	}
	if h.Magic != Magic {
		return nil, ErrInvalidMagic
	}
	if h.Version != VersionV1 {
		return nil, ErrUnsupportedVersion
	}
	if h.HeaderFlags != 0 {
		return nil, fmt.Errorf("%w: unknown header flags %#x", ErrInvalidHeader, h.HeaderFlags)
	}
	if h.Reserved != 0 {
		return nil, fmt.Errorf("%w: reserved must be zero", ErrInvalidHeader)
	}
	if uint64(h.DocCount) > uint64(cfg.limits.MaxDocuments) {
		return nil, fmt.Errorf("%w: %d documents", ErrLimitExceeded, h.DocCount)
	}

	docs := make([]Document, 0, h.DocCount)
	for i := uint32(0); i < h.DocCount; i++ {
		sec, err := readSectionHeader(r)
		if err != nil {
			return nil, err
		}
		if err := validateSectionHeader(sec, SectionDocument); err != nil {
			return nil, err
		}
		if sec.PayloadLen > cfg.limits.MaxSectionLen {
			return nil, fmt.Errorf("%w: document %d section is %d bytes", ErrLimitExceeded, i, sec.PayloadLen)
		}
		payload := make([]byte, sec.PayloadLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		raw, err := decompressPayload(sec.compression(), sec.SectionFlags, payload, cfg.limits.MaxUncompressedLen)
		if err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: document %d: %v", ErrInvalidPayload, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
