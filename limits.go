package doct

type Limits struct {
	MaxDocuments       int
	MaxSectionLen      uint64 // compressed payload length as stored in the archive
	MaxUncompressedLen uint64 // JSON bytes after decompression
}

// DefaultLimits returns the limits used for any Limits field left zero.
func DefaultLimits() Limits {
	return Limits{
		MaxDocuments:       10_000,
		MaxSectionLen:      1 << 30,   // 1 GiB stored payload cap
		MaxUncompressedLen: 256 << 20, // 256 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxDocuments == 0 {
		l.MaxDocuments = d.MaxDocuments
	}
	if l.MaxSectionLen == 0 {
		l.MaxSectionLen = d.MaxSectionLen
	}
	if l.MaxUncompressedLen == 0 {
		l.MaxUncompressedLen = d.MaxUncompressedLen
	}
	return l
}
