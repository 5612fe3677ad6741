package doct

const (
	VersionV1 uint16 = 1

	fixedHeaderSizeV1 = 24
)

// Magic is the 8-byte DOCT archive signature.
var Magic = [8]byte{'D', 'O', 'C', 'T', '\r', '\n', 0x1A, 0x00}

type SectionType uint16

const (
	SectionDocument SectionType = 1
)

type Compression uint16

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
)

const (
	sectionFlagCompressionMask    uint16 = 0x000F
	sectionFlagHasUncompressedLen uint16 = 0x0010
)
