package doct

import "testing"

func TestLimitsWithDefaults(t *testing.T) {
	l := (Limits{}).withDefaults()
	if l.MaxDocuments == 0 || l.MaxSectionLen == 0 || l.MaxUncompressedLen == 0 {
		t.Fatal("expected defaults")
	}

	custom := Limits{MaxDocuments: 7}
	custom = custom.withDefaults()
	if custom.MaxDocuments != 7 {
		t.Fatalf("expected custom MaxDocuments, got %d", custom.MaxDocuments)
	}
}

func TestCompressionNameUnknown(t *testing.T) {
	if compressionName(Compression(99)) != "unknown" {
		t.Fatal("expected unknown")
	}
}
