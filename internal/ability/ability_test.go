package ability

import "testing"

func TestCodeRoundTrip(t *testing.T) {
	for _, id := range All() {
		code := id.Code()
		got, ok := FromCode(code)
		if !ok {
			t.Fatalf("FromCode(%d) reported unknown for %v", code, id)
		}
		if got != id {
			t.Fatalf("FromCode(%d) = %v, want %v", code, got, id)
		}
	}
}

func TestFromCodeUnknown(t *testing.T) {
	if _, ok := FromCode(0); ok {
		t.Fatalf("FromCode(0) should be unknown")
	}
	if _, ok := FromCode(255); ok {
		t.Fatalf("FromCode(255) should be unknown")
	}
}

func TestValid(t *testing.T) {
	if !AutoShot.Valid() {
		t.Fatalf("AutoShot should be valid")
	}
	if ID(99).Valid() {
		t.Fatalf("ID(99) should be invalid")
	}
}

func TestDefaultCatalogMatchesCodes(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != len(All()) {
		t.Fatalf("catalog length = %d, want %d", len(catalog), len(All()))
	}
	for i, id := range All() {
		if catalog[i].Code != id.Code() {
			t.Fatalf("catalog[%d].Code = %d, want %d", i, catalog[i].Code, id.Code())
		}
	}
}
