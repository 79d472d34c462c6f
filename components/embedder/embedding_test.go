package embedder

import "testing"

func TestUUIDDeterministic(t *testing.T) {
	e := Embedding{
		Object: "caribbean cruise",
		Meta: map[string]string{
			"destination":  "Caribbean",
			"cabin_type":   "Balcony",
			"availability": "available",
		},
	}
	first := e.UUID()
	for i := 0; i < 20; i++ {
		if got := e.UUID(); got != first {
			t.Fatalf("identifier changed between calls: %s vs %s", first, got)
		}
	}

	other := Embedding{
		Object: "caribbean cruise",
		Meta:   map[string]string{"destination": "Alaska"},
	}
	if other.UUID() == first {
		t.Error("different metadata must produce a different identifier")
	}
}
