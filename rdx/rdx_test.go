package rdx

import (
	"path/filepath"
	"testing"
)

func TestSlotsKeyMatchesInvalidationPattern(t *testing.T) {
	// A cached availability page must be reachable by the writer-side scan,
	// otherwise regeneration leaves stale grids behind.
	key := SlotsKey("venue1", "2026-09-07")
	ok, err := filepath.Match(slotsPattern("venue1"), key)
	if err != nil {
		t.Fatalf("bad pattern: %v", err)
	}
	if !ok {
		t.Fatalf("pattern %q does not cover key %q", slotsPattern("venue1"), key)
	}

	// Another venue's pages must not be swept.
	ok, _ = filepath.Match(slotsPattern("venue1"), SlotsKey("venue2", "2026-09-07"))
	if ok {
		t.Fatal("pattern must be scoped to one venue")
	}
}

func TestVenueKey(t *testing.T) {
	if VenueKey("v1") != "venue:v1" {
		t.Fatalf("unexpected venue key %q", VenueKey("v1"))
	}
	if VenueKey("v1") == VenueKey("v2") {
		t.Fatal("venue keys must be distinct per venue")
	}
}
