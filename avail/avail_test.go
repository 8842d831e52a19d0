package avail

import (
	"testing"

	"reveo/models"
)

func slot(id, start, end string) models.Slot {
	return models.Slot{SlotID: id, Day: "Monday", StartTime: start, EndTime: end, IsActive: true}
}

func TestFilterExcludesBlockedSlots(t *testing.T) {
	slots := []models.Slot{slot("a", "09:00", "10:00"), slot("b", "10:00", "11:00")}

	got := Filter(slots, map[string]bool{"a": true}, "")
	if len(got) != 1 || got[0].SlotID != "b" {
		t.Fatalf("expected only slot b, got %+v", got)
	}

	// Same slots without the block: unavailability is per-date, not permanent.
	got = Filter(slots, nil, "")
	if len(got) != 2 {
		t.Fatalf("expected both slots without block, got %+v", got)
	}
}

func TestFilterExcludesElapsedSlotsToday(t *testing.T) {
	slots := []models.Slot{
		slot("a", "09:00", "10:00"),
		slot("b", "10:30", "11:30"),
		slot("c", "12:00", "13:00"),
	}

	got := Filter(slots, nil, "10:30")
	if len(got) != 2 {
		t.Fatalf("expected 2 slots at cutoff 10:30, got %+v", got)
	}
	// 10:30 start is not strictly before 10:30, so it stays.
	if got[0].SlotID != "b" || got[1].SlotID != "c" {
		t.Fatalf("wrong slots survived: %+v", got)
	}

	// Future date: no cutoff applied.
	got = Filter(slots, nil, "")
	if len(got) != 3 {
		t.Fatalf("future date must not drop elapsed slots, got %+v", got)
	}
}

func TestFilterSortsByStartTime(t *testing.T) {
	slots := []models.Slot{
		slot("c", "12:00", "13:00"),
		slot("a", "09:00", "10:00"),
		slot("b", "10:00", "11:00"),
	}
	got := Filter(slots, nil, "")
	for i := 1; i < len(got); i++ {
		if got[i-1].StartTime > got[i].StartTime {
			t.Fatalf("not sorted: %+v", got)
		}
	}
}

func TestFilterEmptyInput(t *testing.T) {
	if got := Filter(nil, nil, ""); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
