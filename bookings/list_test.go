package bookings

import (
	"testing"
	"time"

	"reveo/models"
)

func TestIsOverdueBoundary(t *testing.T) {
	now := time.Date(2026, 9, 7, 20, 0, 0, 0, time.UTC)
	if !IsOverdue(now.Add(-time.Minute), now) {
		t.Fatal("a booking that ended a minute ago is overdue")
	}
	if IsOverdue(now, now) {
		t.Fatal("a booking ending exactly now is still live")
	}
	if IsOverdue(now.Add(time.Minute), now) {
		t.Fatal("a future end is not overdue")
	}
}

func TestLapsedStatus(t *testing.T) {
	cases := map[string]string{
		models.BookingScheduled:  models.BookingCancelled,
		models.BookingInProgress: models.BookingCompleted,
		models.BookingCompleted:  "",
		models.BookingCancelled:  "",
		"archived":               "",
	}
	for status, want := range cases {
		if got := LapsedStatus(status); got != want {
			t.Fatalf("LapsedStatus(%s) = %q, want %q", status, got, want)
		}
	}
}

func TestOverdueUpdatePayload(t *testing.T) {
	now := time.Date(2026, 9, 7, 20, 0, 0, 0, time.UTC)

	cancelled := overdueUpdate(models.BookingCancelled, now)
	if cancelled["status"] != models.BookingCancelled || cancelled["active"] != false {
		t.Fatalf("lapsed scheduled booking must become inactive cancelled: %v", cancelled)
	}
	if cancelled["cancelBy"] != "system" || cancelled["cancelReason"] != systemOverdueReason {
		t.Fatalf("system cancellation must record actor and reason: %v", cancelled)
	}
	if cancelled["cancelAt"] != now {
		t.Fatalf("cancelAt must carry the sweep clock: %v", cancelled)
	}

	completed := overdueUpdate(models.BookingCompleted, now)
	if completed["status"] != models.BookingCompleted || completed["active"] != false {
		t.Fatalf("lapsed in-progress booking must become inactive completed: %v", completed)
	}
	for _, key := range []string{"cancelBy", "cancelReason", "cancelAt"} {
		if _, ok := completed[key]; ok {
			t.Fatalf("completion must not carry cancel fields: %v", completed)
		}
	}
}
