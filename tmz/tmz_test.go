package tmz

import (
	"testing"
	"time"
)

func TestWeekdayOf(t *testing.T) {
	// 2026-09-07 is a Monday everywhere; a calendar date has one weekday
	// regardless of zone.
	for _, tz := range []string{"UTC", "Asia/Tokyo", "America/New_York"} {
		day, err := WeekdayOf("2026-09-07", tz)
		if err != nil {
			t.Fatalf("WeekdayOf(%s): %v", tz, err)
		}
		if day != "Monday" {
			t.Fatalf("expected Monday in %s, got %s", tz, day)
		}
	}
}

func TestWeekdayOfRejectsBadInput(t *testing.T) {
	if _, err := WeekdayOf("07-09-2026", "UTC"); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := WeekdayOf("2026-09-07", "Mars/Olympus"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
	if _, err := WeekdayOf("2026-09-07", ""); err == nil {
		t.Fatal("expected error for missing timezone")
	}
}

func TestTodayInRejectsBadZone(t *testing.T) {
	if today, err := TodayIn("Mars/Olympus"); err == nil || today != "" {
		t.Fatalf("expected error and empty date for unknown zone, got %q, %v", today, err)
	}
}

func TestCombine(t *testing.T) {
	got, err := Combine("2026-09-07", "09:30")
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	want := time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCombineRejectsBadTime(t *testing.T) {
	if _, err := Combine("2026-09-07", "9:3"); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestNowAgreesWithToday(t *testing.T) {
	// NowIn and TodayIn must resolve the same calendar date in the same
	// zone; a skew here would make "today" slot filtering disagree with the
	// past-date guard.
	for _, tz := range []string{"UTC", "Pacific/Auckland", "America/Los_Angeles"} {
		now, err := NowIn(tz)
		if err != nil {
			t.Fatalf("NowIn(%s): %v", tz, err)
		}
		today, err := TodayIn(tz)
		if err != nil {
			t.Fatalf("TodayIn(%s): %v", tz, err)
		}
		if got := now.Format(DateLayout); got != today {
			t.Fatalf("NowIn date %s != TodayIn %s in %s", got, today, tz)
		}
		if now.Location() != time.UTC {
			t.Fatalf("NowIn must be UTC-labeled, got %v", now.Location())
		}
	}
}
