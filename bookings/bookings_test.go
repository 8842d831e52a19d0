package bookings

import (
	"strings"
	"testing"
	"time"

	"reveo/apperr"
	"reveo/models"
	"reveo/tmz"
)

func TestCanCancel(t *testing.T) {
	if err := CanCancel(models.BookingScheduled); err != nil {
		t.Fatalf("scheduled booking must be cancellable: %v", err)
	}
	if err := CanCancel(models.BookingCancelled); !apperr.IsConflict(err) {
		t.Fatalf("cancelling twice must conflict, got %v", err)
	}
	for _, status := range []string{models.BookingInProgress, models.BookingCompleted} {
		err := CanCancel(status)
		if err == nil || apperr.IsConflict(err) {
			t.Fatalf("cancel from %s must be a plain rejection, got %v", status, err)
		}
	}
}

func TestCanCheckIn(t *testing.T) {
	now := time.Date(2026, 9, 7, 19, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	if err := CanCheckIn(models.BookingScheduled, future, now); err != nil {
		t.Fatalf("scheduled booking before its end must be checkable: %v", err)
	}
	if err := CanCheckIn(models.BookingInProgress, future, now); !apperr.IsConflict(err) {
		t.Fatalf("double check-in must conflict, got %v", err)
	}
	if err := CanCheckIn(models.BookingScheduled, past, now); err == nil {
		t.Fatal("check-in after the booking ended must be rejected")
	}
	if err := CanCheckIn(models.BookingCompleted, future, now); err == nil {
		t.Fatal("check-in on a completed booking must be rejected")
	}
	// Exactly at the end is still allowed; only strictly after is late.
	if err := CanCheckIn(models.BookingScheduled, now, now); err != nil {
		t.Fatalf("check-in exactly at the end must pass: %v", err)
	}
}

func TestValidateSlotDateRejectsPast(t *testing.T) {
	slot := &models.Slot{Day: "Wednesday", StartTime: "18:00", EndTime: "19:00"}
	_, _, err := validateSlotDate(slot, "2020-01-01", "UTC")
	if err == nil || !strings.Contains(err.Error(), "future date") {
		t.Fatalf("past date must be rejected, got %v", err)
	}
}

func TestValidateSlotDateWeekdayMismatch(t *testing.T) {
	// 2099-01-01 is a Thursday.
	day, err := tmz.WeekdayOf("2099-01-01", "UTC")
	if err != nil {
		t.Fatal(err)
	}

	slot := &models.Slot{Day: day, StartTime: "18:00", EndTime: "19:00"}
	start, end, err := validateSlotDate(slot, "2099-01-01", "UTC")
	if err != nil {
		t.Fatalf("matching weekday must pass: %v", err)
	}
	if start.Format("15:04") != "18:00" || end.Format("15:04") != "19:00" {
		t.Fatalf("materialized interval wrong: %v - %v", start, end)
	}

	wrong := &models.Slot{Day: "Monday", StartTime: "18:00", EndTime: "19:00"}
	if _, _, err := validateSlotDate(wrong, "2099-01-01", "UTC"); err == nil {
		t.Fatal("slot on a different weekday must be rejected")
	}
}

func TestValidBucket(t *testing.T) {
	for _, status := range []string{
		models.BookingScheduled, models.BookingInProgress,
		models.BookingCompleted, models.BookingCancelled,
	} {
		if !validBucket(status) {
			t.Fatalf("%s must be a valid bucket", status)
		}
	}
	if validBucket("archived") || validBucket("") {
		t.Fatal("unknown buckets must be rejected")
	}
}

func TestGenerateQRPayloadShape(t *testing.T) {
	payload := GenerateQRPayload("venue1", "booking1")
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		t.Fatalf("expected venue|booking|ts|sig, got %q", payload)
	}
	if parts[0] != "venue1" || parts[1] != "booking1" {
		t.Fatalf("payload identifiers wrong: %q", payload)
	}
	if parts[3] == "" {
		t.Fatal("signature missing")
	}

	// Same inputs within the same second sign identically.
	if again := GenerateQRPayload("venue1", "booking1"); strings.Split(again, "|")[3] == "" {
		t.Fatal("signature must always be present")
	}
}
