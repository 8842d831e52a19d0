package slotgen

import (
	"sync"
	"testing"

	"reveo/models"
)

func open(day, start, end string) models.HoursEntry {
	return models.HoursEntry{Day: day, StartTime: start, EndTime: end}
}

func TestBuildGridCoversOpenInterval(t *testing.T) {
	grid, err := BuildGrid([]models.HoursEntry{open("Monday", "09:00", "11:00")}, 60)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(grid))
	}
	if grid[0].StartTime != "09:00" || grid[0].EndTime != "10:00" {
		t.Fatalf("first slot wrong: %+v", grid[0])
	}
	if grid[1].StartTime != "10:00" || grid[1].EndTime != "11:00" {
		t.Fatalf("second slot wrong: %+v", grid[1])
	}
	// Adjacency: no gaps, no overlaps.
	for i := 1; i < len(grid); i++ {
		if grid[i].StartTime != grid[i-1].EndTime {
			t.Fatalf("gap or overlap between %+v and %+v", grid[i-1], grid[i])
		}
	}
}

func TestBuildGridSkipsClosedDays(t *testing.T) {
	grid, err := BuildGrid([]models.HoursEntry{
		{Day: "Sunday", IsClosed: true},
		open("Monday", "10:00", "12:00"),
	}, 30)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	for _, s := range grid {
		if s.Day == "Sunday" {
			t.Fatalf("closed day produced slot %+v", s)
		}
	}
	if len(grid) != 4 {
		t.Fatalf("expected 4 half-hour slots for Monday, got %d", len(grid))
	}
}

func TestBuildGridDropsPartialTrailingSlot(t *testing.T) {
	grid, err := BuildGrid([]models.HoursEntry{open("Tuesday", "09:00", "10:30")}, 60)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if len(grid) != 1 {
		t.Fatalf("expected 1 whole slot, got %d", len(grid))
	}
	if grid[0].EndTime != "10:00" {
		t.Fatalf("trailing partial not dropped: %+v", grid[0])
	}
}

func TestBuildGridDeterministic(t *testing.T) {
	entries := []models.HoursEntry{
		open("Monday", "09:00", "17:00"),
		open("Friday", "12:00", "22:00"),
	}
	a, err := BuildGrid(entries, 45)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	b, err := BuildGrid(entries, 45)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("grid not deterministic: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildGridRejectsMalformedTimes(t *testing.T) {
	if _, err := BuildGrid([]models.HoursEntry{open("Monday", "9am", "11:00")}, 60); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}

func TestKeyedMutexExcludesSameVenueOnly(t *testing.T) {
	km := keyedMutex{busy: make(map[string]bool)}

	if !km.tryAcquire("v1") {
		t.Fatal("first acquire should succeed")
	}
	if km.tryAcquire("v1") {
		t.Fatal("second acquire for same venue should be refused")
	}
	if !km.tryAcquire("v2") {
		t.Fatal("different venue must not be blocked")
	}
	km.release("v1")
	if !km.tryAcquire("v1") {
		t.Fatal("acquire after release should succeed")
	}
}

func TestKeyedMutexUnderContention(t *testing.T) {
	km := keyedMutex{busy: make(map[string]bool)}
	var wins int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if km.tryAcquire("venue") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}
