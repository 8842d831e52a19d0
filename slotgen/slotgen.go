// Package slotgen derives each venue's bookable slot grid from its weekly
// operational hours. Regeneration is a full replace: the old grid (and any
// per-date unavailability that referenced it) is purged before the new grid
// is inserted, so slots always mirror current hours exactly.
package slotgen

import (
	"context"
	"log"
	"sync"
	"time"

	"reveo/bookings"
	"reveo/db"
	"reveo/models"
	"reveo/rdx"
	"reveo/utils"
	"reveo/venues"

	"go.mongodb.org/mongo-driver/bson"
)

// keyedMutex gives mutual exclusion per venue id. A regeneration already in
// flight for a venue makes later calls skip, not queue.
type keyedMutex struct {
	mu   sync.Mutex
	busy map[string]bool
}

func (k *keyedMutex) tryAcquire(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.busy[key] {
		return false
	}
	k.busy[key] = true
	return true
}

func (k *keyedMutex) release(key string) {
	k.mu.Lock()
	delete(k.busy, key)
	k.mu.Unlock()
}

type Generator struct {
	locks       keyedMutex
	StepMinutes int
}

func New(stepMinutes int) *Generator {
	if stepMinutes < 1 {
		stepMinutes = 60
	}
	return &Generator{
		locks:       keyedMutex{busy: make(map[string]bool)},
		StepMinutes: stepMinutes,
	}
}

// Regenerate rebuilds the venue's slot grid from its stored hours. Safe to
// call from a goroutine; errors are logged and recorded on the venue's
// slotSyncStatus, never returned to the HTTP caller.
func (g *Generator) Regenerate(venueID string) {
	if !g.locks.tryAcquire(venueID) {
		log.Printf("[Regen] venue %s already regenerating, skipping", venueID)
		return
	}
	defer g.locks.release(venueID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := g.regenerate(ctx, venueID); err != nil {
		log.Printf("[Regen] venue %s failed: %v", venueID, err)
		venues.SetSlotSyncStatus(ctx, venueID, models.SlotSyncFailed)
		return
	}
	venues.SetSlotSyncStatus(ctx, venueID, models.SlotSyncOK)
	rdx.InvalidateAvailability(venueID)
	bookings.BroadcastUpdate(venueID)
}

func (g *Generator) regenerate(ctx context.Context, venueID string) error {
	step := g.StepMinutes
	if venue, err := venues.GetByID(ctx, venueID); err == nil && venue.SlotDuration > 0 {
		step = venue.SlotDuration
	}

	entries, err := utils.FindAndDecode[models.HoursEntry](ctx, db.HoursCollection, bson.M{"venueid": venueID})
	if err != nil {
		return err
	}

	grid, err := BuildGrid(entries, step)
	if err != nil {
		return err
	}

	// Stale unavailability rows reference slots about to disappear.
	if _, err := db.UnavailableSlotsCollection.DeleteMany(ctx, bson.M{"venueid": venueID}); err != nil {
		return err
	}
	if _, err := db.SlotsCollection.DeleteMany(ctx, bson.M{"venueid": venueID}); err != nil {
		return err
	}

	if len(grid) == 0 {
		return nil
	}

	docs := make([]interface{}, len(grid))
	for i, s := range grid {
		s.SlotID = utils.GetUUID()
		s.VenueID = venueID
		docs[i] = s
	}
	_, err = db.SlotsCollection.InsertMany(ctx, docs)
	return err
}

// BuildGrid splits every open [startTime, endTime) interval into
// step-minute pairs. Closed days contribute nothing; a trailing remainder
// shorter than one step is dropped.
func BuildGrid(entries []models.HoursEntry, stepMinutes int) ([]models.Slot, error) {
	var grid []models.Slot
	for _, entry := range entries {
		if entry.IsClosed {
			continue
		}
		start, err := time.Parse("15:04", entry.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := time.Parse("15:04", entry.EndTime)
		if err != nil {
			return nil, err
		}

		step := time.Duration(stepMinutes) * time.Minute
		for t := start; !t.Add(step).After(end); t = t.Add(step) {
			grid = append(grid, models.Slot{
				Day:       entry.Day,
				StartTime: t.Format("15:04"),
				EndTime:   t.Add(step).Format("15:04"),
				IsActive:  true,
			})
		}
	}
	return grid, nil
}
