// Package avail answers "which slots can still be booked at this venue on
// this date". It is read-only: it subtracts per-date unavailability and, for
// today, slots whose start time has already passed. It does not hold or lock
// slots; the booking ledger's unique index is what prevents double-booking.
package avail

import (
	"context"
	"sort"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"
	"reveo/tmz"
	"reveo/unavail"
	"reveo/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// GetAvailability resolves the bookable slots for (venue, date) in the given
// timezone, ordered by start time.
func GetAvailability(ctx context.Context, venueID, timezone, date string) ([]models.Slot, error) {
	today, err := tmz.TodayIn(timezone)
	if err != nil {
		return nil, err
	}
	if date < today {
		return nil, apperr.BadRequest("Please select a future date")
	}

	weekday, err := tmz.WeekdayOf(date, timezone)
	if err != nil {
		return nil, err
	}

	slots, err := utils.FindAndDecode[models.Slot](ctx, db.SlotsCollection, bson.M{
		"venueid":  venueID,
		"day":      weekday,
		"isActive": true,
	})
	if err != nil {
		return nil, err
	}

	blocked, err := unavail.SlotIDsForDate(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	cutoff := ""
	if date == today {
		now, err := tmz.NowIn(timezone)
		if err != nil {
			return nil, err
		}
		cutoff = now.Format(tmz.TimeLayout)
	}

	return Filter(slots, blocked, cutoff), nil
}

// Filter drops blocked slot ids and, when cutoff is non-empty (the query is
// for today), slots starting strictly before cutoff. Result is sorted by
// start time.
func Filter(slots []models.Slot, blocked map[string]bool, cutoff string) []models.Slot {
	out := make([]models.Slot, 0, len(slots))
	for _, slot := range slots {
		if blocked[slot.SlotID] {
			continue
		}
		if cutoff != "" && slot.StartTime < cutoff {
			continue
		}
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}
