// Package unavail holds per-date overrides that take normally-open slots off
// offer for a single calendar date. Writes are full-day replaces: the new
// set of slot ids is the complete unavailability for that date.
package unavail

import (
	"context"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"
	"reveo/rdx"
	"reveo/tmz"
	"reveo/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// dedupe keeps the first occurrence of each id so a sloppy payload cannot
// skew the ownership count below.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ReplaceForDate purges all unavailability for (venue, date) and inserts one
// row per slot id. Omitting a previously-unavailable slot makes it available
// again.
func ReplaceForDate(ctx context.Context, venueID, date string, slotIDs []string) error {
	if _, err := tmz.Combine(date, "00:00"); err != nil {
		return err
	}

	slotIDs = dedupe(slotIDs)
	slots, err := utils.FindAndDecode[models.Slot](ctx, db.SlotsCollection, bson.M{
		"venueid": venueID,
		"slotid":  bson.M{"$in": slotIDs},
	})
	if err != nil {
		return err
	}
	if len(slots) != len(slotIDs) {
		return apperr.Validation("One or more slots do not belong to this venue")
	}

	if _, err := db.UnavailableSlotsCollection.DeleteMany(ctx, bson.M{"venueid": venueID, "date": date}); err != nil {
		return err
	}

	if len(slots) == 0 {
		rdx.InvalidateAvailability(venueID)
		return nil
	}

	docs := make([]interface{}, 0, len(slots))
	for _, slot := range slots {
		start, err := tmz.Combine(date, slot.StartTime)
		if err != nil {
			return err
		}
		end, err := tmz.Combine(date, slot.EndTime)
		if err != nil {
			return err
		}
		docs = append(docs, models.UnavailableSlot{
			ID:            utils.GetUUID(),
			VenueID:       venueID,
			SlotID:        slot.SlotID,
			Date:          date,
			StartDateTime: start,
			EndDateTime:   end,
		})
	}
	if _, err := db.UnavailableSlotsCollection.InsertMany(ctx, docs); err != nil {
		return err
	}

	rdx.InvalidateAvailability(venueID)
	return nil
}

// SlotIDsForDate is what the availability resolver subtracts.
func SlotIDsForDate(ctx context.Context, venueID, date string) (map[string]bool, error) {
	rows, err := utils.FindAndDecode[models.UnavailableSlot](ctx, db.UnavailableSlotsCollection, bson.M{
		"venueid": venueID,
		"date":    date,
	})
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(rows))
	for _, row := range rows {
		ids[row.SlotID] = true
	}
	return ids, nil
}

// ListForVenue pages through unavailability rows. Without an explicit date
// only future rows (relative to the venue's local clock) are returned.
func ListForVenue(ctx context.Context, venueID, date, timezone string, page, limit int) ([]models.UnavailableSlot, int64, error) {
	filter := bson.M{"venueid": venueID}
	if date != "" {
		filter["date"] = date
	} else {
		now, err := tmz.NowIn(timezone)
		if err != nil {
			return nil, 0, err
		}
		filter["startDateTime"] = bson.M{"$gt": now}
	}

	total, err := db.UnavailableSlotsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startDateTime", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := db.UnavailableSlotsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var rows []models.UnavailableSlot
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
