// Package hours owns each venue's weekly open/close schedule. Updates are a
// batch replace of all 7 weekday entries and kick off background slot
// regeneration.
package hours

import (
	"context"
	"time"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidateWeek enforces the batch-replace contract: exactly seven entries,
// one per weekday, and open days must carry both times.
func ValidateWeek(entries []models.HoursEntry) error {
	if len(entries) != 7 {
		return apperr.Validation("Operational hours require exactly 7 entries, one per weekday")
	}

	seen := make(map[string]bool, 7)
	for _, entry := range entries {
		valid := false
		for _, day := range weekdays {
			if entry.Day == day {
				valid = true
				break
			}
		}
		if !valid {
			return apperr.Validation("Unknown weekday: " + entry.Day)
		}
		if seen[entry.Day] {
			return apperr.Validation("Duplicate weekday: " + entry.Day)
		}
		seen[entry.Day] = true

		if !entry.IsClosed && (entry.StartTime == "" || entry.EndTime == "") {
			return apperr.Validation("Open day " + entry.Day + " needs both startTime and endTime")
		}
	}
	return nil
}

// SetWeek upserts all seven weekday rows for the venue. The caller schedules
// slot regeneration afterwards; SetWeek itself only persists the schedule.
func SetWeek(ctx context.Context, venueID string, entries []models.HoursEntry) error {
	if err := ValidateWeek(entries); err != nil {
		return err
	}

	for _, entry := range entries {
		entry.VenueID = venueID
		update := bson.M{
			"isClosed":  entry.IsClosed,
			"startTime": entry.StartTime,
			"endTime":   entry.EndTime,
		}
		_, err := db.HoursCollection.UpdateOne(ctx,
			bson.M{"venueid": venueID, "day": entry.Day},
			bson.M{
				"$set":         update,
				"$setOnInsert": bson.M{"venueid": venueID, "day": entry.Day},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}

	_, err := db.VenuesCollection.UpdateOne(ctx,
		bson.M{"venueid": venueID},
		bson.M{"$set": bson.M{"slotSyncStatus": models.SlotSyncPending, "updatedAt": time.Now().UTC()}},
	)
	return err
}

// GetWeek returns the stored entries, ordered Monday..Sunday. Empty if the
// venue never set hours.
func GetWeek(ctx context.Context, venueID string) ([]models.HoursEntry, error) {
	cur, err := db.HoursCollection.Find(ctx, bson.M{"venueid": venueID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byDay := make(map[string]models.HoursEntry, 7)
	for cur.Next(ctx) {
		var entry models.HoursEntry
		if err := cur.Decode(&entry); err != nil {
			return nil, err
		}
		byDay[entry.Day] = entry
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	var week []models.HoursEntry
	for _, day := range weekdays {
		if entry, ok := byDay[day]; ok {
			week = append(week, entry)
		}
	}
	return week, nil
}
