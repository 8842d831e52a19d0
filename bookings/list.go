package bookings

import (
	"context"
	"time"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"
	"reveo/tmz"
	"reveo/utils"
	"reveo/venues"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListPage is one page of a status bucket plus the bucket's full count.
type ListPage struct {
	Bookings    []models.Booking `json:"bookings"`
	Total       int64            `json:"total"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
}

func validBucket(status string) bool {
	switch status {
	case models.BookingScheduled, models.BookingInProgress, models.BookingCompleted, models.BookingCancelled:
		return true
	}
	return false
}

// ListForCustomer pages one status bucket of a customer's bookings.
func ListForCustomer(ctx context.Context, customerID, bucket, timezone string, opts utils.QueryOptions) (*ListPage, error) {
	return list(ctx, bson.M{"customerId": customerID}, bucket, timezone, opts)
}

// ListForVenue pages one status bucket of a venue's bookings. The venue's
// stored time zone takes precedence for the sweep clock.
func ListForVenue(ctx context.Context, venueID, bucket, timezone string, opts utils.QueryOptions) (*ListPage, error) {
	venue, err := venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return list(ctx, bson.M{"venueid": venueID}, bucket, venues.EffectiveTimeZone(venue, timezone), opts)
}

func list(ctx context.Context, scope bson.M, bucket, timezone string, opts utils.QueryOptions) (*ListPage, error) {
	if !validBucket(bucket) {
		return nil, apperr.Validation("Unknown booking status " + bucket)
	}
	now, err := tmz.NowIn(timezone)
	if err != nil {
		return nil, err
	}

	// Overdue rows are repaired lazily, on read, bounded by the requested
	// window so a huge backlog cannot stall one list call.
	window := int64(opts.Page * opts.Limit)
	switch bucket {
	case models.BookingScheduled, models.BookingCancelled:
		if err := sweepOverdue(ctx, scope, models.BookingScheduled, now, window); err != nil {
			return nil, err
		}
	case models.BookingCompleted:
		if err := sweepOverdue(ctx, scope, models.BookingInProgress, now, window); err != nil {
			return nil, err
		}
	}

	filter := bson.M{"status": bucket}
	for k, v := range scope {
		filter[k] = v
	}

	total, err := db.BookingsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Upcoming buckets read soonest-first, history buckets latest-first.
	order := 1
	if bucket == models.BookingCompleted || bucket == models.BookingCancelled {
		order = -1
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "startDateTime", Value: order}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.BookingsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}

	return &ListPage{
		Bookings:    bookings,
		Total:       total,
		CurrentPage: opts.Page,
		TotalPages:  utils.TotalPages(total, opts.Limit),
	}, nil
}

// IsOverdue reports whether a booking whose interval ends at end has lapsed
// by now. The boundary is exclusive: a booking ending exactly now is live.
func IsOverdue(end, now time.Time) bool {
	return end.Before(now)
}

// LapsedStatus maps a booking status to what an overdue row becomes: an
// unvisited scheduled booking is cancelled, a checked-in one completes.
// Terminal statuses lapse to nothing.
func LapsedStatus(status string) string {
	switch status {
	case models.BookingScheduled:
		return models.BookingCancelled
	case models.BookingInProgress:
		return models.BookingCompleted
	}
	return ""
}

// overdueUpdate builds the repair payload for one lapsed status. A lapsed
// cancellation records that no human acted.
func overdueUpdate(outcome string, now time.Time) bson.M {
	set := bson.M{
		"status":    outcome,
		"active":    false,
		"updatedAt": time.Now().UTC(),
	}
	if outcome == models.BookingCancelled {
		set["cancelBy"] = "system"
		set["cancelReason"] = systemOverdueReason
		set["cancelAt"] = now
	}
	return set
}

// sweepOverdue repairs bookings stuck in status whose end has passed. The
// Mongo filter mirrors IsOverdue ($lt on endDateTime).
func sweepOverdue(ctx context.Context, scope bson.M, status string, now time.Time, limit int64) error {
	outcome := LapsedStatus(status)
	if outcome == "" {
		return nil
	}
	ids, err := overdueIDs(ctx, scope, status, now, limit)
	if err != nil || len(ids) == 0 {
		return err
	}
	_, err = db.BookingsCollection.UpdateMany(ctx,
		bson.M{"bookingid": bson.M{"$in": ids}, "status": status},
		bson.M{"$set": overdueUpdate(outcome, now)},
	)
	return err
}

func overdueIDs(ctx context.Context, scope bson.M, status string, now time.Time, limit int64) ([]string, error) {
	filter := bson.M{"status": status, "endDateTime": bson.M{"$lt": now}}
	for k, v := range scope {
		filter[k] = v
	}
	findOpts := options.Find().
		SetProjection(bson.M{"bookingid": 1}).
		SetLimit(limit)

	cursor, err := db.BookingsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		BookingID string `bson:"bookingid"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.BookingID)
	}
	return ids, nil
}
