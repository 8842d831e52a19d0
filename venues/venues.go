package venues

import (
	"context"
	"time"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"
	"reveo/rdx"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetByID(ctx context.Context, venueID string) (*models.Venue, error) {
	var venue models.Venue
	err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": venueID, "isDeleted": false}).Decode(&venue)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Venue not found")
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// GetByOwner resolves the venue behind a venue-side (restaurant) account.
func GetByOwner(ctx context.Context, ownerID string) (*models.Venue, error) {
	var venue models.Venue
	err := db.VenuesCollection.FindOne(ctx, bson.M{"ownerId": ownerID, "isDeleted": false}).Decode(&venue)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("No venue registered for this account")
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// EffectiveTimeZone prefers the venue's stored canonical timezone; the
// request-supplied zone is only a fallback for venues that predate the
// field.
func EffectiveTimeZone(venue *models.Venue, requestTZ string) string {
	if venue != nil && venue.TimeZone != "" {
		return venue.TimeZone
	}
	return requestTZ
}

// SetSlotSyncStatus records the outcome of a background slot regeneration so
// callers of setOperationalHours can observe it.
func SetSlotSyncStatus(ctx context.Context, venueID, status string) {
	_, _ = db.VenuesCollection.UpdateOne(ctx,
		bson.M{"venueid": venueID},
		bson.M{"$set": bson.M{"slotSyncStatus": status, "updatedAt": time.Now().UTC()}},
	)
	rdx.InvalidateVenue(venueID)
}

// RecomputeRating re-reads every review for the venue and stores the
// arithmetic mean. Concurrent review writers race on the final write
// (last-write-wins); ratings are approximate by nature and this is accepted.
func RecomputeRating(ctx context.Context, venueID string) error {
	cur, err := db.ReviewsCollection.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "venueid", Value: venueID}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$venueid"},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var result struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return err
		}
	}

	_, err = db.VenuesCollection.UpdateOne(ctx,
		bson.M{"venueid": venueID},
		bson.M{"$set": bson.M{
			"rating":      result.Avg,
			"ratingCount": result.Count,
			"updatedAt":   time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	rdx.InvalidateVenue(venueID)
	return nil
}
