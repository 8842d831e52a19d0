// Package bookings is the transactional record of reservations. The
// double-booking guard is the partial unique index created in db: inserts
// and updates that collide with an active booking for the same (customer,
// venue, slot start, date) tuple fail with a duplicate key, which this
// package reports as a conflict.
package bookings

import (
	"context"
	"time"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"
	"reveo/mq"
	"reveo/tmz"
	"reveo/utils"
	"reveo/venues"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const systemOverdueReason = "system: overdue, no action taken"

type CreateRequest struct {
	RestaurantID   string `json:"restaurantId"`
	SlotID         string `json:"slotId"`
	Date           string `json:"date"`
	TimeZone       string `json:"timeZone"`
	GuestCount     int    `json:"guestCount"`
	SpecialRequest string `json:"specialRequest"`
}

// CanCancel reports whether a booking in the given status may be cancelled.
func CanCancel(status string) error {
	switch status {
	case models.BookingCancelled:
		return apperr.Conflict("Booking is already cancelled")
	case models.BookingScheduled:
		return nil
	default:
		return apperr.BadRequest("Only scheduled bookings can be cancelled; current status is " + status)
	}
}

// CanCheckIn reports whether a booking may transition to inProgress at now.
func CanCheckIn(status string, end, now time.Time) error {
	switch status {
	case models.BookingInProgress:
		return apperr.Conflict("Booking is already checked in")
	case models.BookingScheduled:
	default:
		return apperr.BadRequest("Only scheduled bookings can be checked in; current status is " + status)
	}
	if now.After(end) {
		return apperr.BadRequest("Booking has already ended")
	}
	return nil
}

func loadSlot(ctx context.Context, venueID, slotID string) (*models.Slot, error) {
	var slot models.Slot
	err := db.SlotsCollection.FindOne(ctx, bson.M{"slotid": slotID, "venueid": venueID}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Slot not found")
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// validateSlotDate checks the future-date rule and that the slot is offered
// on the chosen date's weekday, returning the materialized interval.
func validateSlotDate(slot *models.Slot, date, tz string) (start, end time.Time, err error) {
	today, err := tmz.TodayIn(tz)
	if err != nil {
		return
	}
	if date < today {
		err = apperr.BadRequest("Please select a future date")
		return
	}
	weekday, err := tmz.WeekdayOf(date, tz)
	if err != nil {
		return
	}
	if slot.Day != weekday {
		err = apperr.BadRequest("Selected slot is not offered on a " + weekday)
		return
	}
	start, err = tmz.Combine(date, slot.StartTime)
	if err != nil {
		return
	}
	end, err = tmz.Combine(date, slot.EndTime)
	return
}

func Create(ctx context.Context, customerID string, req CreateRequest) (*models.Booking, error) {
	if req.GuestCount < 1 {
		return nil, apperr.Validation("guestCount must be at least 1")
	}

	venue, err := venues.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	tz := venues.EffectiveTimeZone(venue, req.TimeZone)

	slot, err := loadSlot(ctx, venue.VenueID, req.SlotID)
	if err != nil {
		return nil, err
	}

	start, end, err := validateSlotDate(slot, req.Date, tz)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := models.Booking{
		BookingID:      utils.GetUUID(),
		CustomerID:     customerID,
		VenueID:        venue.VenueID,
		SlotID:         slot.SlotID,
		SlotStart:      slot.StartTime,
		SlotEnd:        slot.EndTime,
		BookingDate:    req.Date,
		StartDateTime:  start,
		EndDateTime:    end,
		GuestCount:     req.GuestCount,
		SpecialRequest: req.SpecialRequest,
		Status:         models.BookingScheduled,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("You already have a booking for this slot on this date")
		}
		return nil, err
	}

	mq.Emit(ctx, models.BookingEvent{
		Code:       mq.CodeBookingCreated,
		BookingID:  booking.BookingID,
		VenueID:    venue.VenueID,
		SenderID:   customerID,
		ReceiverID: venue.OwnerID,
		Title:      "New booking",
		Body:       "A table for " + booking.BookingDate + " at " + booking.SlotStart + " was booked",
	})
	BroadcastUpdate(venue.VenueID)

	return &booking, nil
}

func Update(ctx context.Context, customerID, bookingID string, req CreateRequest) (*models.Booking, error) {
	if req.GuestCount < 1 {
		return nil, apperr.Validation("guestCount must be at least 1")
	}

	var existing models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID, "customerId": customerID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Booking not found")
	}
	if err != nil {
		return nil, err
	}
	if existing.Status != models.BookingScheduled {
		return nil, apperr.BadRequest("Only scheduled bookings can be modified; current status is " + existing.Status)
	}

	venue, err := venues.GetByID(ctx, existing.VenueID)
	if err != nil {
		return nil, err
	}
	tz := venues.EffectiveTimeZone(venue, req.TimeZone)

	slot, err := loadSlot(ctx, venue.VenueID, req.SlotID)
	if err != nil {
		return nil, err
	}
	start, end, err := validateSlotDate(slot, req.Date, tz)
	if err != nil {
		return nil, err
	}

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{
			"slotid":         slot.SlotID,
			"slotStart":      slot.StartTime,
			"slotEnd":        slot.EndTime,
			"bookingDate":    req.Date,
			"startDateTime":  start,
			"endDateTime":    end,
			"guestCount":     req.GuestCount,
			"specialRequest": req.SpecialRequest,
			"updatedAt":      time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		// The unique index also guards moves onto an already-booked tuple.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("You already have a booking for this slot on this date")
		}
		return nil, err
	}

	mq.Emit(ctx, models.BookingEvent{
		Code:       mq.CodeBookingUpdated,
		BookingID:  updated.BookingID,
		VenueID:    venue.VenueID,
		SenderID:   customerID,
		ReceiverID: venue.OwnerID,
		Title:      "Booking updated",
		Body:       "A booking was moved to " + updated.BookingDate + " at " + updated.SlotStart,
	})
	BroadcastUpdate(venue.VenueID)

	return &updated, nil
}

// Cancel transitions a scheduled booking to cancelled. filter scopes the
// lookup to the acting party (customer or venue side).
func Cancel(ctx context.Context, filter bson.M, reason, timezone, cancelledBy string) (*models.Booking, error) {
	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, filter).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Booking not found")
	}
	if err != nil {
		return nil, err
	}
	if err := CanCancel(booking.Status); err != nil {
		return nil, err
	}

	venue, err := venues.GetByID(ctx, booking.VenueID)
	if err != nil {
		return nil, err
	}
	tz := venues.EffectiveTimeZone(venue, timezone)
	now, err := tmz.NowIn(tz)
	if err != nil {
		return nil, err
	}

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"bookingid": booking.BookingID, "status": models.BookingScheduled},
		bson.M{"$set": bson.M{
			"status":       models.BookingCancelled,
			"active":       false,
			"cancelBy":     cancelledBy,
			"cancelReason": reason,
			"cancelAt":     now,
			"updatedAt":    time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			// Lost a race with another transition.
			return nil, apperr.Conflict("Booking is no longer scheduled")
		}
		return nil, err
	}

	receiver := venue.OwnerID
	sender := booking.CustomerID
	if cancelledBy != "customer" {
		receiver = booking.CustomerID
		sender = venue.OwnerID
	}
	mq.Emit(ctx, models.BookingEvent{
		Code:       mq.CodeBookingCancelled,
		BookingID:  updated.BookingID,
		VenueID:    venue.VenueID,
		SenderID:   sender,
		ReceiverID: receiver,
		Title:      "Booking cancelled",
		Body:       "Booking for " + updated.BookingDate + " at " + updated.SlotStart + " was cancelled",
	})
	BroadcastUpdate(venue.VenueID)

	return &updated, nil
}

// CheckIn is the venue-side transition to inProgress.
func CheckIn(ctx context.Context, venueID, bookingID, timezone string) (*models.Booking, error) {
	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID, "venueid": venueID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Booking not found")
	}
	if err != nil {
		return nil, err
	}

	venue, err := venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	tz := venues.EffectiveTimeZone(venue, timezone)
	now, err := tmz.NowIn(tz)
	if err != nil {
		return nil, err
	}
	if err := CanCheckIn(booking.Status, booking.EndDateTime, now); err != nil {
		return nil, err
	}

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"bookingid": bookingID, "status": models.BookingScheduled},
		bson.M{"$set": bson.M{
			"status":      models.BookingInProgress,
			"checkedInAt": now,
			"updatedAt":   time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.Conflict("Booking is no longer scheduled")
		}
		return nil, err
	}

	mq.Emit(ctx, models.BookingEvent{
		Code:       mq.CodeBookingCheckedIn,
		BookingID:  updated.BookingID,
		VenueID:    venueID,
		SenderID:   venue.OwnerID,
		ReceiverID: updated.CustomerID,
		Title:      "Checked in",
		Body:       "Your booking for " + updated.BookingDate + " at " + updated.SlotStart + " is in progress",
	})

	return &updated, nil
}

// AddReview attaches the one-and-only review to a completed booking and
// refreshes the venue's aggregate rating.
func AddReview(ctx context.Context, customerID, bookingID string, rating float64, remarks string) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID, "customerId": customerID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Booking not found")
	}
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingCompleted {
		return nil, apperr.BadRequest("Only completed bookings can be reviewed; current status is " + booking.Status)
	}
	if booking.ReviewAdded {
		return nil, apperr.Conflict("Review already added for this booking")
	}

	review := models.Review{
		ReviewID:   utils.GetUUID(),
		BookingID:  booking.BookingID,
		VenueID:    booking.VenueID,
		CustomerID: customerID,
		Rating:     rating,
		Remarks:    remarks,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		return nil, err
	}

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{"reviewAdded": true, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		return nil, err
	}

	if err := venues.RecomputeRating(ctx, booking.VenueID); err != nil {
		return nil, err
	}

	venue, err := venues.GetByID(ctx, booking.VenueID)
	if err == nil {
		mq.Emit(ctx, models.BookingEvent{
			Code:       mq.CodeReviewAdded,
			BookingID:  booking.BookingID,
			VenueID:    booking.VenueID,
			SenderID:   customerID,
			ReceiverID: venue.OwnerID,
			Title:      "New review",
			Body:       "A customer reviewed their visit",
		})
	}

	return &updated, nil
}
