package models

import "time"

// Venue types
const (
	VenueRestaurant = "restaurant"
	VenueLeisure    = "leisure"
	VenueWellness   = "wellness"
)

// Booking statuses
const (
	BookingScheduled  = "scheduled"
	BookingInProgress = "inProgress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// Slot regeneration status, surfaced on the venue so an hours update can be
// observed even though regeneration runs in the background.
const (
	SlotSyncPending = "pending"
	SlotSyncOK      = "ok"
	SlotSyncFailed  = "failed"
)

type Venue struct {
	VenueID         string             `json:"venueid" bson:"venueid"`
	Name            string             `json:"name" bson:"name"`
	Type            string             `json:"type" bson:"type"`
	Address         string             `json:"address,omitempty" bson:"address,omitempty"`
	Latitude        *float64           `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude       *float64           `json:"longitude,omitempty" bson:"longitude,omitempty"`
	TimeZone        string             `json:"timeZone,omitempty" bson:"timeZone,omitempty"`
	OwnerID         string             `json:"ownerId" bson:"ownerId"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	IsDeleted       bool               `json:"isDeleted" bson:"isDeleted"`
	Rating          float64            `json:"rating" bson:"rating"`
	RatingCount     int                `json:"ratingCount" bson:"ratingCount"`
	Criteria        map[string]float64 `json:"criteria,omitempty" bson:"criteria,omitempty"`
	SlotDuration    int                `json:"slotDuration,omitempty" bson:"slotDuration,omitempty"`
	SlotSyncStatus  string             `json:"slotSyncStatus,omitempty" bson:"slotSyncStatus,omitempty"`
	DevicePushToken string             `json:"-" bson:"devicePushToken,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// HoursEntry is one weekday of a venue's weekly schedule. Times are local
// wall-clock HH:MM strings; a closed day carries no times.
type HoursEntry struct {
	VenueID   string `json:"venueid,omitempty" bson:"venueid"`
	Day       string `json:"day" bson:"day"`
	IsClosed  bool   `json:"isClosed" bson:"isClosed"`
	StartTime string `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty" bson:"endTime,omitempty"`
}

type Slot struct {
	SlotID    string `json:"slotid" bson:"slotid"`
	VenueID   string `json:"venueid" bson:"venueid"`
	Day       string `json:"day" bson:"day"`
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime" bson:"endTime"`
	IsActive  bool   `json:"isActive" bson:"isActive"`
}

// UnavailableSlot marks one generated slot as not offered on one calendar
// date. Start/end are materialized from the slot's local times plus the date.
type UnavailableSlot struct {
	ID            string    `json:"id" bson:"id"`
	VenueID       string    `json:"venueid" bson:"venueid"`
	SlotID        string    `json:"slotid" bson:"slotid"`
	Date          string    `json:"date" bson:"date"`
	StartDateTime time.Time `json:"startDateTime" bson:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime" bson:"endDateTime"`
}

type Booking struct {
	BookingID      string     `json:"bookingid" bson:"bookingid"`
	CustomerID     string     `json:"customerId" bson:"customerId"`
	VenueID        string     `json:"venueid" bson:"venueid"`
	SlotID         string     `json:"slotid" bson:"slotid"`
	SlotStart      string     `json:"slotStart" bson:"slotStart"`
	SlotEnd        string     `json:"slotEnd" bson:"slotEnd"`
	BookingDate    string     `json:"bookingDate" bson:"bookingDate"`
	StartDateTime  time.Time  `json:"startDateTime" bson:"startDateTime"`
	EndDateTime    time.Time  `json:"endDateTime" bson:"endDateTime"`
	GuestCount     int        `json:"guestCount" bson:"guestCount"`
	SpecialRequest string     `json:"specialRequest,omitempty" bson:"specialRequest,omitempty"`
	Status         string     `json:"status" bson:"status"`
	Active         bool       `json:"-" bson:"active"`
	CancelBy       string     `json:"cancelBy,omitempty" bson:"cancelBy,omitempty"`
	CancelReason   string     `json:"cancelReason,omitempty" bson:"cancelReason,omitempty"`
	CancelAt       *time.Time `json:"cancelAt,omitempty" bson:"cancelAt,omitempty"`
	CheckedInAt    *time.Time `json:"checkedInAt,omitempty" bson:"checkedInAt,omitempty"`
	ReviewAdded    bool       `json:"reviewAdded" bson:"reviewAdded"`
	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type Review struct {
	ReviewID   string    `json:"reviewid" bson:"reviewid"`
	BookingID  string    `json:"bookingid" bson:"bookingid"`
	VenueID    string    `json:"venueid" bson:"venueid"`
	CustomerID string    `json:"customerId" bson:"customerId"`
	Rating     float64   `json:"rating" bson:"rating"`
	Remarks    string    `json:"remarks,omitempty" bson:"remarks,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

type Notification struct {
	ID         string    `json:"id" bson:"id"`
	SenderID   string    `json:"senderId" bson:"senderId"`
	ReceiverID string    `json:"receiverId" bson:"receiverId"`
	Code       string    `json:"code" bson:"code"`
	Title      string    `json:"title" bson:"title"`
	Body       string    `json:"body" bson:"body"`
	Type       string    `json:"type" bson:"type"`
	Read       bool      `json:"read" bson:"read"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// BookingEvent is what booking operations publish; the notification worker
// turns it into a persisted Notification plus an optional device push.
type BookingEvent struct {
	Code       string `json:"code"`
	BookingID  string `json:"bookingId"`
	VenueID    string `json:"venueId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}
