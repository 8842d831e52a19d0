package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"reveo/apperr"
	"reveo/models"
	"reveo/utils"
	"reveo/venues"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateBooking serves POST /api/app/booking/createBooking.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid JSON payload"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, err := Create(ctx, customerID, req)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": booking})
}

// UpdateBooking serves PUT /api/app/booking/updateBooking/:id.
func UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid JSON payload"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, err := Update(ctx, customerID, ps.ByName("id"), req)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": booking})
}

// GetBookings serves GET /api/app/booking/getBookings. The "booking" query
// parameter selects the status bucket; scheduled is the default.
func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := utils.ParseQueryOptions(r)
	bucket := r.URL.Query().Get("booking")
	if bucket == "" {
		bucket = models.BookingScheduled
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, err := ListForCustomer(ctx, customerID, bucket, opts.TimeZone, opts)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

type cancelRequest struct {
	Reason   string `json:"reason"`
	TimeZone string `json:"timeZone"`
}

// CancelBooking serves PUT /api/app/booking/cancel/:id.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid JSON payload"))
		return
	}
	if req.Reason == "" {
		apperr.Write(w, apperr.Validation("reason is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, err := Cancel(ctx,
		bson.M{"bookingid": ps.ByName("id"), "customerId": customerID},
		req.Reason, req.TimeZone, "customer")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": booking})
}

type reviewRequest struct {
	Rating  float64 `json:"rating"`
	Remarks string  `json:"remarks"`
}

// AddBookingReview serves PUT /api/app/booking/addReview/:id.
func AddBookingReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid JSON payload"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, err := AddReview(ctx, customerID, ps.ByName("id"), req.Rating, req.Remarks)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": booking})
}

// ownedVenue resolves the authenticated owner's venue for the venue-side
// endpoints.
func ownedVenue(ctx context.Context, r *http.Request) (*models.Venue, error) {
	return venues.GetByOwner(ctx, utils.GetUserIDFromRequest(r))
}

// GetVenueBookings serves GET /api/restaurant/booking/getBookings.
func GetVenueBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venue, err := ownedVenue(ctx, r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	opts := utils.ParseQueryOptions(r)
	bucket := r.URL.Query().Get("booking")
	if bucket == "" {
		bucket = models.BookingScheduled
	}

	page, err := ListForVenue(ctx, venue.VenueID, bucket, opts.TimeZone, opts)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// CheckInBooking serves PUT /api/restaurant/booking/checkIn/:id.
func CheckInBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venue, err := ownedVenue(ctx, r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	booking, err := CheckIn(ctx, venue.VenueID, ps.ByName("id"), r.URL.Query().Get("timeZone"))
	if err != nil {
		apperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": booking})
}

// CancelVenueBooking serves PUT /api/restaurant/booking/cancel/:id.
func CancelVenueBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venue, err := ownedVenue(ctx, r)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid JSON payload"))
		return
	}
	if req.Reason == "" {
		apperr.Write(w, apperr.Validation("reason is required"))
		return
	}

	booking, err := Cancel(ctx,
		bson.M{"bookingid": ps.ByName("id"), "venueid": venue.VenueID},
		req.Reason, req.TimeZone, "venue")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"booking": booking})
}
