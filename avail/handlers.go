package avail

import (
	"context"
	"net/http"
	"time"

	"reveo/apperr"
	"reveo/rdx"
	"reveo/tmz"
	"reveo/utils"
	"reveo/venues"

	"github.com/julienschmidt/httprouter"
)

// GetRestaurantSlots serves GET /api/app/booking/getRestaurantSlots/:id.
// Responses are cached per (venue, date); writers invalidate.
func GetRestaurantSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	venueID := ps.ByName("id")
	date := r.URL.Query().Get("date")
	requestTZ := r.URL.Query().Get("timeZone")

	if date == "" {
		apperr.Write(w, apperr.Validation("date is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venue, err := venues.GetByID(ctx, venueID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	tz := venues.EffectiveTimeZone(venue, requestTZ)

	// Today's availability shrinks minute by minute as slots elapse, so only
	// future dates are cacheable.
	today, err := tmz.TodayIn(tz)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	cacheKey := rdx.SlotsKey(venueID, date)
	if date != today {
		if cached, _ := rdx.RdxGet(cacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	slots, err := GetAvailability(ctx, venueID, tz, date)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	data := utils.ToJSON(utils.M{"slots": slots})
	if date != today {
		rdx.RdxSet(cacheKey, string(data))
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
