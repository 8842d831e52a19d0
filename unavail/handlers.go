package unavail

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
)

type addUnavailableRequest struct {
	Date     string   `json:"date"`
	SlotIDs  []string `json:"slotIds"`
	TimeZone string   `json:"timeZone"`
}

func AddUnavailableSlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerID := utils.GetUserIDFromRequest(r)
	if ownerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req addUnavailableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid JSON payload"))
		return
	}
	if req.Date == "" {
		apperr.Write(w, apperr.Validation("date is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venue, err := venues.GetByOwner(ctx, ownerID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	if err := ReplaceForDate(ctx, venue.VenueID, req.Date, req.SlotIDs); err != nil {
		apperr.Write(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Unavailability saved for " + req.Date,
	})
}

func GetUnavailableSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerID := utils.GetUserIDFromRequest(r)
	if ownerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := utils.ParseQueryOptions(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venue, err := venues.GetByOwner(ctx, ownerID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	tz := venues.EffectiveTimeZone(venue, opts.TimeZone)
	rows, total, err := ListForVenue(ctx, venue.VenueID, opts.Date, tz, opts.Page, opts.Limit)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if rows == nil {
		rows = []models.UnavailableSlot{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"unavailableSlots": rows,
		"total":            total,
		"currentPage":      opts.Page,
		"totalPages":       utils.TotalPages(total, opts.Limit),
	})
}
