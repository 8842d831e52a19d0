package hours

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"reveo/apperr"
	"reveo/models"
	"reveo/slotgen"
	"reveo/utils"
	"reveo/venues"

	"github.com/julienschmidt/httprouter"
)

type setHoursRequest struct {
	Hours []models.HoursEntry `json:"hours"`
}

// SetOperationalHours persists the weekly schedule and fires regeneration in
// the background; the response never waits for the new grid.
func SetOperationalHours(gen *slotgen.Generator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ownerID := utils.GetUserIDFromRequest(r)
		if ownerID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req setHoursRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperr.Write(w, apperr.Validation("Invalid JSON payload"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		venue, err := venues.GetByOwner(ctx, ownerID)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		if err := SetWeek(ctx, venue.VenueID, req.Hours); err != nil {
			apperr.Write(w, err)
			return
		}

		go gen.Regenerate(venue.VenueID)

		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"message":        "Operational hours saved; slots are being regenerated",
			"slotSyncStatus": models.SlotSyncPending,
		})
	}
}

func GetOperationalHours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerID := utils.GetUserIDFromRequest(r)
	if ownerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venue, err := venues.GetByOwner(ctx, ownerID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	week, err := GetWeek(ctx, venue.VenueID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if week == nil {
		week = []models.HoursEntry{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"hours": week})
}
