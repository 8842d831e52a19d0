package venues

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"
	"reveo/rdx"
	"reveo/utils"

	"github.com/julienschmidt/httprouter"
)

type registerRequest struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	TimeZone  string   `json:"timeZone"`
}

func RegisterVenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerID := utils.GetUserIDFromRequest(r)
	if ownerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if utils.GetRoleFromRequest(r) != "restaurant" {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid JSON payload"))
		return
	}
	if req.Name == "" {
		apperr.Write(w, apperr.Validation("name is required"))
		return
	}
	switch req.Type {
	case models.VenueRestaurant, models.VenueLeisure, models.VenueWellness:
	default:
		apperr.Write(w, apperr.Validation("type must be restaurant, leisure or wellness"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	venue := models.Venue{
		VenueID:   utils.GetUUID(),
		Name:      req.Name,
		Type:      req.Type,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		TimeZone:  req.TimeZone,
		OwnerID:   ownerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.VenuesCollection.InsertOne(ctx, venue); err != nil {
		apperr.Write(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"venue": venue})
}

func GetVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	venueID := ps.ByName("id")

	// Try cache
	if cached, _ := rdx.RdxGet(rdx.VenueKey(venueID)); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venue, err := GetByID(ctx, venueID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	data := utils.ToJSON(utils.M{"venue": venue})
	rdx.RdxSet(rdx.VenueKey(venueID), string(data))
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
