package nearby

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"reveo/apperr"
	"reveo/utils"

	"github.com/julienschmidt/httprouter"
)

type nearbyRequest struct {
	Latitude   *float64           `json:"latitude"`
	Longitude  *float64           `json:"longitude"`
	Radius     float64            `json:"radius"`
	Type       string             `json:"type"`
	Keyword    string             `json:"keyword"`
	MinRatings map[string]float64 `json:"minimumRatings"`
	SortBy     string             `json:"sortBy"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

// FindRestaurantsNearby serves POST /api/app/booking/findRestaurantsNearby.
func FindRestaurantsNearby(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req nearbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid JSON payload"))
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		apperr.Write(w, apperr.Validation("latitude and longitude are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	results, total, err := FindNearby(ctx, Query{
		Lat:        *req.Latitude,
		Lon:        *req.Longitude,
		RadiusM:    req.Radius,
		Type:       req.Type,
		Keyword:    req.Keyword,
		MinRatings: req.MinRatings,
		SortBy:     req.SortBy,
		Page:       req.Page,
		Limit:      req.Limit,
	})
	if err != nil {
		apperr.Write(w, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"restaurants":      results,
		"totalRestaurants": total,
		"currentPage":      page,
		"totalPages":       utils.TotalPages(int64(total), limit),
	})
}
