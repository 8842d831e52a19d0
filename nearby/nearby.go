// Package nearby ranks venues by great-circle distance from a searcher.
// Discovery only: it never touches slots or bookings.
package nearby

import (
	"context"
	"math"
	"sort"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"
	"reveo/utils"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	earthRadiusKm  = 6371.0
	assumedSpeedKm = 30.0 // km/h, for the ETA estimate
)

type Query struct {
	Lat        float64
	Lon        float64
	RadiusM    float64
	Type       string
	Keyword    string
	MinRatings map[string]float64
	SortBy     string // "distance" (default) or "rating"
	Page       int
	Limit      int
}

type Result struct {
	models.Venue
	DistanceKm float64 `json:"distance"`
	EtaMinutes float64 `json:"eta"`
}

// Haversine distance in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	la1 := lat1 * math.Pi / 180.0
	la2 := lat2 * math.Pi / 180.0
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(la1)*math.Cos(la2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * 1000 * c
}

// Rank filters, sorts and paginates candidates. Venues without coordinates
// are skipped, the radius boundary is inclusive, and the returned total is
// the match count before pagination.
func Rank(candidates []models.Venue, q Query) ([]Result, int) {
	var matched []Result
	for _, venue := range candidates {
		if venue.Latitude == nil || venue.Longitude == nil {
			continue
		}
		if q.Keyword != "" && !utils.ContainsIgnoreCase(venue.Name, q.Keyword) {
			continue
		}
		if !meetsRatingMinimums(venue, q.MinRatings) {
			continue
		}
		distM := Haversine(q.Lat, q.Lon, *venue.Latitude, *venue.Longitude)
		if distM > q.RadiusM {
			continue
		}
		distKm := distM / 1000
		matched = append(matched, Result{
			Venue:      venue,
			DistanceKm: distKm,
			EtaMinutes: distKm / assumedSpeedKm * 60,
		})
	}

	if q.SortBy == "rating" {
		sort.Slice(matched, func(i, j int) bool {
			if matched[i].Rating != matched[j].Rating {
				return matched[i].Rating > matched[j].Rating
			}
			return matched[i].DistanceKm < matched[j].DistanceKm
		})
	} else {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].DistanceKm < matched[j].DistanceKm
		})
	}

	total := len(matched)
	start := (q.Page - 1) * q.Limit
	if start >= total {
		return []Result{}, total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func meetsRatingMinimums(venue models.Venue, minimums map[string]float64) bool {
	for criterion, min := range minimums {
		if venue.Criteria[criterion] < min {
			return false
		}
	}
	return true
}

// FindNearby loads active candidates and ranks them in-process.
func FindNearby(ctx context.Context, q Query) ([]Result, int, error) {
	if q.RadiusM <= 0 {
		return nil, 0, apperr.Validation("radius must be positive")
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	filter := bson.M{"isActive": true, "isDeleted": false}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	candidates, err := utils.FindAndDecode[models.Venue](ctx, db.VenuesCollection, filter)
	if err != nil {
		return nil, 0, err
	}

	results, total := Rank(candidates, q)
	return results, total, nil
}
