package nearby

import (
	"math"
	"testing"

	"reveo/models"
)

func venueAt(id string, lat, lon float64) models.Venue {
	return models.Venue{VenueID: id, Name: id, Type: models.VenueRestaurant, Latitude: &lat, Longitude: &lon, IsActive: true}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Paris -> London is roughly 344 km.
	d := Haversine(48.8566, 2.3522, 51.5074, -0.1278)
	if math.Abs(d-344000) > 5000 {
		t.Fatalf("Paris-London distance off: got %.0f m", d)
	}
	if d := Haversine(10, 20, 10, 20); d != 0 {
		t.Fatalf("zero distance expected, got %f", d)
	}
}

func TestRankRadiusBoundaryInclusive(t *testing.T) {
	origin := venueAt("origin", 0, 0)
	_ = origin

	// ~1 degree of longitude at the equator is ~111.19 km.
	onEdge := venueAt("edge", 0, 1)
	beyond := venueAt("beyond", 0, 1.001)
	edgeDist := Haversine(0, 0, 0, 1)

	results, total := Rank([]models.Venue{onEdge, beyond}, Query{
		Lat: 0, Lon: 0, RadiusM: edgeDist, Page: 1, Limit: 10,
	})
	if total != 1 {
		t.Fatalf("expected 1 match, got %d", total)
	}
	if results[0].VenueID != "edge" {
		t.Fatalf("venue exactly at radius must be included, got %+v", results)
	}
}

func TestRankSortsByDistanceByDefault(t *testing.T) {
	far := venueAt("far", 0, 0.5)
	near := venueAt("near", 0, 0.1)
	mid := venueAt("mid", 0, 0.3)

	results, _ := Rank([]models.Venue{far, near, mid}, Query{
		Lat: 0, Lon: 0, RadiusM: 100000, Page: 1, Limit: 10,
	})
	want := []string{"near", "mid", "far"}
	for i, id := range want {
		if results[i].VenueID != id {
			t.Fatalf("order wrong at %d: %+v", i, results)
		}
	}
}

func TestRankSortsByRatingWithDistanceTiebreak(t *testing.T) {
	a := venueAt("a", 0, 0.2)
	a.Rating = 4.0
	b := venueAt("b", 0, 0.1)
	b.Rating = 5.0
	c := venueAt("c", 0, 0.05)
	c.Rating = 4.0

	results, _ := Rank([]models.Venue{a, b, c}, Query{
		Lat: 0, Lon: 0, RadiusM: 100000, SortBy: "rating", Page: 1, Limit: 10,
	})
	want := []string{"b", "c", "a"}
	for i, id := range want {
		if results[i].VenueID != id {
			t.Fatalf("rating order wrong at %d: %+v", i, results)
		}
	}
}

func TestRankSkipsVenuesWithoutCoordinates(t *testing.T) {
	noCoords := models.Venue{VenueID: "nowhere", Name: "nowhere", IsActive: true}
	near := venueAt("near", 0, 0.1)

	results, total := Rank([]models.Venue{noCoords, near}, Query{
		Lat: 0, Lon: 0, RadiusM: 100000, Page: 1, Limit: 10,
	})
	if total != 1 || results[0].VenueID != "near" {
		t.Fatalf("venue without coordinates must be excluded: %+v", results)
	}
}

func TestRankKeywordFilterCaseInsensitive(t *testing.T) {
	pasta := venueAt("v1", 0, 0.1)
	pasta.Name = "La Pasta Fresca"
	sushi := venueAt("v2", 0, 0.1)
	sushi.Name = "Sushi Bar"

	results, total := Rank([]models.Venue{pasta, sushi}, Query{
		Lat: 0, Lon: 0, RadiusM: 100000, Keyword: "pasta", Page: 1, Limit: 10,
	})
	if total != 1 || results[0].VenueID != "v1" {
		t.Fatalf("keyword filter failed: %+v", results)
	}
}

func TestRankMinimumRatingThresholds(t *testing.T) {
	good := venueAt("good", 0, 0.1)
	good.Criteria = map[string]float64{"service": 4.5, "ambiance": 4.0}
	weak := venueAt("weak", 0, 0.1)
	weak.Criteria = map[string]float64{"service": 3.0, "ambiance": 4.5}

	results, total := Rank([]models.Venue{good, weak}, Query{
		Lat: 0, Lon: 0, RadiusM: 100000,
		MinRatings: map[string]float64{"service": 4.0},
		Page:       1, Limit: 10,
	})
	if total != 1 || results[0].VenueID != "good" {
		t.Fatalf("rating minimums failed: %+v", results)
	}
}

func TestRankPagination(t *testing.T) {
	var candidates []models.Venue
	for i := 0; i < 5; i++ {
		candidates = append(candidates, venueAt(string(rune('a'+i)), 0, 0.01*float64(i+1)))
	}

	page2, total := Rank(candidates, Query{Lat: 0, Lon: 0, RadiusM: 100000, Page: 2, Limit: 2})
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(page2) != 2 || page2[0].VenueID != "c" {
		t.Fatalf("page 2 wrong: %+v", page2)
	}

	empty, _ := Rank(candidates, Query{Lat: 0, Lon: 0, RadiusM: 100000, Page: 4, Limit: 2})
	if len(empty) != 0 {
		t.Fatalf("page past end should be empty, got %+v", empty)
	}
}

func TestRankEtaEstimate(t *testing.T) {
	v := venueAt("v", 0, 0.1)
	results, _ := Rank([]models.Venue{v}, Query{Lat: 0, Lon: 0, RadiusM: 100000, Page: 1, Limit: 10})
	got := results[0]
	want := got.DistanceKm / 30.0 * 60
	if math.Abs(got.EtaMinutes-want) > 1e-9 {
		t.Fatalf("eta mismatch: got %f want %f", got.EtaMinutes, want)
	}
}
