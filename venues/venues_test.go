package venues

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reveo/globals"
	"reveo/models"
)

func authedRequest(method, path, body, userID, role string) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
	ctx = context.WithValue(ctx, globals.RoleKey, role)
	return r.WithContext(ctx)
}

func TestRegisterVenueRequiresRestaurantRole(t *testing.T) {
	rec := httptest.NewRecorder()
	RegisterVenue(rec, authedRequest("POST", "/api/restaurant/profile/register", `{}`, "owner1", "customer"), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer role must be forbidden, got %d", rec.Code)
	}
}

func TestRegisterVenueRequiresAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/restaurant/profile/register", strings.NewReader(`{}`))
	RegisterVenue(rec, r, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing identity must be unauthorized, got %d", rec.Code)
	}
}

func TestRegisterVenueRejectsUnknownType(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"name":"Spa Central","type":"spa"}`
	RegisterVenue(rec, authedRequest("POST", "/api/restaurant/profile/register", body, "owner1", "restaurant"), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown venue type must be rejected, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "restaurant, leisure or wellness") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestEffectiveTimeZone(t *testing.T) {
	stored := &models.Venue{TimeZone: "Asia/Tokyo"}
	if tz := EffectiveTimeZone(stored, "UTC"); tz != "Asia/Tokyo" {
		t.Fatalf("stored zone must win, got %s", tz)
	}
	legacy := &models.Venue{}
	if tz := EffectiveTimeZone(legacy, "Europe/Paris"); tz != "Europe/Paris" {
		t.Fatalf("request zone is the fallback, got %s", tz)
	}
	if tz := EffectiveTimeZone(nil, "UTC"); tz != "UTC" {
		t.Fatalf("nil venue falls back to request zone, got %s", tz)
	}
}
