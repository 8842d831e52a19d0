package rdx

import (
	"log"
	"os"
	"time"

	"reveo/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 10*time.Minute).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// Cache key construction lives here so readers and invalidators cannot
// drift apart.
func VenueKey(venueID string) string {
	return "venue:" + venueID
}

func SlotsKey(venueID, date string) string {
	return "slots:" + venueID + ":" + date
}

func slotsPattern(venueID string) string {
	return "slots:" + venueID + ":*"
}

// InvalidateVenue drops the cached venue document. Writers that touch the
// venue record (rating recompute, slot sync status) call this so the public
// read never serves a stale document past the write.
func InvalidateVenue(venueID string) {
	if err := RdxDel(VenueKey(venueID)); err != nil {
		log.Printf("[rdx] del %s: %v", VenueKey(venueID), err)
	}
}

// InvalidateAvailability drops every cached availability page for a venue.
// Called by writers (slot regeneration, unavailability replace, booking
// mutations) so readers never serve a stale grid for long.
func InvalidateAvailability(venueID string) {
	iter := Conn.Scan(globals.Ctx, 0, slotsPattern(venueID), 100).Iterator()
	for iter.Next(globals.Ctx) {
		if err := Conn.Del(globals.Ctx, iter.Val()).Err(); err != nil {
			log.Printf("[rdx] del %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[rdx] scan slots:%s: %v", venueID, err)
	}
	InvalidateVenue(venueID)
}
