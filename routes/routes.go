package routes

import (
	"reveo/avail"
	"reveo/bookings"
	"reveo/hours"
	"reveo/middleware"
	"reveo/nearby"
	"reveo/ratelim"
	"reveo/slotgen"
	"reveo/unavail"
	"reveo/venues"

	"github.com/julienschmidt/httprouter"
)

// AddBookingRoutes mounts the customer-facing discovery and booking API.
func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/app/booking/findRestaurantsNearby", ratelim.RateLimit(nearby.FindRestaurantsNearby))
	router.GET("/api/app/booking/getRestaurantSlots/:id", ratelim.RateLimit(avail.GetRestaurantSlots))

	router.POST("/api/app/booking/createBooking", middleware.Authenticate(bookings.CreateBooking))
	router.PUT("/api/app/booking/updateBooking/:id", middleware.Authenticate(bookings.UpdateBooking))
	router.GET("/api/app/booking/getBookings", middleware.Authenticate(bookings.GetBookings))
	router.PUT("/api/app/booking/cancel/:id", middleware.Authenticate(bookings.CancelBooking))
	router.PUT("/api/app/booking/addReview/:id", middleware.Authenticate(bookings.AddBookingReview))
	router.GET("/api/app/booking/print/:id", middleware.Authenticate(bookings.PrintBooking))

	router.GET("/ws/booking/:venueId", bookings.HandleWS)
}

// AddRestaurantProfileRoutes mounts the venue-side management API. Slot
// regeneration after an hours update goes through gen.
func AddRestaurantProfileRoutes(router *httprouter.Router, gen *slotgen.Generator) {
	router.POST("/api/restaurant/profile/register", middleware.Authenticate(venues.RegisterVenue))
	router.POST("/api/restaurant/profile/setOperationalHours", middleware.Authenticate(hours.SetOperationalHours(gen)))
	router.GET("/api/restaurant/profile/getOperationalHours", middleware.Authenticate(hours.GetOperationalHours))
	router.POST("/api/restaurant/profile/addUnavailableSlot", middleware.Authenticate(unavail.AddUnavailableSlot))
	router.GET("/api/restaurant/profile/getUnavailableSlots", middleware.Authenticate(unavail.GetUnavailableSlots))

	router.GET("/api/restaurant/booking/getBookings", middleware.Authenticate(bookings.GetVenueBookings))
	router.PUT("/api/restaurant/booking/checkIn/:id", middleware.Authenticate(bookings.CheckInBooking))
	router.PUT("/api/restaurant/booking/cancel/:id", middleware.Authenticate(bookings.CancelVenueBooking))
}

// AddVenueRoutes mounts public venue reads.
func AddVenueRoutes(router *httprouter.Router) {
	router.GET("/api/app/venue/:id", ratelim.RateLimit(venues.GetVenue))
}
