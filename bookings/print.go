package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"reveo/apperr"
	"reveo/db"
	"reveo/models"
	"reveo/utils"
	"reveo/venues"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func hmacSecret() []byte {
	if s := os.Getenv("BOOKING_QR_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev_only_qr_secret")
}

// GenerateQRPayload returns venueID|bookingID|timestamp|signature so the
// front desk can verify a confirmation offline.
func GenerateQRPayload(venueID, bookingID string) string {
	data := fmt.Sprintf("%s|%s|%d", venueID, bookingID, time.Now().Unix())
	h := hmac.New(sha256.New, hmacSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintBooking serves GET /api/app/booking/print/:id as a PDF confirmation
// with an HMAC-signed QR code.
func PrintBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")
	customerID := utils.GetUserIDFromRequest(r)
	if customerID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID, "customerId": customerID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		apperr.Write(w, apperr.NotFound("Booking not found"))
		return
	}
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if booking.Status == models.BookingCancelled {
		apperr.Write(w, apperr.BadRequest("Cancelled bookings have no confirmation"))
		return
	}

	venue, err := venues.GetByID(ctx, booking.VenueID)
	if err != nil {
		apperr.Write(w, err)
		return
	}

	qrPNG, err := qrcode.Encode(GenerateQRPayload(venue.VenueID, booking.BookingID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Venue: %s", venue.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Address: %s", venue.Address))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", booking.BookingDate))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Time: %s - %s", booking.SlotStart, booking.SlotEnd))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Guests: %d", booking.GuestCount))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Reference: %s", booking.BookingID))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
