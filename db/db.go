package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	VenuesCollection           *mongo.Collection
	HoursCollection            *mongo.Collection
	SlotsCollection            *mongo.Collection
	UnavailableSlotsCollection *mongo.Collection
	BookingsCollection         *mongo.Collection
	ReviewsCollection          *mongo.Collection
	NotificationsCollection    *mongo.Collection
	DeviceTokensCollection     *mongo.Collection
	Client                     *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("reveodb")
	VenuesCollection = database.Collection("venues")
	HoursCollection = database.Collection("hours")
	SlotsCollection = database.Collection("slots")
	UnavailableSlotsCollection = database.Collection("unavailableslots")
	BookingsCollection = database.Collection("bookings")
	ReviewsCollection = database.Collection("reviews")
	NotificationsCollection = database.Collection("notifications")
	DeviceTokensCollection = database.Collection("devicetokens")
}

// EnsureIndexes creates the indexes the booking engine relies on. The
// bookings index is the double-booking guard: unique over the booking tuple,
// restricted to active (non-cancelled) rows, so a concurrent duplicate
// create surfaces as a duplicate-key error instead of a silent second row.
func EnsureIndexes(ctx context.Context) error {
	_, err := BookingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "customerId", Value: 1},
			{Key: "venueid", Value: 1},
			{Key: "slotStart", Value: 1},
			{Key: "bookingDate", Value: 1},
		},
		Options: options.Index().
			SetName("uniq_active_booking").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"active": true}),
	})
	if err != nil {
		return err
	}

	_, err = SlotsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "venueid", Value: 1}, {Key: "day", Value: 1}, {Key: "startTime", Value: 1}},
		Options: options.Index().SetName("slots_by_venue_day"),
	})
	if err != nil {
		return err
	}

	_, err = UnavailableSlotsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "venueid", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("unavailable_by_venue_date"),
	})
	if err != nil {
		return err
	}

	_, err = VenuesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "venueid", Value: 1}},
		Options: options.Index().SetName("venue_id").SetUnique(true),
	})
	return err
}
