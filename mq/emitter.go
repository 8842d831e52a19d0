package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"reveo/db"
	"reveo/models"
	"reveo/rdx"
	"reveo/utils"

	"go.mongodb.org/mongo-driver/bson"
)

const bookingChannel = "booking-events"

// Notification codes
const (
	CodeBookingCreated   = "booking.created"
	CodeBookingUpdated   = "booking.updated"
	CodeBookingCancelled = "booking.cancelled"
	CodeBookingCheckedIn = "booking.checkedIn"
	CodeReviewAdded      = "booking.reviewAdded"
)

// Emit publishes a booking lifecycle event to Redis. Fire-and-forget: a
// failure here is logged and never propagated, so notification trouble can
// not roll back a committed booking state change.
func Emit(ctx context.Context, event models.BookingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), bookingChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish %s: %v", event.Code, err)
	}
}

// PushSender delivers to a device token. The real implementation (FCM) lives
// outside this repo; LogSender stands in for it.
type PushSender interface {
	Push(ctx context.Context, deviceToken, title, body string) error
}

type LogSender struct{}

func (LogSender) Push(_ context.Context, deviceToken, title, body string) error {
	log.Printf("[Push] token=%s title=%q body=%q", deviceToken, title, body)
	return nil
}

// StartNotificationWorker consumes booking events, persists a notification
// record for the receiver and, when a device token is registered, pushes it.
func StartNotificationWorker(sender PushSender) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, bookingChannel)
	ch := sub.Channel()

	log.Println("[NotificationWorker] Listening for booking events...")

	for msg := range ch {
		var event models.BookingEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[NotificationWorker] parse event: %v", err)
			continue
		}
		if err := dispatch(ctx, event, sender); err != nil {
			log.Printf("[NotificationWorker] dispatch %s: %v", event.Code, err)
		}
	}
}

func dispatch(ctx context.Context, event models.BookingEvent, sender PushSender) error {
	notif := models.Notification{
		ID:         utils.GetUUID(),
		SenderID:   event.SenderID,
		ReceiverID: event.ReceiverID,
		Code:       event.Code,
		Title:      event.Title,
		Body:       event.Body,
		Type:       "booking",
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := db.NotificationsCollection.InsertOne(ctx, notif); err != nil {
		return err
	}

	var row struct {
		Token string `bson:"token"`
	}
	err := db.DeviceTokensCollection.FindOne(ctx, bson.M{"userId": event.ReceiverID}).Decode(&row)
	if err != nil || row.Token == "" {
		// No registered device; the persisted record is enough.
		return nil
	}
	return sender.Push(ctx, row.Token, event.Title, event.Body)
}
