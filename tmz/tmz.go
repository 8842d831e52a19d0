// Package tmz resolves "now", weekdays and calendar dates as seen in a
// venue's IANA timezone. Booking timestamps in this system are local wall
// time carrying a UTC label; every function here labels its output the same
// way, so instants produced by Combine compare correctly against NowIn.
package tmz

import (
	"time"

	"reveo/apperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func location(timezone string) (*time.Location, error) {
	if timezone == "" {
		return nil, apperr.Validation("timeZone is required")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, apperr.Validation("Unknown timeZone: " + timezone)
	}
	return loc, nil
}

// NowIn is the current wall-clock time in the zone, re-labeled as UTC.
func NowIn(timezone string) (time.Time, error) {
	loc, err := location(timezone)
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC), nil
}

// WeekdayOf names the weekday a calendar date falls on, evaluated in the
// given zone.
func WeekdayOf(date, timezone string) (string, error) {
	loc, err := location(timezone)
	if err != nil {
		return "", err
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return "", apperr.Validation("Invalid date, expected YYYY-MM-DD")
	}
	return t.Weekday().String(), nil
}

// TodayIn is today's calendar date in the zone.
func TodayIn(timezone string) (string, error) {
	loc, err := location(timezone)
	if err != nil {
		return "", err
	}
	return time.Now().In(loc).Format(DateLayout), nil
}

// Combine materializes a calendar date plus a local HH:MM wall time into a
// UTC-labeled instant.
func Combine(date, hhmm string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, apperr.Validation("Invalid date, expected YYYY-MM-DD")
	}
	t, err := time.Parse(TimeLayout, hhmm)
	if err != nil {
		return time.Time{}, apperr.Validation("Invalid time, expected HH:MM")
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
