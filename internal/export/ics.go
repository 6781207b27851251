// Package export renders an itinerary into formats other tools can read.
package export

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tabi/internal/domain"
	ics "github.com/arran4/golang-ical"
)

const (
	productID = "-//tabi//itinerary//JA"

	// defaultDuration is used when no later item bounds an activity.
	defaultDuration = time.Hour
)

// ICS renders items as an iCalendar document with one event per item,
// placed on day (in day's location). Each event ends when the next later
// item starts. now is recorded as the DTSTAMP of every event.
func ICS(items []domain.ItineraryItem, day time.Time, now time.Time) (string, error) {
	starts := make([]time.Time, len(items))
	for i, it := range items {
		mins, err := domain.ClockMinutes(it.Time)
		if err != nil {
			return "", fmt.Errorf("item %s: %w", it.ID, err)
		}
		starts[i] = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
			Add(time.Duration(mins) * time.Minute)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for i, it := range items {
		event := cal.AddEvent(it.ID)
		event.SetDtStampTime(now)
		event.SetStartAt(starts[i])
		event.SetEndAt(endOf(starts, i))
		event.SetSummary(it.Activity)
		if it.HasURL() {
			event.SetURL(it.URL)
		}
	}

	return cal.Serialize(), nil
}

// endOf returns the first later start after index i, or a default length.
func endOf(starts []time.Time, i int) time.Time {
	for _, next := range starts[i+1:] {
		if next.After(starts[i]) {
			return next
		}
	}
	return starts[i].Add(defaultDuration)
}
