package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/alexanderramin/tabi/internal/itinerary"
)

var testIDCounter atomic.Int64

// Item options
type ItemOption func(*domain.ItineraryItem)

func WithURL(url string) ItemOption {
	return func(it *domain.ItineraryItem) {
		it.URL = url
	}
}

func WithID(id string) ItemOption {
	return func(it *domain.ItineraryItem) {
		it.ID = id
	}
}

// NewTestItem builds an item with a unique id. clock is used as given.
func NewTestItem(clock, activity string, opts ...ItemOption) domain.ItineraryItem {
	it := domain.ItineraryItem{
		ID:       fmt.Sprintf("item-%02d", testIDCounter.Add(1)),
		Time:     clock,
		Activity: activity,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// NewTestStore returns a store with predictable ids ("id-1", "id-2", ...).
func NewTestStore() *itinerary.Store {
	var n atomic.Int64
	return itinerary.NewStore(itinerary.WithIDFunc(func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	}))
}

// SeedStore adds items to store through Add so they are validated and
// sorted the same way user input is.
func SeedStore(t testing.TB, store *itinerary.Store, items ...domain.ItineraryItem) []domain.ItineraryItem {
	t.Helper()
	for _, it := range items {
		if _, err := store.Add(it.Time, it.Activity, it.URL); err != nil {
			t.Fatalf("seeding %q: %v", it.Activity, err)
		}
	}
	return store.Snapshot()
}

// KyotoDay is a small, already sorted itinerary used across tests.
func KyotoDay() []domain.ItineraryItem {
	return []domain.ItineraryItem{
		NewTestItem("08:00", "ホテル出発"),
		NewTestItem("09:30", "清水寺", WithURL("https://www.kiyomizudera.or.jp/")),
		NewTestItem("12:00", "昼食"),
		NewTestItem("14:00", "嵐山散策"),
	}
}
