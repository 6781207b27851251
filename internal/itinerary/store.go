// Package itinerary holds the in-memory, time-ordered itinerary for a
// planning session.
package itinerary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/google/uuid"
)

// IDFunc generates a fresh item id.
type IDFunc func() string

// entry pairs an item with the tick at which it was last inserted or
// updated. The tick breaks ties between items sharing a time.
type entry struct {
	item domain.ItineraryItem
	tick uint64
}

// Store is the canonical itinerary of a session. It is not safe for
// concurrent use; the application shell drives it from a single flow.
type Store struct {
	entries []entry
	tick    uint64
	newID   IDFunc
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides the id generator.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// NewStore creates an empty itinerary.
func NewStore(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates and inserts a new item, keeping the itinerary sorted.
func (s *Store) Add(clock, activity, url string) (domain.ItineraryItem, error) {
	item, err := newItem(clock, activity, url)
	if err != nil {
		return domain.ItineraryItem{}, err
	}
	item.ID = s.newID()
	if s.indexOf(item.ID) >= 0 {
		return domain.ItineraryItem{}, fmt.Errorf("%w: %s", domain.ErrDuplicateID, item.ID)
	}

	s.entries = append(s.entries, entry{item: item, tick: s.nextTick()})
	s.sort()
	return item, nil
}

// Update replaces the item with the given id. The updated item moves
// behind any other items that share its time.
func (s *Store) Update(id, clock, activity, url string) (domain.ItineraryItem, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ItineraryItem{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	item, err := newItem(clock, activity, url)
	if err != nil {
		return domain.ItineraryItem{}, err
	}
	item.ID = id

	s.entries[idx] = entry{item: item, tick: s.nextTick()}
	s.sort()
	return item, nil
}

// Delete removes the item with the given id. Unknown ids are ignored.
func (s *Store) Delete(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return true
}

// Merge appends already-parsed items in order and sorts once. Items with
// blank activity are skipped. If any id collides with an existing item or
// another item in the batch, nothing is merged.
func (s *Store) Merge(items []domain.ItineraryItem) (int, error) {
	seen := make(map[string]bool, len(s.entries)+len(items))
	for _, e := range s.entries {
		seen[e.item.ID] = true
	}
	for _, it := range items {
		if seen[it.ID] {
			return 0, fmt.Errorf("%w: %s", domain.ErrDuplicateID, it.ID)
		}
		seen[it.ID] = true
	}

	added := 0
	for _, it := range items {
		if strings.TrimSpace(it.Activity) == "" {
			continue
		}
		s.entries = append(s.entries, entry{item: it, tick: s.nextTick()})
		added++
	}
	if added > 0 {
		s.sort()
	}
	return added, nil
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (domain.ItineraryItem, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ItineraryItem{}, false
	}
	return s.entries[idx].item, true
}

// Snapshot returns a sorted copy of the itinerary.
func (s *Store) Snapshot() []domain.ItineraryItem {
	out := make([]domain.ItineraryItem, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.item
	}
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.entries)
}

// Clear removes every item.
func (s *Store) Clear() {
	s.entries = nil
}

func (s *Store) nextTick() uint64 {
	s.tick++
	return s.tick
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.entries {
		if e.item.ID == id {
			return i
		}
	}
	return -1
}

// sort orders entries by time, then by the tick of their last write.
// Times compare lexicographically, which matches time-of-day order for
// zero-padded HH:MM values.
func (s *Store) sort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		a, b := s.entries[i], s.entries[j]
		if a.item.Time != b.item.Time {
			return a.item.Time < b.item.Time
		}
		return a.tick < b.tick
	})
}

func newItem(clock, activity, url string) (domain.ItineraryItem, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return domain.ItineraryItem{}, domain.ErrEmptyActivity
	}
	normalized, err := domain.NormalizeClock(strings.TrimSpace(clock))
	if err != nil {
		return domain.ItineraryItem{}, err
	}
	return domain.ItineraryItem{
		Time:     normalized,
		Activity: activity,
		URL:      strings.TrimSpace(url),
	}, nil
}
