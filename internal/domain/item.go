package domain

// ItineraryItem is a single timed activity in the plan.
type ItineraryItem struct {
	ID       string
	Time     string // HH:MM, zero-padded
	Activity string
	URL      string // empty when absent
}

// HasURL reports whether the item carries a reference link.
func (i ItineraryItem) HasURL() bool {
	return i.URL != ""
}
