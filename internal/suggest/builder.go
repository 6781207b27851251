// Package suggest prepares and dispatches requests for alternative plans
// and spot recommendations.
package suggest

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/samber/lo"
)

// EmptyItinerary is rendered in place of the plan when no items exist.
const EmptyItinerary = "予定はまだ入力されていません。"

// Request is everything needed to ask for one suggestion. It is built per
// call and never stored.
type Request struct {
	Items       []domain.ItineraryItem
	Itinerary   string
	Problem     string
	Constraints string
	Mode        domain.SuggestionMode
}

// Build validates the user's inputs and packages them with a rendering of
// the itinerary. At least one of problem and constraints must carry text.
func Build(items []domain.ItineraryItem, problem, constraints string, mode domain.SuggestionMode) (*Request, error) {
	if strings.TrimSpace(problem) == "" && strings.TrimSpace(constraints) == "" {
		return nil, domain.ErrEmptyInput
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}

	snapshot := make([]domain.ItineraryItem, len(items))
	copy(snapshot, items)

	return &Request{
		Items:       snapshot,
		Itinerary:   RenderItinerary(snapshot),
		Problem:     problem,
		Constraints: constraints,
		Mode:        mode,
	}, nil
}

// RenderItinerary formats items as "- HH:MM: activity (url)" lines.
func RenderItinerary(items []domain.ItineraryItem) string {
	if len(items) == 0 {
		return EmptyItinerary
	}
	return strings.Join(lo.Map(items, func(it domain.ItineraryItem, _ int) string {
		return RenderItem(it)
	}), "\n")
}

// RenderItem formats a single itinerary line.
func RenderItem(it domain.ItineraryItem) string {
	line := "- " + it.Time + ": " + it.Activity
	if it.HasURL() {
		line += " (" + it.URL + ")"
	}
	return line
}
