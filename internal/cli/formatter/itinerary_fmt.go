package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tabi/internal/domain"
)

// FormatItinerary renders the itinerary as a numbered list. Numbers are
// 1-based and are what shell commands such as "edit 2" refer to.
func FormatItinerary(items []domain.ItineraryItem) string {
	if len(items) == 0 {
		return Dim("予定はまだありません。add または import で追加してください。") + "\n"
	}

	var b strings.Builder
	for i, it := range items {
		b.WriteString(fmt.Sprintf("%s %s  %s",
			Dim(fmt.Sprintf("%2d.", i+1)),
			StyleYellow.Render(it.Time),
			StyleFg.Render(it.Activity),
		))
		if it.HasURL() {
			b.WriteString("  " + StyleBlue.Render(it.URL))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatParsedItems summarizes an import: how many items were added,
// followed by the items themselves.
func FormatParsedItems(items []domain.ItineraryItem) string {
	if len(items) == 0 {
		return Dim("時刻を含む行が見つかりませんでした。") + "\n"
	}
	return StyleGreen.Render(fmt.Sprintf("%d件の予定を取り込みました。", len(items))) + "\n" +
		FormatItinerary(items)
}

// FormatItemInput renders an item in the "HH:MM activity | url" form the
// shell accepts for add and edit.
func FormatItemInput(it domain.ItineraryItem) string {
	s := it.Time + " " + it.Activity
	if it.HasURL() {
		s += " | " + it.URL
	}
	return s
}
