package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/google/uuid"
)

// space mirrors the whitespace class of browser regular expressions, which
// includes the ideographic space common in pasted Japanese schedules.
const space = `[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

var (
	// timePattern finds the first time-like token anywhere on a line.
	timePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

	// leadPattern matches an optional bullet, the start time, an optional
	// range end ("11:55〜12:14") and an optional ":" separator at the very
	// start of a line. The separator lets "- 09:40: 自宅を出る" lines, as
	// produced by suggest.RenderItinerary, parse back to the same activity.
	leadPattern = regexp.MustCompile(`^-?` + space + `*\d{1,2}:\d{2}` + space + `*(?:[〜~-]` + space + `*\d{1,2}:\d{2})?` + space + `*:?` + space + `*`)
)

// Parser extracts itinerary items from pasted free-text schedules.
type Parser struct {
	newBatchID func() string
}

// NewParser creates a Parser that tags each invocation with a fresh UUID.
func NewParser() *Parser {
	return &Parser{newBatchID: uuid.NewString}
}

// Parse converts text into items, one candidate per line, in line order.
// Lines without a time, or with nothing left once the leading time is
// stripped, are skipped. The returned items are not sorted.
func (p *Parser) Parse(text string) []domain.ItineraryItem {
	text = trimSpace(text)
	if text == "" {
		return nil
	}

	batch := p.newBatchID()
	var items []domain.ItineraryItem
	for i, line := range strings.Split(text, "\n") {
		m := timePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		activity := trimSpace(leadPattern.ReplaceAllLiteralString(line, ""))
		if activity == "" {
			continue
		}

		items = append(items, domain.ItineraryItem{
			ID:       fmt.Sprintf("%s-%d", batch, i),
			Time:     padClock(m[1], m[2]),
			Activity: activity,
		})
	}
	return items
}

// Parse runs a default Parser over text.
func Parse(text string) []domain.ItineraryItem {
	return NewParser().Parse(text)
}

func padClock(hour, minute string) string {
	return pad2(hour) + ":" + pad2(minute)
}

func pad2(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
