package domain

// SuggestionMode selects what kind of answer is requested from the
// text-generation service.
type SuggestionMode string

const (
	ModeSchedule SuggestionMode = "schedule"
	ModeSpots    SuggestionMode = "spots"
)

// Valid reports whether m is a known suggestion mode.
func (m SuggestionMode) Valid() bool {
	switch m {
	case ModeSchedule, ModeSpots:
		return true
	default:
		return false
	}
}

// ParseSuggestionMode converts user input into a SuggestionMode.
func ParseSuggestionMode(s string) (SuggestionMode, error) {
	m := SuggestionMode(s)
	if !m.Valid() {
		return "", ErrInvalidMode
	}
	return m, nil
}
