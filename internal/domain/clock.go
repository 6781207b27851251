package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// NormalizeClock validates a time of day written as H:MM or HH:MM and
// returns it zero-padded to HH:MM.
func NormalizeClock(s string) (string, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return "", fmt.Errorf("%w: %q out of range", ErrInvalidTime, s)
	}
	return fmt.Sprintf("%02d:%02d", h, min), nil
}

// ClockMinutes returns the number of minutes since midnight for an HH:MM
// time. It does not range-check the fields.
func ClockMinutes(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h*60 + min, nil
}
