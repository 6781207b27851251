package domain

import "errors"

// ValidationError reports input that was rejected before any state change
// or external call.
type ValidationError struct {
	Kind string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Kind
}

// Is matches any ValidationError with the same Kind.
func (e *ValidationError) Is(target error) bool {
	var other *ValidationError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

var (
	// ErrEmptyInput indicates that both problem and constraints were blank.
	ErrEmptyInput = &ValidationError{Kind: "empty-input"}

	// ErrEmptyActivity indicates an add or update with blank activity text.
	ErrEmptyActivity = &ValidationError{Kind: "empty-activity"}

	// ErrInvalidTime indicates a time that is not a valid HH:MM time of day.
	ErrInvalidTime = &ValidationError{Kind: "invalid-time"}

	// ErrInvalidMode indicates an unknown suggestion mode.
	ErrInvalidMode = &ValidationError{Kind: "invalid-mode"}
)

var (
	// ErrItemNotFound indicates an update referencing an unknown item id.
	ErrItemNotFound = errors.New("itinerary item not found")

	// ErrDuplicateID indicates a merge that would introduce an id already
	// present in the itinerary.
	ErrDuplicateID = errors.New("duplicate itinerary item id")
)
