package roast

import "errors"

var (
	ErrNameHabitRequired = errors.New("name and habit are required")
	ErrLevelOutOfRange   = errors.New("level must be between 1 and 5")

	ErrBadJSON       = errors.New("model reply is not a JSON object")
	ErrMissingFields = errors.New("missing required fields")
)

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameHabitRequired) || errors.Is(err, ErrLevelOutOfRange)
}
