package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Args is what a chat message asks to roast.
type Args struct {
	Name  string
	Habit string
	Level int
}

var (
	errNoArgs    = errors.New("tell me who to roast")
	errBadFormat = errors.New("use the format Name | habit | level")
	errBadLevel  = errors.New("level must be a number from 1 to 5")
)

// ParseArgs reads "Name | habit [| level]". A missing level means def.
// Range checks are left to roast.Request.Validate.
func ParseArgs(text string, def int) (Args, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Args{}, errNoArgs
	}
	parts := strings.Split(text, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return Args{}, errBadFormat
	}
	a := Args{
		Name:  strings.TrimSpace(parts[0]),
		Habit: strings.TrimSpace(parts[1]),
		Level: def,
	}
	if len(parts) == 3 {
		lvl, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return Args{}, errBadLevel
		}
		a.Level = lvl
	}
	return a, nil
}
