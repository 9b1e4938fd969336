package roast

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinLevel = 1
	MaxLevel = 5
)

type Request struct {
	Name  string
	Habit string
	Level int
	Image []byte // optional
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Habit) == "" {
		return ErrNameHabitRequired
	}
	if r.Level < MinLevel || r.Level > MaxLevel {
		return ErrLevelOutOfRange
	}
	return nil
}

// Result is the only thing callers ever see, on success and on fallback.
type Result struct {
	Roast         string  `json:"roast"`
	Compliment    string  `json:"compliment"`
	Tag           string  `json:"tag"`
	ConfidencePct Percent `json:"confidence_pct"`
	WitScore      Score   `json:"wit_score"`
	PhotoCaption  string  `json:"photo_caption"`
}

// Score is a number kept to one decimal. Models sometimes quote it, so a
// numeric string is accepted on input.
type Score float64

func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(s), 'f', 1, 64)), nil
}

func (s *Score) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		var str string
		if json.Unmarshal(b, &str) != nil {
			return fmt.Errorf("wit_score: %w", err)
		}
		var perr error
		f, perr = strconv.ParseFloat(strings.TrimSpace(str), 64)
		if perr != nil {
			return fmt.Errorf("wit_score: %w", perr)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("wit_score: not a finite number")
	}
	*s = Score(math.Round(f*10) / 10)
	return nil
}

// Percent is a whole percentage rendered as "87%". A bare number, quoted
// or not, is accepted on input and gets the suffix. Anything outside 0..100
// or not numeric is rejected.
type Percent string

func (p *Percent) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		var str string
		if json.Unmarshal(b, &str) != nil {
			return fmt.Errorf("confidence_pct: %w", err)
		}
		str = strings.TrimSuffix(strings.TrimSpace(str), "%")
		var perr error
		f, perr = strconv.ParseFloat(strings.TrimSpace(str), 64)
		if perr != nil {
			return fmt.Errorf("confidence_pct: %w", perr)
		}
	}
	if math.IsNaN(f) || f < 0 || f > 100 {
		return fmt.Errorf("confidence_pct: %v out of range", f)
	}
	*p = Percent(strconv.Itoa(int(math.Round(f))) + "%")
	return nil
}
