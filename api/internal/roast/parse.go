package roast

import (
	"encoding/json"
	"fmt"
	"strings"

	"roast-bot/api/internal/util"
)

var requiredFields = []string{"roast", "compliment", "tag", "confidence_pct", "wit_score"}

// ParseReply decodes the model answer. All five fields must be present,
// non-null and not blank; anything less is rejected as a whole.
func ParseReply(raw string) (Result, error) {
	txt := util.StripCodeFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(txt), &fields); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrBadJSON, err)
	}

	var missing []string
	for _, f := range requiredFields {
		v, ok := fields[f]
		if !ok || blank(v) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	var r Result
	if err := json.Unmarshal([]byte(txt), &r); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrBadJSON, err)
	}
	return r, nil
}

func blank(v json.RawMessage) bool {
	switch strings.TrimSpace(string(v)) {
	case "null", "":
		return true
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		return strings.TrimSpace(s) == ""
	}
	return false
}
