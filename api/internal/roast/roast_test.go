package roast

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	ok := Request{Name: "Rahul", Habit: "late for everything", Level: 3}
	require.NoError(t, ok.Validate())

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"empty name", Request{Name: "", Habit: "x", Level: 3}, ErrNameHabitRequired},
		{"blank habit", Request{Name: "a", Habit: "   ", Level: 3}, ErrNameHabitRequired},
		{"level zero", Request{Name: "a", Habit: "b", Level: 0}, ErrLevelOutOfRange},
		{"level six", Request{Name: "a", Habit: "b", Level: 6}, ErrLevelOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, IsValidation(err))
		})
	}
	for level := MinLevel; level <= MaxLevel; level++ {
		assert.NoError(t, Request{Name: "a", Habit: "b", Level: level}.Validate())
	}
}

func TestIntensity(t *testing.T) {
	assert.Equal(t, "very gentle and friendly", Intensity(1))
	assert.Equal(t, "lightly teasing", Intensity(2))
	assert.Equal(t, "moderately playful", Intensity(3))
	assert.Equal(t, "quite spicy", Intensity(4))
	assert.Equal(t, "full on roast mode", Intensity(5))
	assert.Equal(t, "moderately playful", Intensity(0))
	assert.Equal(t, "moderately playful", Intensity(9))
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Rahul", "late for everything", 5, "Casual focused vibe")

	assert.Contains(t, p, "Name: Rahul")
	assert.Contains(t, p, "Habit/Quirk: late for everything")
	assert.Contains(t, p, "Photo Vibe: Casual focused vibe")
	assert.Contains(t, p, "Roast Intensity: full on roast mode (level 5/5)")
	assert.Contains(t, p, "appropriate for intensity level 5")
	assert.Contains(t, p, "Hinglish")
	assert.Contains(t, p, "'87%'")
	for _, f := range requiredFields {
		assert.Contains(t, p, `"`+f+`"`)
	}
	assert.NotContains(t, p, "%!")
}

func TestFallback_IsPure(t *testing.T) {
	a := Fallback("Rahul", "late for everything")
	b := Fallback("Rahul", "late for everything")
	assert.Equal(t, a, b)

	assert.Equal(t, "Arey Rahul, ye late for everything wala habit toh bahut interesting hai! "+
		"Kabhi kabhi lagta hai ki tum apne aap ko roast karne ke liye hi ye sab karte ho.", a.Roast)
	assert.Equal(t, "But honestly Rahul, tumhara dedication aur passion dekh kar lagta hai "+
		"ki tum apne goals ke liye kuch bhi kar sakte ho.", a.Compliment)
	assert.Equal(t, "Friendly Fire", a.Tag)
	assert.Equal(t, Percent("75%"), a.ConfidencePct)
	assert.Equal(t, Score(7.5), a.WitScore)
	assert.True(t, IsFallback(a, "Rahul", "late for everything"))
	assert.False(t, IsFallback(a, "Priya", "late for everything"))
}

func TestParseReply_Valid(t *testing.T) {
	raw := "```json\n" + `{
		"roast": "Rahul bhai, clock bhi tumse sharmata hai",
		"compliment": "Par dil ke bade ho",
		"tag": "Thoda Tez",
		"confidence_pct": "87%",
		"wit_score": 9.1,
		"extra": true
	}` + "\n```"

	r, err := ParseReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "Rahul bhai, clock bhi tumse sharmata hai", r.Roast)
	assert.Equal(t, "Par dil ke bade ho", r.Compliment)
	assert.Equal(t, "Thoda Tez", r.Tag)
	assert.Equal(t, Percent("87%"), r.ConfidencePct)
	assert.Equal(t, Score(9.1), r.WitScore)
}

func TestParseReply_LenientScalars(t *testing.T) {
	r, err := ParseReply(`{"roast":"r","compliment":"c","tag":"t","confidence_pct":92,"wit_score":"8.46"}`)
	require.NoError(t, err)
	assert.Equal(t, Percent("92%"), r.ConfidencePct)
	assert.Equal(t, Score(8.5), r.WitScore)
}

func TestParseReply_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"Sorry, I can't help with that.",
		`{"roast": "unterminated`,
		`["roast","compliment"]`,
		`{"roast":"r","compliment":"c","tag":"t","confidence_pct":"80%","wit_score":"high"}`,
		`{"roast":"r","compliment":"c","tag":"t","confidence_pct":"high","wit_score":8}`,
		`{"roast":"r","compliment":"c","tag":"t","confidence_pct":"%","wit_score":8}`,
		`{"roast":"r","compliment":"c","tag":"t","confidence_pct":-5,"wit_score":8}`,
		`{"roast":"r","compliment":"c","tag":"t","confidence_pct":"140%","wit_score":8}`,
		`{"roast":"r","compliment":"c","tag":"t","confidence_pct":true,"wit_score":8}`,
	} {
		_, err := ParseReply(raw)
		assert.ErrorIs(t, err, ErrBadJSON, "raw=%q", raw)
	}
}

func TestParseReply_MissingFields(t *testing.T) {
	full := map[string]any{
		"roast": "r", "compliment": "c", "tag": "t", "confidence_pct": "80%", "wit_score": 8.0,
	}
	for _, drop := range requiredFields {
		t.Run(drop, func(t *testing.T) {
			m := map[string]any{}
			for k, v := range full {
				if k != drop {
					m[k] = v
				}
			}
			b, _ := json.Marshal(m)

			_, err := ParseReply(string(b))
			require.ErrorIs(t, err, ErrMissingFields)
			assert.Contains(t, err.Error(), drop)
		})
	}

	_, err := ParseReply(`{"roast":null,"compliment":"c","tag":"t","confidence_pct":"80%","wit_score":8}`)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestResult_JSONShape(t *testing.T) {
	r := Fallback("Rahul", "late for everything")
	r.PhotoCaption = "Casual focused vibe"
	r.WitScore = 9

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Len(t, m, 6)
	assert.Contains(t, string(b), `"wit_score":9.0`)
	assert.Regexp(t, regexp.MustCompile(`^\d+%$`), m["confidence_pct"])
	assert.Equal(t, "Casual focused vibe", m["photo_caption"])
}

func TestParseReply_ConfidenceForms(t *testing.T) {
	for raw, want := range map[string]Percent{
		`"87%"`:    "87%",
		`" 87 % "`: "87%",
		`"64"`:     "64%",
		`71.6`:     "72%",
		`0`:        "0%",
	} {
		r, err := ParseReply(`{"roast":"r","compliment":"c","tag":"t","confidence_pct":` + raw + `,"wit_score":8}`)
		require.NoError(t, err, raw)
		assert.Equal(t, want, r.ConfidencePct, raw)
	}
}

func TestParseReply_BlankFields(t *testing.T) {
	for _, raw := range []string{
		`{"roast":"","compliment":"c","tag":"t","confidence_pct":"80%","wit_score":8}`,
		`{"roast":"r","compliment":"   ","tag":"t","confidence_pct":"80%","wit_score":8}`,
		`{"roast":"r","compliment":"c","tag":"","confidence_pct":"80%","wit_score":8}`,
		`{"roast":"r","compliment":"c","tag":"t","confidence_pct":"","wit_score":8}`,
	} {
		_, err := ParseReply(raw)
		assert.ErrorIs(t, err, ErrMissingFields, raw)
	}
}
