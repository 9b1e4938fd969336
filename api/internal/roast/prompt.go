package roast

import "fmt"

const defaultIntensity = "moderately playful"

var intensityDescriptions = map[int]string{
	1: "very gentle and friendly",
	2: "lightly teasing",
	3: "moderately playful",
	4: "quite spicy",
	5: "full on roast mode",
}

// Intensity maps a level to the tone phrase used in the prompt.
func Intensity(level int) string {
	if d, ok := intensityDescriptions[level]; ok {
		return d
	}
	return defaultIntensity
}

// BuildPrompt renders the roast instruction for the text model.
func BuildPrompt(name, habit string, level int, caption string) string {
	return fmt.Sprintf(`Generate a roast in Hinglish (Hindi + English) for a person with these details:

Name: %[1]s
Habit/Quirk: %[2]s
Photo Vibe: %[3]s
Roast Intensity: %[4]s (level %[5]d/5)

IMPORTANT REQUIREMENTS:
1. Output MUST be in Hinglish (Hindi + English mixed)
2. Target ONLY the habit/quirk/vibe, never personal attributes
3. Always include a sincere compliment
4. Keep it lighthearted and funny, never mean-spirited
5. Return a valid JSON object with these exact fields:

{
    "roast": "2-3 line funny roast in Hinglish",
    "compliment": "sincere compliment in Hinglish",
    "tag": "roast level tag (e.g., 'Thoda Tez', 'Friendly Fire', 'Sizzling', 'Full On Burn')",
    "confidence_pct": "percentage as string (e.g., '87%%')",
    "wit_score": number with one decimal (e.g., 9.1)
}

Make sure the roast is appropriate for intensity level %[5]d and focuses on the habit/quirk described.`,
		name, habit, caption, Intensity(level), level)
}
