package roast

import "fmt"

const (
	FallbackTag        = "Friendly Fire"
	FallbackConfidence = "75%"
	FallbackWitScore   = 7.5
)

// Fallback is the canned result used whenever the model cannot be used.
// It is pure and cannot fail.
func Fallback(name, habit string) Result {
	return Result{
		Roast: fmt.Sprintf("Arey %s, ye %s wala habit toh bahut interesting hai! "+
			"Kabhi kabhi lagta hai ki tum apne aap ko roast karne ke liye hi ye sab karte ho.", name, habit),
		Compliment: fmt.Sprintf("But honestly %s, tumhara dedication aur passion dekh kar lagta hai "+
			"ki tum apne goals ke liye kuch bhi kar sakte ho.", name),
		Tag:           FallbackTag,
		ConfidencePct: FallbackConfidence,
		WitScore:      FallbackWitScore,
	}
}
