package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"roast-bot/api/internal/roast"
)

const (
	startText = "Roast bot here 🔥\n" +
		"Send /roast Name | habit | level, or a photo with the same caption.\n" +
		"Level is 1 (gentle) to 5 (full on roast). /level sets the default for this chat."
	usageText = "Usage: /roast Rahul | codes at 3am | 4"

	levelPrefix = "level:"
)

var levelLabels = map[int]string{
	1: "1 😇",
	2: "2 🙂",
	3: "3 😏",
	4: "4 🌶",
	5: "5 🔥",
}

func makeLevelKeyboard(current int) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, roast.MaxLevel)
	for lvl := roast.MinLevel; lvl <= roast.MaxLevel; lvl++ {
		label := levelLabels[lvl]
		if lvl == current {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, levelPrefix+strconv.Itoa(lvl)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// FormatResult renders a roast as a plain-text chat message.
func FormatResult(res roast.Result) string {
	var b strings.Builder
	b.WriteString("🔥 ")
	b.WriteString(res.Roast)
	b.WriteString("\n\n💚 ")
	b.WriteString(res.Compliment)
	fmt.Fprintf(&b, "\n\n🏷 %s\nConfidence: %s · Wit: %.1f/10", res.Tag, res.ConfidencePct, float64(res.WitScore))
	return b.String()
}
