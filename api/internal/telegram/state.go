package telegram

import "roast-bot/api/internal/roast"

// Level returns the intensity chosen for the chat, or the default.
func (r *Router) Level(chatID int64) int {
	if v, ok := r.levels.Load(chatID); ok {
		if lvl, _ := v.(int); lvl != 0 {
			return lvl
		}
	}
	return defaultLevel
}

func (r *Router) SetLevel(chatID int64, level int) error {
	if level < roast.MinLevel || level > roast.MaxLevel {
		return roast.ErrLevelOutOfRange
	}
	r.levels.Store(chatID, level)
	return nil
}
