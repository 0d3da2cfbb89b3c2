package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

// FormatDuration renders a wait as "1h 5m 3s", dropping leading zero units.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "1s"
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || h > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}

func RarityColor(r game.Rarity) int {
	switch r {
	case game.RarityRare:
		return config.RarityRareColor
	case game.RarityEpic:
		return config.RarityEpicColor
	case game.RarityLegendary:
		return config.RarityLegendaryColor
	case game.RarityMythic:
		return config.RarityMythicColor
	default:
		return config.RarityCommonColor
	}
}

func RarityEmoji(r game.Rarity) string {
	switch r {
	case game.RarityRare:
		return "🔷"
	case game.RarityEpic:
		return "🟣"
	case game.RarityLegendary:
		return "🌟"
	case game.RarityMythic:
		return "💠"
	default:
		return "⚪"
	}
}

// CharacterLine is the one-line listing used by inventory, summon and search.
func CharacterLine(c *game.Character) string {
	return fmt.Sprintf("%s **%s** `#%d` %s • %s • ⚔️ %d", RarityEmoji(c.Rarity), c.Name, c.ID, c.Rarity, c.Faction, c.Power)
}

// ExpBar renders progress towards the next level.
func ExpBar(exp, required int64, width int) string {
	if required <= 0 || width <= 0 {
		return ""
	}
	filled := int(exp * int64(width) / required)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

// UserID converts a Discord snowflake into the ledger's user key.
func UserID(id snowflake.ID) int64 {
	return int64(id)
}

func Mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

func Ptr[T any](v T) *T {
	return &v
}
