package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/draw"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

var Summon = discord.SlashCommandCreate{
	Name:        "summon",
	Description: "✨ Summon one character",
}

var Summon10 = discord.SlashCommandCreate{
	Name:        "summon10",
	Description: "🌟 Summon ten characters at once",
}

func SummonHandler(b *gachabot.Bot, count int) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		result, err := b.Draw.Summon(ctx, utils.UserID(e.User().ID), count)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		b.Metrics.Summoned(result.Characters)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{summonEmbed(e.User().Username, result)},
		})
	}
}

func summonEmbed(username string, result *draw.SummonResult) discord.Embed {
	var sb strings.Builder
	best := game.RarityCommon
	for _, c := range result.Characters {
		sb.WriteString(utils.CharacterLine(c))
		sb.WriteByte('\n')
		if rarityRank(c.Rarity) > rarityRank(best) {
			best = c.Rarity
		}
	}

	sb.WriteString(fmt.Sprintf("\n💰 Spent **%d** coins • Balance **%d**", result.Cost, result.Coins))
	if result.LeveledUp {
		sb.WriteString(fmt.Sprintf("\n🎉 Level up! You are now level **%d**", result.Level))
	}

	title := "✨ Summon"
	if len(result.Characters) > 1 {
		title = fmt.Sprintf("✨ Summon x%d", len(result.Characters))
	}
	return discord.Embed{
		Title:       title,
		Description: sb.String(),
		Color:       utils.RarityColor(best),
		Footer:      &discord.EmbedFooter{Text: "Summoned by " + username},
	}
}

func rarityRank(r game.Rarity) int {
	for i, tier := range game.Rarities {
		if tier == r {
			return i
		}
	}
	return -1
}
