package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

var Character = discord.SlashCommandCreate{
	Name:        "character",
	Description: "🔎 Look up a character in the catalog",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Part of the character's name",
			Required:    true,
		},
	},
}

func CharacterHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		query := e.SlashCommandInteractionData().String("name")
		matches, err := b.Catalog.Search(ctx, query, config.SearchResultLimit)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		if len(matches) == 0 {
			return utils.EH.HandleError(e, fmt.Errorf("%w: no character matches %q", game.ErrNotFound, query))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{characterEmbed(matches[0], matches[1:])},
		})
	}
}

func characterEmbed(c *game.Character, others []*game.Character) discord.Embed {
	embed := discord.Embed{
		Title: fmt.Sprintf("%s %s", utils.RarityEmoji(c.Rarity), c.Name),
		Color: utils.RarityColor(c.Rarity),
		Fields: []discord.EmbedField{
			{Name: "Rarity", Value: string(c.Rarity), Inline: utils.Ptr(true)},
			{Name: "Faction", Value: c.Faction, Inline: utils.Ptr(true)},
			{Name: "Power", Value: fmt.Sprintf("⚔️ %d", c.Power), Inline: utils.Ptr(true)},
			{Name: "Store price", Value: fmt.Sprintf("💰 %d", c.Price), Inline: utils.Ptr(true)},
		},
		Footer: &discord.EmbedFooter{Text: fmt.Sprintf("ID #%d", c.ID)},
	}
	if c.ImageURL != "" {
		embed.Image = &discord.EmbedResource{URL: c.ImageURL}
	}
	if len(others) > 0 {
		names := make([]string, len(others))
		for i, o := range others {
			names[i] = fmt.Sprintf("%s (#%d)", o.Name, o.ID)
		}
		embed.Description = "Also matching: " + strings.Join(names, ", ")
	}
	return embed
}
