package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

var Store = discord.SlashCommandCreate{
	Name:        "store",
	Description: "🛒 See what the store is offering",
}

const (
	storeBuyPrefix = "/store/buy/"
	storeNextID    = "/store/next"
)

func StoreHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		offer, err := b.Shop.PresentOffer(ctx)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds:     []discord.Embed{offerEmbed(offer)},
			Components: offerComponents(offer),
		})
	}
}

// StoreBuyComponent handles the Buy button. The character id travels in the
// custom id so a stale offer still buys what was shown.
func StoreBuyComponent(b *gachabot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		characterID, err := parseStoreBuyID(e.Data.CustomID())
		if err != nil {
			return utils.EH.HandleComponentError(e, err)
		}

		ctx, cancel := commandContext()
		defer cancel()

		receipt, err := b.Shop.Purchase(ctx, utils.UserID(e.User().ID), characterID)
		if err != nil {
			return utils.EH.HandleComponentError(e, err)
		}
		b.Metrics.Purchased()

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🛍️ Purchase complete",
				Description: fmt.Sprintf("%s bought %s for **%d** coins.\nYou now own **%d**. Balance: **%d**",
					e.User().Mention(), utils.CharacterLine(receipt.Character), receipt.Price, receipt.Owned, receipt.Coins),
				Color: config.SuccessColor,
			}},
		})
	}
}

func StoreNextComponent(b *gachabot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		offer, err := b.Shop.PresentOffer(ctx)
		if err != nil {
			return utils.EH.HandleComponentError(e, err)
		}

		components := offerComponents(offer)
		return e.UpdateMessage(discord.MessageUpdate{
			Embeds:     &[]discord.Embed{offerEmbed(offer)},
			Components: &components,
		})
	}
}

func parseStoreBuyID(customID string) (int64, error) {
	parts := strings.Split(customID, "/")
	if len(parts) != 4 || parts[1] != "store" || parts[2] != "buy" {
		return 0, fmt.Errorf("%w: malformed store button %q", game.ErrInvalidInput, customID)
	}
	id, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: malformed store button %q", game.ErrInvalidInput, customID)
	}
	return id, nil
}

func offerEmbed(c *game.Character) discord.Embed {
	embed := discord.Embed{
		Title:       "🛒 Store offer",
		Description: fmt.Sprintf("%s\n\n💰 Price: **%d** coins", utils.CharacterLine(c), c.Price),
		Color:       utils.RarityColor(c.Rarity),
		Footer:      &discord.EmbedFooter{Text: "Buy it or see the next offer"},
	}
	if c.ImageURL != "" {
		embed.Thumbnail = &discord.EmbedResource{URL: c.ImageURL}
	}
	return embed
}

func offerComponents(c *game.Character) []discord.ContainerComponent {
	return []discord.ContainerComponent{
		discord.NewActionRow(
			discord.NewPrimaryButton(fmt.Sprintf("Buy (%d)", c.Price), storeBuyPrefix+strconv.FormatInt(c.ID, 10)),
			discord.NewSecondaryButton("Next", storeNextID),
		),
	}
}
