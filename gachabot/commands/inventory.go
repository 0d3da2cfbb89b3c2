package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
)

var Inventory = discord.SlashCommandCreate{
	Name:        "inventory",
	Description: "🎒 Browse the characters you own",
}

func InventoryHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		userID := utils.UserID(e.User().ID)
		if _, err := b.Players.Ensure(ctx, userID); err != nil {
			return utils.EH.HandleError(e, err)
		}
		items, err := b.Inventory.List(ctx, userID)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		if len(items) == 0 {
			return utils.EH.CreateInfoEmbed(e, "🎒 Inventory", "Your inventory is empty. Use `/summon` or `/store` to get characters.")
		}

		total := inventory.TotalPower(items)
		pages := b.Inventory.Pages(len(items))
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle(fmt.Sprintf("🎒 %s's Inventory", e.User().Username)).
					SetDescription(inventoryPage(b.Inventory.Page(items, page))).
					SetColor(config.InfoColor).
					SetFooterText(fmt.Sprintf("Page %d/%d • %d characters • ⚔️ %d total power", page+1, pages, len(items), total))
			},
			Pages:      pages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func inventoryPage(items []*game.InventoryItem) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(utils.CharacterLine(item.Character))
		if item.Count > 1 {
			sb.WriteString(fmt.Sprintf(" ×%d", item.Count))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
