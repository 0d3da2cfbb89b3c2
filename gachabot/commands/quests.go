package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/admin"
	"github.com/tensuraworld/gachabot/internal/domain/quests"
)

var Quest = discord.SlashCommandCreate{
	Name:        "quest",
	Description: "📜 List quests and whether you have claimed them",
}

var Claim = discord.SlashCommandCreate{
	Name:        "claim",
	Description: "🎁 Claim a quest reward",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "id",
			Description: "Quest id from /quest",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
	},
}

var CreateQuest = discord.SlashCommandCreate{
	Name:        "createquest",
	Description: "🛠️ Create a quest (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "quest",
			Description: "Name|Coins|Exp|Description",
			Required:    true,
		},
	},
}

var DelQuest = discord.SlashCommandCreate{
	Name:        "delquest",
	Description: "🗑️ Delete a quest (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "id",
			Description: "Quest id",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
	},
}

func QuestHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		statuses, err := b.Quests.List(ctx, utils.UserID(e.User().ID))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		if len(statuses) == 0 {
			return utils.EH.CreateInfoEmbed(e, "📜 Quests", "There are no quests right now.")
		}

		shown := statuses
		if len(shown) > config.QuestsPerPage {
			shown = shown[:config.QuestsPerPage]
		}
		embed := discord.Embed{
			Title:       "📜 Quests",
			Description: questList(shown),
			Color:       config.InfoColor,
			Footer:      &discord.EmbedFooter{Text: "Claim with /claim <id>"},
		}
		if hidden := len(statuses) - len(shown); hidden > 0 {
			embed.Footer.Text = fmt.Sprintf("Claim with /claim <id> • %d more not shown", hidden)
		}
		return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{embed}})
	}
}

func questList(statuses []quests.Status) string {
	var sb strings.Builder
	for _, s := range statuses {
		mark := "🟢"
		if s.Claimed {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("%s **#%d %s** • 💰 %d • ✨ %d exp\n", mark, s.Quest.ID, s.Quest.Name, s.Quest.RewardCoins, s.Quest.RewardExp))
		if s.Quest.Description != "" {
			sb.WriteString("> " + s.Quest.Description + "\n")
		}
	}
	return sb.String()
}

func ClaimHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		questID := int64(e.SlashCommandInteractionData().Int("id"))
		reward, err := b.Quests.Claim(ctx, utils.UserID(e.User().ID), questID)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		b.Metrics.QuestClaimed()

		desc := fmt.Sprintf("You completed **%s** and earned 💰 **%d** coins and ✨ **%d** exp.", reward.Name, reward.Coins, reward.Exp)
		if reward.LeveledUp {
			desc += fmt.Sprintf("\n🎉 Level up! You are now level **%d**.", reward.Level)
		}
		return utils.EH.CreateSuccessEmbed(e, "🎁 Quest claimed", desc)
	}
}

func CreateQuestHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		if err := b.Admin.RequireAdmin(ctx, utils.UserID(e.User().ID)); err != nil {
			return utils.EH.HandleError(e, err)
		}
		quest, err := admin.ParseQuest(e.SlashCommandInteractionData().String("quest"))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		if err := b.Quests.Create(ctx, quest); err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, "📜 Quest created",
			fmt.Sprintf("**#%d %s** • 💰 %d • ✨ %d exp", quest.ID, quest.Name, quest.RewardCoins, quest.RewardExp))
	}
}

func DelQuestHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		if err := b.Admin.RequireAdmin(ctx, utils.UserID(e.User().ID)); err != nil {
			return utils.EH.HandleError(e, err)
		}
		questID := int64(e.SlashCommandInteractionData().Int("id"))
		if err := b.Quests.Delete(ctx, questID); err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, "🗑️ Quest deleted", fmt.Sprintf("Quest #%d and its claims are gone.", questID))
	}
}
