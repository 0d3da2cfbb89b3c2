package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/battle"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
)

var Battle = discord.SlashCommandCreate{
	Name:        "battle",
	Description: "⚔️ Challenge another player",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "opponent",
			Description: "Who to fight",
			Required:    true,
		},
	},
}

func BattleHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		var opponentID int64
		if opponent, ok := e.SlashCommandInteractionData().OptUser("opponent"); ok && !opponent.Bot {
			opponentID = utils.UserID(opponent.ID)
		}

		outcome, err := b.Battle.Battle(ctx, utils.UserID(e.User().ID), opponentID)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		b.Metrics.Battled(outcome.Tie)

		frames := battleFrames(outcome)
		if err := e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{frames[0]}}); err != nil {
			return err
		}
		for _, frame := range frames[1:] {
			time.Sleep(config.BattleFrameDelay)
			if _, err := e.UpdateInteractionResponse(discord.MessageUpdate{Embeds: &[]discord.Embed{frame}}); err != nil {
				slog.Warn("Failed to update battle frame", slog.String("type", "cmd"), slog.Any("error", err))
				return nil
			}
		}
		return nil
	}
}

// battleFrames narrates an already resolved fight. The last frame carries
// the result.
func battleFrames(o *battle.Outcome) []discord.Embed {
	versus := fmt.Sprintf("%s ⚔️ %s", utils.Mention(o.InitiatorID), utils.Mention(o.OpponentID))
	frames := []discord.Embed{
		{Title: "⚔️ Battle", Description: versus + "\n\nThe fighters square up...", Color: config.WarningColor},
		{Title: "⚔️ Battle", Description: fmt.Sprintf("%s\n\n💥 %d power clashes with %d power!", versus, o.InitiatorPower, o.OpponentPower), Color: config.WarningColor},
	}

	result := discord.Embed{
		Title: "🏆 Battle result",
		Color: config.SuccessColor,
		Fields: []discord.EmbedField{
			{Name: "Challenger", Value: fmt.Sprintf("%s\n⚔️ %d", utils.Mention(o.InitiatorID), o.InitiatorPower), Inline: utils.Ptr(true)},
			{Name: "Opponent", Value: fmt.Sprintf("%s\n⚔️ %d", utils.Mention(o.OpponentID), o.OpponentPower), Inline: utils.Ptr(true)},
		},
		Timestamp: &o.FoughtAt,
	}
	if o.Tie {
		result.Title = "🤝 Battle result"
		result.Color = config.InfoColor
	}

	desc := fmt.Sprintf("%s wins **%d** coins!%s", utils.Mention(o.WinnerID), o.Coins, levelNote(o.WinnerExp))
	if o.Tie {
		desc = fmt.Sprintf("Evenly matched! A coin flip sends **%d** coins to %s.%s", o.Coins, utils.Mention(o.WinnerID), levelNote(o.WinnerExp))
	}
	if o.LoserExp != nil && o.LoserExp.LeveledUp {
		desc += fmt.Sprintf("\n%s reached level **%d** anyway.", utils.Mention(o.LoserID), o.LoserExp.Level)
	}
	result.Description = desc

	return append(frames, result)
}

func levelNote(r *progression.Result) string {
	if r == nil || !r.LeveledUp {
		return ""
	}
	return fmt.Sprintf("\n🎉 Level up! Now level **%d**.", r.Level)
}
