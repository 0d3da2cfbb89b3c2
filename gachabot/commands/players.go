package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/players"
	"golang.org/x/sync/errgroup"
)

var Profile = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "🪪 Show your level, coins and collection",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Someone else's profile",
		},
	},
}

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "💰 View your coins and level",
}

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "📅 Claim your daily coins",
}

var Tops = discord.SlashCommandCreate{
	Name:        "tops",
	Description: "🏆 Show the strongest players",
}

func ProfileHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		target := e.User()
		if u, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
			target = u
		}

		profile, err := b.Players.Profile(ctx, utils.UserID(target.ID))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		embed := profileEmbed(target.Username, profile)
		if avatar := target.EffectiveAvatarURL(); avatar != "" {
			embed.Thumbnail = &discord.EmbedResource{URL: avatar}
		}
		return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{embed}})
	}
}

func profileEmbed(username string, p *players.Profile) discord.Embed {
	return discord.Embed{
		Title: "🪪 " + username,
		Color: config.InfoColor,
		Fields: []discord.EmbedField{
			{Name: "Level", Value: fmt.Sprintf("**%d**", p.User.Level), Inline: utils.Ptr(true)},
			{Name: "Coins", Value: fmt.Sprintf("💰 %d", p.User.Coins), Inline: utils.Ptr(true)},
			{Name: "Power", Value: fmt.Sprintf("⚔️ %d", p.TotalPower), Inline: utils.Ptr(true)},
			{Name: "Experience", Value: fmt.Sprintf("%s %d/%d", utils.ExpBar(p.User.Exp, p.RequiredExp, 10), p.User.Exp, p.RequiredExp)},
			{Name: "Collection", Value: fmt.Sprintf("%d distinct • %d total", p.Distinct, p.Owned)},
		},
	}
}

func BalanceHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		user, err := b.Players.Ensure(ctx, utils.UserID(e.User().ID))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		required := b.Players.RequiredExp(user.Level)
		return utils.EH.CreateInfoEmbed(e, "💰 Balance",
			fmt.Sprintf("Coins: **%d**\nLevel: **%d**\nExp: %s %d/%d", user.Coins, user.Level, utils.ExpBar(user.Exp, required, 10), user.Exp, required))
	}
}

func DailyHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		reward, err := b.Players.Daily(ctx, utils.UserID(e.User().ID))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		b.Metrics.DailyClaimed()

		return utils.EH.CreateSuccessEmbed(e, "📅 Daily reward claimed!",
			fmt.Sprintf("You received 💰 **%d** coins. Balance: **%d**\nCome back <t:%d:R>.", reward.Coins, reward.Balance, reward.NextAt.Unix()))
	}
}

func TopsHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		users, err := b.Players.Leaderboard(ctx)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		if len(users) == 0 {
			return utils.EH.CreateInfoEmbed(e, "🏆 Top players", "Nobody has played yet.")
		}

		names := resolveNames(ctx, b, users)
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🏆 Top players",
				Description: topsList(users, names),
				Color:       config.WarningColor,
			}},
		})
	}
}

// resolveNames looks up display names with a bounded number of concurrent
// REST calls. Users that cannot be resolved are left out of the map.
func resolveNames(ctx context.Context, b *gachabot.Bot, users []*game.User) map[int64]string {
	var (
		mu    sync.Mutex
		names = make(map[int64]string, len(users))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.NameLookupWorkers)
	for _, u := range users {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			user, err := b.Client.Rest().GetUser(snowflake.ID(u.ID), rest.WithCtx(gctx))
			if err != nil {
				slog.Debug("Failed to resolve user name",
					slog.String("type", "cmd"),
					slog.Int64("user_id", u.ID),
					slog.Any("error", err))
				return nil
			}
			mu.Lock()
			names[u.ID] = user.Username
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return names
}

func topsList(users []*game.User, names map[int64]string) string {
	var sb strings.Builder
	for i, u := range users {
		name, ok := names[u.ID]
		if !ok {
			name = utils.Mention(u.ID)
		}
		medal := fmt.Sprintf("`#%d`", i+1)
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		sb.WriteString(fmt.Sprintf("%s **%s** • Lv %d (%d exp) • 💰 %d\n", medal, name, u.Level, u.Exp, u.Coins))
	}
	return sb.String()
}
