package commands

import (
	"fmt"
	"runtime"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
)

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show the bot version",
}

func VersionHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "Tensura Gacha",
				Description: fmt.Sprintf("Version: `%s`\nCommit: `%s`\nGo: `%s`", b.Version, b.Commit, runtime.Version()),
				Color:       config.InfoColor,
			}},
		})
	}
}
