package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/services"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

var Backup = discord.SlashCommandCreate{
	Name:        "backup",
	Description: "💾 Snapshot the database (owner)",
}

var Backups = discord.SlashCommandCreate{
	Name:        "backups",
	Description: "💾 List stored database snapshots (admin)",
}

const maxListedBackups = 10

func BackupHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := b.Admin.RequireOwner(utils.UserID(e.User().ID)); err != nil {
			return utils.EH.HandleError(e, err)
		}
		if err := e.DeferCreateMessage(true); err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()

		var uploader services.BackupUploader
		if b.SpacesService != nil {
			uploader = b.SpacesService
		}
		result, err := services.RunBackup(ctx, b.DB, uploader, b.Cfg.DB.BackupDir, time.Now())
		if err != nil {
			return utils.EH.HandleDeferredError(e, err)
		}

		desc := "Snapshot stored as `" + result.Key + "`."
		if result.Key == "" {
			desc = "Object storage is not configured. Snapshot written to `" + result.Path + "`."
		}
		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{Title: "💾 Backup complete", Description: desc, Color: config.SuccessColor}},
		})
		return err
	}
}

func BackupsHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		if err := b.Admin.RequireAdmin(ctx, utils.UserID(e.User().ID)); err != nil {
			return utils.EH.HandleError(e, err)
		}
		if b.SpacesService == nil {
			return utils.EH.HandleError(e, fmt.Errorf("%w: object storage is not configured", game.ErrNotFound))
		}

		backups, err := b.SpacesService.ListBackups(ctx)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateInfoEmbed(e, "💾 Backups", backupList(backups, maxListedBackups))
	}
}

func backupList(backups []services.Backup, limit int) string {
	if len(backups) == 0 {
		return "No backups stored yet."
	}
	var sb strings.Builder
	for i, bk := range backups {
		if i == limit {
			sb.WriteString(fmt.Sprintf("…and %d older", len(backups)-limit))
			break
		}
		sb.WriteString(fmt.Sprintf("`%s` • %.1f KB • <t:%d:R>\n", bk.Key, float64(bk.Size)/1024, bk.Modified.Unix()))
	}
	return sb.String()
}
