package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/utils"
	"github.com/tensuraworld/gachabot/internal/domain/admin"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

var AddAdmin = discord.SlashCommandCreate{
	Name:        "addadmin",
	Description: "👑 Grant admin rights (owner)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{Name: "user", Description: "New admin", Required: true},
	},
}

var RemoveAdmin = discord.SlashCommandCreate{
	Name:        "removeadmin",
	Description: "👑 Revoke admin rights (owner)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{Name: "user", Description: "Admin to remove", Required: true},
	},
}

var Admins = discord.SlashCommandCreate{
	Name:        "admins",
	Description: "👑 List bot admins",
}

var AddCoins = discord.SlashCommandCreate{
	Name:        "addcoins",
	Description: "💰 Give coins to a player (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{Name: "user", Description: "Recipient", Required: true},
		discord.ApplicationCommandOptionInt{Name: "amount", Description: "Coins to add", Required: true, MinValue: utils.Ptr(1)},
	},
}

var Upload = discord.SlashCommandCreate{
	Name:        "upload",
	Description: "🖼️ Add a character to the catalog (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "character",
			Description: "Name|Rarity|Faction|Power|Price",
			Required:    true,
		},
		discord.ApplicationCommandOptionAttachment{
			Name:        "image",
			Description: "Character art",
		},
	},
}

func AddAdminHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		target := e.SlashCommandInteractionData().User("user")
		if err := b.Admin.AddAdmin(ctx, utils.UserID(e.User().ID), utils.UserID(target.ID)); err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, "👑 Admin added", target.Mention()+" is now an admin.")
	}
}

func RemoveAdminHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		target := e.SlashCommandInteractionData().User("user")
		if err := b.Admin.RemoveAdmin(ctx, utils.UserID(e.User().ID), utils.UserID(target.ID)); err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, "👑 Admin removed", target.Mention()+" is no longer an admin.")
	}
}

func AdminsHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		admins, err := b.Admin.ListAdmins(ctx)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateInfoEmbed(e, "👑 Admins", adminList(b.Cfg.Game.OwnerID, admins))
	}
}

func adminList(ownerID int64, admins []*game.Admin) string {
	var sb strings.Builder
	if ownerID != 0 {
		sb.WriteString(fmt.Sprintf("👑 %s (owner)\n", utils.Mention(ownerID)))
	}
	for _, a := range admins {
		sb.WriteString(fmt.Sprintf("🛡️ %s • added by %s <t:%d:d>\n", utils.Mention(a.UserID), utils.Mention(a.AddedBy), a.AddedAt.Unix()))
	}
	if sb.Len() == 0 {
		return "No admins configured."
	}
	return sb.String()
}

func AddCoinsHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := commandContext()
		defer cancel()

		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount := int64(data.Int("amount"))

		user, err := b.Admin.AddCoins(ctx, utils.UserID(e.User().ID), utils.UserID(target.ID), amount)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, "💰 Coins added",
			fmt.Sprintf("Gave **%d** coins to %s. New balance: **%d**", amount, target.Mention(), user.Coins))
	}
}

func UploadHandler(b *gachabot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		actorID := utils.UserID(e.User().ID)
		data := e.SlashCommandInteractionData()

		ctx, cancel := commandContext()
		defer cancel()

		if err := b.Admin.RequireAdmin(ctx, actorID); err != nil {
			return utils.EH.HandleError(e, err)
		}
		character, err := admin.ParseCharacter(data.String("character"))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		if attachment, ok := data.OptAttachment("image"); ok {
			url, err := storeArt(ctx, b, character.Name, attachment)
			if err != nil {
				return utils.EH.HandleDeferredError(e, err)
			}
			character.ImageURL = url
		}

		created, err := b.Admin.UploadCharacter(ctx, actorID, character)
		if err != nil {
			return utils.EH.HandleDeferredError(e, err)
		}

		embed := characterEmbed(created, nil)
		embed.Title = "🖼️ Added " + embed.Title
		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{Embeds: &[]discord.Embed{embed}})
		return err
	}
}

// storeArt copies a Discord attachment into object storage and returns its
// public URL. Without object storage the attachment URL is kept as is.
func storeArt(ctx context.Context, b *gachabot.Bot, name string, attachment discord.Attachment) (string, error) {
	contentType := ""
	if attachment.ContentType != nil {
		contentType = *attachment.ContentType
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: the attachment must be an image", game.ErrInvalidInput)
	}
	if attachment.Size > config.MaxAttachmentBytes {
		return "", fmt.Errorf("%w: the image is larger than %d MB", game.ErrInvalidInput, config.MaxAttachmentBytes>>20)
	}
	if b.SpacesService == nil {
		return attachment.URL, nil
	}

	data, err := fetchAttachment(ctx, attachment.URL)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(attachment.Filename))
	if ext == "" {
		ext = ".png"
	}
	return b.SpacesService.UploadArt(ctx, name, ext, contentType, data)
}

func fetchAttachment(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, config.AttachmentFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build attachment request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download attachment: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxAttachmentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	if len(data) > config.MaxAttachmentBytes {
		return nil, fmt.Errorf("%w: the image is too large", game.ErrInvalidInput)
	}
	return data, nil
}
