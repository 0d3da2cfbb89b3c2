package commands

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/tensuraworld/gachabot/gachabot/config"
)

var Commands = []discord.ApplicationCommandCreate{
	Version,
	Summon,
	Summon10,
	Store,
	Inventory,
	Character,
	Battle,
	Quest,
	Claim,
	CreateQuest,
	DelQuest,
	Profile,
	Balance,
	Daily,
	Tops,
	AddAdmin,
	RemoveAdmin,
	Admins,
	AddCoins,
	Upload,
	Backup,
	Backups,
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
}

