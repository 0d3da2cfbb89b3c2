package gachabot

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/database"
	"github.com/tensuraworld/gachabot/gachabot/metrics"
	"github.com/tensuraworld/gachabot/gachabot/services"
	"github.com/tensuraworld/gachabot/internal/domain/admin"
	"github.com/tensuraworld/gachabot/internal/domain/battle"
	"github.com/tensuraworld/gachabot/internal/domain/catalog"
	"github.com/tensuraworld/gachabot/internal/domain/draw"
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
	"github.com/tensuraworld/gachabot/internal/domain/players"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
	"github.com/tensuraworld/gachabot/internal/domain/quests"
	"github.com/tensuraworld/gachabot/internal/domain/shop"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string

	DB            *database.DB
	Ledger        game.Ledger
	SpacesService *services.SpacesService
	Metrics       *metrics.Metrics

	Progression *progression.Service
	Inventory   *inventory.Service
	Draw        *draw.Service
	Battle      *battle.Service
	Quests      *quests.Service
	Shop        *shop.Service
	Players     *players.Service
	Catalog     *catalog.Service
	Admin       *admin.Service
}

// SetupServices builds every engine over one ledger so they share its
// transactions.
func (b *Bot) SetupServices(ledger game.Ledger, rng game.Rand, now game.Clock) {
	cfg := b.Cfg.Game
	b.Ledger = ledger
	b.Progression = progression.NewService(ledger, cfg)
	b.Inventory = inventory.NewService(ledger, cfg)
	b.Draw = draw.NewService(ledger, cfg, rng, b.Inventory, b.Progression)
	b.Battle = battle.NewService(ledger, cfg, rng, now, b.Inventory, b.Progression)
	b.Quests = quests.NewService(ledger, cfg, b.Progression)
	b.Shop = shop.NewService(ledger, cfg, rng, b.Inventory)
	b.Players = players.NewService(ledger, cfg, now)
	b.Catalog = catalog.NewService(ledger)
	b.Admin = admin.NewService(ledger, cfg, now)
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds|cache.FlagMembers)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Tensura gacha bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), config.PresenceTimeout)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity("/summon in Tempest"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.String("type", "error"), slog.Any("error", err))
	}
}
