package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/backend"
	apihandlers "github.com/tensuraworld/gachabot/backend/handlers"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/commands"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/gachabot/database"
	"github.com/tensuraworld/gachabot/gachabot/handlers"
	"github.com/tensuraworld/gachabot/gachabot/logger"
	"github.com/tensuraworld/gachabot/gachabot/metrics"
	"github.com/tensuraworld/gachabot/gachabot/services"
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/gateways/database/repositories"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	shouldSeed := flag.Bool("seed", false, "Seed starter characters and quests into an empty database")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := gachabot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.New(cfg.Log)))

	slog.Info("Starting Tensura gacha bot",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}

	dbStartTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(-1)
	}
	if *shouldSeed {
		if err := db.SeedStarterData(ctx); err != nil {
			slog.Error("Failed to seed starter data", slog.String("type", "db"), slog.Any("error", err))
			os.Exit(-1)
		}
	}
	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.String("driver", db.Driver()),
		slog.Duration("took", time.Since(dbStartTime)))

	ledger, err := repositories.NewLedger(db.BunDB(), cfg.DB.CacheSize)
	if err != nil {
		slog.Error("Failed to create ledger", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(-1)
	}

	b := gachabot.New(*cfg, version, commit)
	b.DB = db
	b.Metrics = metrics.New()
	b.SetupServices(ledger, game.DefaultRand, time.Now)

	if cfg.Spaces.Enabled() {
		spacesService, err := services.NewSpacesService(ctx, cfg.Spaces)
		if err != nil {
			slog.Error("Failed to initialize object storage", slog.String("type", "sys"), slog.Any("error", err))
			os.Exit(-1)
		}
		b.SpacesService = spacesService
	} else {
		slog.Warn("Object storage not configured, uploads keep Discord URLs and backups stay local", slog.String("type", "sys"))
	}

	throttle := handlers.NewThrottle(ctx, cfg.Redis, config.DefaultThrottleRate, config.DefaultThrottleSpan)
	defer throttle.Close()
	w := handlers.NewWrapper(b.Metrics, throttle)

	h := handler.New()

	// System
	h.Command("/version", w.WrapWithLogging("version", commands.VersionHandler(b)))

	// Gacha
	h.Command("/summon", w.WrapWithLogging("summon", commands.SummonHandler(b, 1)))
	h.Command("/summon10", w.WrapWithLogging("summon10", commands.SummonHandler(b, 10)))
	h.Command("/inventory", w.WrapWithLogging("inventory", commands.InventoryHandler(b)))
	h.Command("/character", w.WrapWithLogging("character", commands.CharacterHandler(b)))
	h.Command("/store", w.WrapWithLogging("store", commands.StoreHandler(b)))
	h.Component("/store/buy/{id}", w.WrapComponentWithLogging("store-buy", commands.StoreBuyComponent(b)))
	h.Component("/store/next", w.WrapComponentWithLogging("store-next", commands.StoreNextComponent(b)))

	// Battle and quests
	h.Command("/battle", w.WrapWithLogging("battle", commands.BattleHandler(b)))
	h.Command("/quest", w.WrapWithLogging("quest", commands.QuestHandler(b)))
	h.Command("/claim", w.WrapWithLogging("claim", commands.ClaimHandler(b)))
	h.Command("/createquest", w.WrapWithLogging("createquest", commands.CreateQuestHandler(b)))
	h.Command("/delquest", w.WrapWithLogging("delquest", commands.DelQuestHandler(b)))

	// Players
	h.Command("/profile", w.WrapWithLogging("profile", commands.ProfileHandler(b)))
	h.Command("/balance", w.WrapWithLogging("balance", commands.BalanceHandler(b)))
	h.Command("/daily", w.WrapWithLogging("daily", commands.DailyHandler(b)))
	h.Command("/tops", w.WrapWithLogging("tops", commands.TopsHandler(b)))

	// Admin
	h.Command("/addadmin", w.WrapWithLogging("addadmin", commands.AddAdminHandler(b)))
	h.Command("/removeadmin", w.WrapWithLogging("removeadmin", commands.RemoveAdminHandler(b)))
	h.Command("/admins", w.WrapWithLogging("admins", commands.AdminsHandler(b)))
	h.Command("/addcoins", w.WrapWithLogging("addcoins", commands.AddCoinsHandler(b)))
	h.Command("/upload", w.WrapWithLogging("upload", commands.UploadHandler(b)))
	h.Command("/backup", w.WrapWithLogging("backup", commands.BackupHandler(b)))
	h.Command("/backups", w.WrapWithLogging("backups", commands.BackupsHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"))
		}
	}

	ops := metrics.NewServer(cfg.Ops.Addr, b.Metrics, db, version)
	ops.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := ops.Shutdown(ctx); err != nil {
			slog.Warn("Ops server shutdown failed", slog.String("type", "sys"), slog.Any("error", err))
		}
	}()

	if cfg.API.Enabled() {
		api := backend.New(cfg.API, &apihandlers.WebApp{
			DB:        db,
			Store:     ledger,
			Players:   b.Players,
			Catalog:   b.Catalog,
			Inventory: b.Inventory,
			Quests:    b.Quests,
			Version:   version,
			Commit:    commit,
		})
		api.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
			defer cancel()
			if err := api.Shutdown(ctx); err != nil {
				slog.Warn("API server shutdown failed", slog.String("type", "sys"), slog.Any("error", err))
			}
		}()
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"))
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...", slog.String("type", "sys"))
}
