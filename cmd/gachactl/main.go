package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tensuraworld/gachabot/gachabot"
	"github.com/tensuraworld/gachabot/gachabot/database"
	"github.com/tensuraworld/gachabot/gachabot/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "gachactl",
	Short:         "Maintenance tasks for the Tensura gacha bot database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.LogError("gachactl command failed", err)
		os.Exit(1)
	}
}

func loadConfigOnly() (*gachabot.Config, error) {
	cfg, err := gachabot.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(logger.New(cfg.Log)))
	return cfg, nil
}

// openDB loads the config and connects to the configured database.
func openDB(ctx context.Context) (*gachabot.Config, *database.DB, error) {
	cfg, err := loadConfigOnly()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
