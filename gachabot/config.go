package gachabot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/tensuraworld/gachabot/backend"
	"github.com/tensuraworld/gachabot/gachabot/database"
	"github.com/tensuraworld/gachabot/gachabot/handlers"
	"github.com/tensuraworld/gachabot/gachabot/logger"
	"github.com/tensuraworld/gachabot/gachabot/services"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

// LoadConfig reads path as TOML, then applies a .env file next to the
// working directory (when present) and the process environment on top.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// environment only
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.Game = cfg.Game.WithDefaults()
	if cfg.Bot.OwnerID != 0 {
		cfg.Game.OwnerID = int64(cfg.Bot.OwnerID)
	}
	if cfg.DB.BackupDir == "" {
		cfg.DB.BackupDir = "backups"
	}
	if cfg.Ops.Addr == "" {
		cfg.Ops.Addr = ":9090"
	}
	if cfg.API.Enabled() && cfg.API.RateWindow == 0 {
		cfg.API.RateWindow = game.Duration(time.Minute)
	}
	return &cfg, nil
}

type Config struct {
	Log    logger.Config         `toml:"log"`
	Bot    BotConfig             `toml:"bot"`
	DB     database.DBConfig     `toml:"db"`
	Redis  handlers.RedisConfig  `toml:"redis"`
	Spaces services.SpacesConfig `toml:"spaces"`
	Ops    OpsConfig             `toml:"ops"`
	API    backend.Config        `toml:"api"`
	Game   game.Config           `toml:"game"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token" env:"BOT_TOKEN"`
	OwnerID   snowflake.ID   `toml:"owner_id" env:"OWNER_ID"`
}

type OpsConfig struct {
	Addr string `toml:"addr" env:"OPS_ADDR"`
}

// Validate reports settings the bot cannot start without.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("bot token is required (bot.token or BOT_TOKEN)")
	}
	if c.Game.WinCoinsMax < c.Game.WinCoinsMin {
		return fmt.Errorf("game.win_coins_max (%d) is below game.win_coins_min (%d)", c.Game.WinCoinsMax, c.Game.WinCoinsMin)
	}
	return nil
}
