package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

type RedisConfig struct {
	Addr     string        `toml:"addr" env:"REDIS_ADDR"`
	Password string        `toml:"password" env:"REDIS_PASSWORD"`
	DB       int           `toml:"db"`
	Limit    int           `toml:"command_limit"`
	Window   game.Duration `toml:"command_window"`
}

// Throttle is a per-user fixed-window command limiter backed by Redis. A
// Throttle without a reachable Redis lets everything through.
type Throttle struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewThrottle(ctx context.Context, cfg RedisConfig, limit int, window time.Duration) *Throttle {
	if cfg.Limit > 0 {
		limit = cfg.Limit
	}
	if cfg.Window > 0 {
		window = cfg.Window.Std()
	}
	t := &Throttle{limit: limit, window: window}
	if cfg.Addr == "" {
		return t
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, command throttling disabled",
			slog.String("type", "sys"),
			slog.String("addr", cfg.Addr),
			slog.Any("error", err))
		_ = client.Close()
		return t
	}

	t.client = client
	return t
}

func (t *Throttle) Enabled() bool {
	return t != nil && t.client != nil
}

// Allow counts one command for userID and reports whether it is within the
// limit. Redis errors fail open.
func (t *Throttle) Allow(ctx context.Context, userID int64) bool {
	if !t.Enabled() || t.limit <= 0 {
		return true
	}

	key := "throttle:" + strconv.FormatInt(int64(t.window.Seconds()), 10) + ":" + strconv.FormatInt(userID, 10)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("Throttle check failed", slog.String("type", "sys"), slog.Any("error", err))
		return true
	}
	if n == 1 {
		t.client.Expire(ctx, key, t.window)
	}
	return n <= int64(t.limit)
}

func (t *Throttle) Close() error {
	if !t.Enabled() {
		return nil
	}
	return t.client.Close()
}
