package game

import (
	"math/rand/v2"
	"time"
)

// Config holds the static reward and timing rules shared by the engines.
type Config struct {
	OwnerID int64 `toml:"owner_id"`

	StartCoins int64 `toml:"start_coins"`
	LevelStep  int64 `toml:"level_step"`

	SummonCost    int64 `toml:"summon_cost"`
	TenSummonCost int64 `toml:"ten_summon_cost"`
	SummonExp     int64 `toml:"summon_exp"`

	BattleCooldown Duration `toml:"battle_cooldown"`
	OpponentBusy   Duration `toml:"opponent_busy"`
	WinCoinsMin    int64    `toml:"win_coins_min"`
	WinCoinsMax    int64    `toml:"win_coins_max"`
	WinExp         int64    `toml:"win_exp"`
	LoseExp        int64    `toml:"lose_exp"`

	DailyCoins    int64    `toml:"daily_coins"`
	DailyCooldown Duration `toml:"daily_cooldown"`

	TopLimit          int `toml:"top_limit"`
	InventoryPageSize int `toml:"inventory_page_size"`
}

func DefaultConfig() Config {
	return Config{
		StartCoins:        200,
		LevelStep:         100,
		SummonCost:        50,
		TenSummonCost:     500,
		SummonExp:         10,
		BattleCooldown:    Duration(600 * time.Second),
		OpponentBusy:      Duration(10 * time.Second),
		WinCoinsMin:       80,
		WinCoinsMax:       150,
		WinExp:            40,
		LoseExp:           15,
		DailyCoins:        100,
		DailyCooldown:     Duration(24 * time.Hour),
		TopLimit:          10,
		InventoryPageSize: 8,
	}
}

// WithDefaults fills every zero field from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.StartCoins == 0 {
		c.StartCoins = d.StartCoins
	}
	if c.LevelStep <= 0 {
		c.LevelStep = d.LevelStep
	}
	if c.SummonCost == 0 {
		c.SummonCost = d.SummonCost
	}
	if c.TenSummonCost == 0 {
		c.TenSummonCost = d.TenSummonCost
	}
	if c.SummonExp == 0 {
		c.SummonExp = d.SummonExp
	}
	if c.BattleCooldown == 0 {
		c.BattleCooldown = d.BattleCooldown
	}
	if c.OpponentBusy == 0 {
		c.OpponentBusy = d.OpponentBusy
	}
	if c.WinCoinsMin == 0 && c.WinCoinsMax == 0 {
		c.WinCoinsMin, c.WinCoinsMax = d.WinCoinsMin, d.WinCoinsMax
	}
	if c.WinExp == 0 {
		c.WinExp = d.WinExp
	}
	if c.LoseExp == 0 {
		c.LoseExp = d.LoseExp
	}
	if c.DailyCoins == 0 {
		c.DailyCoins = d.DailyCoins
	}
	if c.DailyCooldown == 0 {
		c.DailyCooldown = d.DailyCooldown
	}
	if c.TopLimit <= 0 {
		c.TopLimit = d.TopLimit
	}
	if c.InventoryPageSize <= 0 {
		c.InventoryPageSize = d.InventoryPageSize
	}
	return c
}

// NewUser returns the record a user starts with on first interaction.
func (c Config) NewUser(id int64) User {
	return User{ID: id, Coins: c.StartCoins, Level: 1, Exp: 0}
}

// Duration decodes TOML strings such as "10m" or "24h".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Rand is the random source the engines draw from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRand is safe for concurrent use.
var DefaultRand Rand = globalRand{}

// Clock returns the current time.
type Clock func() time.Time
