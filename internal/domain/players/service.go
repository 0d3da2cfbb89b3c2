package players

import (
	"context"
	"fmt"
	"time"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
	"golang.org/x/sync/errgroup"
)

type Profile struct {
	User        *game.User
	RequiredExp int64
	TotalPower  int64
	Distinct    int
	Owned       int64
}

type DailyReward struct {
	Coins   int64
	Balance int64
	NextAt  time.Time
}

type Service struct {
	ledger     game.Ledger
	cfg        game.Config
	now        game.Clock
	calculator *progression.Calculator
}

func NewService(ledger game.Ledger, cfg game.Config, now game.Clock) *Service {
	cfg = cfg.WithDefaults()
	if now == nil {
		now = time.Now
	}
	return &Service{
		ledger:     ledger,
		cfg:        cfg,
		now:        now,
		calculator: progression.NewCalculator(cfg.LevelStep),
	}
}

// Ensure registers the user on first interaction and returns their record.
func (s *Service) Ensure(ctx context.Context, userID int64) (*game.User, error) {
	return game.EnsureUser(ctx, s.ledger, s.cfg.NewUser(userID))
}

func (s *Service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	var (
		user  *game.User
		items []*game.InventoryItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.Ensure(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.ledger.ListInventory(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile := &Profile{
		User:        user,
		RequiredExp: s.calculator.Threshold(user.Level),
		TotalPower:  inventory.TotalPower(items),
		Distinct:    len(items),
	}
	for _, item := range items {
		profile.Owned += item.Count
	}
	return profile, nil
}

// Daily pays the daily coin reward once per cooldown window.
func (s *Service) Daily(ctx context.Context, userID int64) (*DailyReward, error) {
	var reward *DailyReward
	err := s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		user, err := game.EnsureUser(ctx, st, s.cfg.NewUser(userID))
		if err != nil {
			return err
		}

		now := s.now()
		window := s.cfg.DailyCooldown.Std()
		if elapsed := now.Sub(user.LastDaily); elapsed < window {
			return game.NewCooldownError("daily", window, elapsed)
		}

		user.Coins += s.cfg.DailyCoins
		user.LastDaily = now
		if err := st.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to pay daily reward: %w", err)
		}

		reward = &DailyReward{
			Coins:   s.cfg.DailyCoins,
			Balance: user.Coins,
			NextAt:  now.Add(window),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}

// Leaderboard returns the top players by level, then exp, then coins.
func (s *Service) Leaderboard(ctx context.Context) ([]*game.User, error) {
	return s.ledger.ListTopUsers(ctx, s.cfg.TopLimit)
}

func (s *Service) RequiredExp(level int64) int64 {
	return s.calculator.Threshold(level)
}
