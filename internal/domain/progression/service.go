package progression

import (
	"context"
	"fmt"

	"github.com/tensuraworld/gachabot/internal/domain/game"
)

type Service struct {
	ledger     game.Ledger
	calculator *Calculator
}

func NewService(ledger game.Ledger, cfg game.Config) *Service {
	return &Service{
		ledger:     ledger,
		calculator: NewCalculator(cfg.LevelStep),
	}
}

// AddExperience grants amount to the user and persists level and exp together.
func (s *Service) AddExperience(ctx context.Context, userID, amount int64) (*Result, error) {
	var result *Result
	err := s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		var err error
		result, err = s.AddExperienceTx(ctx, st, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddExperienceTx is AddExperience inside a unit the caller already holds.
func (s *Service) AddExperienceTx(ctx context.Context, st game.Store, userID, amount int64) (*Result, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: experience amount %d is negative", game.ErrInvalidInput, amount)
	}

	user, err := st.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := s.Grant(user, amount)
	if amount == 0 {
		return result, nil
	}

	if err := st.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save experience: %w", err)
	}
	return result, nil
}

// Grant applies amount to user in memory. The caller persists user.
func (s *Service) Grant(user *game.User, amount int64) *Result {
	level, exp, leveled := s.calculator.Apply(user.Level, user.Exp, amount)
	user.Level = level
	user.Exp = exp

	return &Result{
		LeveledUp:   leveled,
		Level:       level,
		Exp:         exp,
		RequiredExp: s.calculator.Threshold(level),
		ExpGained:   amount,
	}
}
