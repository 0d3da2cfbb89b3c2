package draw

import (
	"context"
	"fmt"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
)

type SummonResult struct {
	Characters []*game.Character
	Cost       int64
	Coins      int64
	LeveledUp  bool
	Level      int64
}

type Service struct {
	ledger      game.Ledger
	cfg         game.Config
	rng         game.Rand
	inventory   *inventory.Service
	progression *progression.Service
}

func NewService(ledger game.Ledger, cfg game.Config, rng game.Rand, inv *inventory.Service, prog *progression.Service) *Service {
	if rng == nil {
		rng = game.DefaultRand
	}
	return &Service{
		ledger:      ledger,
		cfg:         cfg.WithDefaults(),
		rng:         rng,
		inventory:   inv,
		progression: prog,
	}
}

func (s *Service) RollRarity() game.Rarity {
	return RollRarity(s.rng)
}

// ChooseCharacters draws n characters from the current catalog without
// touching any user state.
func (s *Service) ChooseCharacters(ctx context.Context, n int) ([]*game.Character, error) {
	catalog, err := s.ledger.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	return ChooseCharacters(s.rng, catalog, n), nil
}

// Cost returns the coin price of a summon of count characters.
func (s *Service) Cost(count int) (int64, error) {
	switch count {
	case 1:
		return s.cfg.SummonCost, nil
	case 10:
		return s.cfg.TenSummonCost, nil
	default:
		return 0, fmt.Errorf("%w: summons come in 1 or 10, got %d", game.ErrInvalidInput, count)
	}
}

// Summon charges the user, draws count characters into their inventory and
// grants summon experience per character, all in one unit.
func (s *Service) Summon(ctx context.Context, userID int64, count int) (*SummonResult, error) {
	cost, err := s.Cost(count)
	if err != nil {
		return nil, err
	}

	var result *SummonResult
	err = s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		user, err := game.EnsureUser(ctx, st, s.cfg.NewUser(userID))
		if err != nil {
			return err
		}

		catalog, err := st.ListCharacters(ctx)
		if err != nil {
			return err
		}
		if len(catalog) == 0 {
			return fmt.Errorf("%w: the catalog is empty", game.ErrNotFound)
		}

		if user.Coins < cost {
			return game.InsufficientFunds(user.Coins, cost)
		}
		user.Coins -= cost

		chosen := ChooseCharacters(s.rng, catalog, count)
		result = &SummonResult{Characters: chosen, Cost: cost}

		counts := make(map[int64]int64, len(chosen))
		order := make([]int64, 0, len(chosen))
		for _, c := range chosen {
			if counts[c.ID] == 0 {
				order = append(order, c.ID)
			}
			counts[c.ID]++

			if lvl := s.progression.Grant(user, s.cfg.SummonExp); lvl.LeveledUp {
				result.LeveledUp = true
			}
		}

		for _, id := range order {
			if err := s.inventory.AddTx(ctx, st, userID, id, counts[id]); err != nil {
				return err
			}
		}

		if err := st.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to charge summon: %w", err)
		}

		result.Coins = user.Coins
		result.Level = user.Level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
