package shop

import (
	"context"
	"fmt"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
)

type Receipt struct {
	Character *game.Character
	Price     int64
	Coins     int64
	Owned     int64
}

type Service struct {
	ledger    game.Ledger
	cfg       game.Config
	rng       game.Rand
	inventory *inventory.Service
}

func NewService(ledger game.Ledger, cfg game.Config, rng game.Rand, inv *inventory.Service) *Service {
	if rng == nil {
		rng = game.DefaultRand
	}
	return &Service{
		ledger:    ledger,
		cfg:       cfg.WithDefaults(),
		rng:       rng,
		inventory: inv,
	}
}

// PresentOffer picks one character uniformly from the whole catalog. Rarity
// plays no part and consecutive offers may repeat.
func (s *Service) PresentOffer(ctx context.Context) (*game.Character, error) {
	catalog, err := s.ledger.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: the store has nothing to offer", game.ErrNotFound)
	}
	return catalog[s.rng.IntN(len(catalog))], nil
}

// Purchase debits the character's price and credits one copy as a single
// unit. A failed check leaves balance and inventory untouched.
func (s *Service) Purchase(ctx context.Context, userID, characterID int64) (*Receipt, error) {
	var receipt *Receipt
	err := s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		character, err := st.GetCharacter(ctx, characterID)
		if err != nil {
			return err
		}

		user, err := game.EnsureUser(ctx, st, s.cfg.NewUser(userID))
		if err != nil {
			return err
		}
		if user.Coins < character.Price {
			return game.InsufficientFunds(user.Coins, character.Price)
		}

		user.Coins -= character.Price
		if err := st.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to debit purchase: %w", err)
		}
		if err := s.inventory.AddTx(ctx, st, userID, characterID, 1); err != nil {
			return err
		}

		owned, err := st.GetInventoryEntry(ctx, userID, characterID)
		if err != nil {
			return err
		}

		receipt = &Receipt{
			Character: character,
			Price:     character.Price,
			Coins:     user.Coins,
			Owned:     owned,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
