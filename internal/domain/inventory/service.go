package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/tensuraworld/gachabot/internal/domain/game"
)

type Service struct {
	ledger   game.Ledger
	pageSize int
}

func NewService(ledger game.Ledger, cfg game.Config) *Service {
	return &Service{
		ledger:   ledger,
		pageSize: cfg.WithDefaults().InventoryPageSize,
	}
}

// AddToInventory increments the user's count of a character, creating the
// entry on first acquisition. An amount of zero changes nothing.
func (s *Service) AddToInventory(ctx context.Context, userID, characterID, amount int64) error {
	if amount == 0 {
		return nil
	}
	return s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		return s.AddTx(ctx, st, userID, characterID, amount)
	})
}

func (s *Service) AddTx(ctx context.Context, st game.Store, userID, characterID, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: inventory amount %d is negative", game.ErrInvalidInput, amount)
	}
	if amount == 0 {
		return nil
	}

	count, err := st.GetInventoryEntry(ctx, userID, characterID)
	if err != nil && !errors.Is(err, game.ErrNotFound) {
		return err
	}

	if err := st.UpsertInventoryEntry(ctx, userID, characterID, count+amount); err != nil {
		return fmt.Errorf("failed to credit inventory: %w", err)
	}
	return nil
}

// TotalPower sums power times count over everything the user owns.
func (s *Service) TotalPower(ctx context.Context, userID int64) (int64, error) {
	return s.TotalPowerTx(ctx, s.ledger, userID)
}

func (s *Service) TotalPowerTx(ctx context.Context, st game.Store, userID int64) (int64, error) {
	items, err := st.ListInventory(ctx, userID)
	if err != nil {
		return 0, err
	}
	return TotalPower(items), nil
}

func TotalPower(items []*game.InventoryItem) int64 {
	var total int64
	for _, item := range items {
		if item == nil || item.Character == nil {
			continue
		}
		total += item.Character.Power * item.Count
	}
	return total
}

// List returns the user's inventory ordered by character id.
func (s *Service) List(ctx context.Context, userID int64) ([]*game.InventoryItem, error) {
	return s.ledger.ListInventory(ctx, userID)
}

func (s *Service) PageSize() int {
	return s.pageSize
}

// Pages returns how many pages of PageSize entries n items span.
func (s *Service) Pages(n int) int {
	if n == 0 {
		return 0
	}
	return (n + s.pageSize - 1) / s.pageSize
}

// Page returns the items shown on the zero-based page.
func (s *Service) Page(items []*game.InventoryItem, page int) []*game.InventoryItem {
	start := page * s.pageSize
	if page < 0 || start >= len(items) {
		return nil
	}
	return items[start:min(start+s.pageSize, len(items))]
}
