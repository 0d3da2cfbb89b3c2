package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tensuraworld/gachabot/internal/domain/game"
)

type Service struct {
	ledger game.Ledger
	cfg    game.Config
	now    game.Clock
}

func NewService(ledger game.Ledger, cfg game.Config, now game.Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		ledger: ledger,
		cfg:    cfg.WithDefaults(),
		now:    now,
	}
}

// IsOwner reports whether userID is the configured owner.
func (s *Service) IsOwner(userID int64) bool {
	return s.cfg.OwnerID != 0 && userID == s.cfg.OwnerID
}

// IsPrivileged reports whether userID is the owner or a listed admin.
func (s *Service) IsPrivileged(ctx context.Context, userID int64) (bool, error) {
	if s.IsOwner(userID) {
		return true, nil
	}
	return s.ledger.IsAdmin(ctx, userID)
}

func (s *Service) RequireOwner(userID int64) error {
	if !s.IsOwner(userID) {
		return fmt.Errorf("%w: owner only", game.ErrPermissionDenied)
	}
	return nil
}

func (s *Service) RequireAdmin(ctx context.Context, userID int64) error {
	ok, err := s.IsPrivileged(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: admin only", game.ErrPermissionDenied)
	}
	return nil
}

func (s *Service) AddAdmin(ctx context.Context, actorID, targetID int64) error {
	if err := s.RequireOwner(actorID); err != nil {
		return err
	}
	if targetID <= 0 {
		return fmt.Errorf("%w: invalid user id", game.ErrInvalidInput)
	}
	return s.ledger.AddAdmin(ctx, &game.Admin{UserID: targetID, AddedBy: actorID, AddedAt: s.now()})
}

func (s *Service) RemoveAdmin(ctx context.Context, actorID, targetID int64) error {
	if err := s.RequireOwner(actorID); err != nil {
		return err
	}
	if targetID <= 0 {
		return fmt.Errorf("%w: invalid user id", game.ErrInvalidInput)
	}
	return s.ledger.RemoveAdmin(ctx, targetID)
}

func (s *Service) ListAdmins(ctx context.Context) ([]*game.Admin, error) {
	return s.ledger.ListAdmins(ctx)
}

// AddCoins credits a strictly positive amount to targetID.
func (s *Service) AddCoins(ctx context.Context, actorID, targetID, amount int64) (*game.User, error) {
	if err := s.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", game.ErrInvalidInput)
	}

	var user *game.User
	err := s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		var err error
		user, err = game.EnsureUser(ctx, st, s.cfg.NewUser(targetID))
		if err != nil {
			return err
		}
		user.Coins += amount
		return st.UpdateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UploadCharacter validates and stores a new catalog entry.
func (s *Service) UploadCharacter(ctx context.Context, actorID int64, character *game.Character) (*game.Character, error) {
	if err := s.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := Validate(character); err != nil {
		return nil, err
	}
	if err := s.ledger.CreateCharacter(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

func Validate(c *game.Character) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Faction = strings.TrimSpace(c.Faction)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", game.ErrInvalidInput)
	}
	rarity, err := game.ParseRarity(string(c.Rarity))
	if err != nil {
		return err
	}
	c.Rarity = rarity
	if c.Power < 0 || c.Price < 0 {
		return fmt.Errorf("%w: power and price cannot be negative", game.ErrInvalidInput)
	}
	return nil
}
