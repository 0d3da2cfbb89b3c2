package quests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
)

type Reward struct {
	QuestID   int64
	Name      string
	Coins     int64
	Exp       int64
	LeveledUp bool
	Level     int64
}

// Status pairs a quest with whether a given user already claimed it.
type Status struct {
	Quest   *game.Quest
	Claimed bool
}

type Service struct {
	ledger      game.Ledger
	cfg         game.Config
	progression *progression.Service
}

func NewService(ledger game.Ledger, cfg game.Config, prog *progression.Service) *Service {
	return &Service{
		ledger:      ledger,
		cfg:         cfg.WithDefaults(),
		progression: prog,
	}
}

// Claim pays out a quest once per user. The claim record, the coins and the
// experience commit together.
func (s *Service) Claim(ctx context.Context, userID, questID int64) (*Reward, error) {
	var reward *Reward
	err := s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		quest, err := st.GetQuest(ctx, questID)
		if err != nil {
			return err
		}

		user, err := game.EnsureUser(ctx, st, s.cfg.NewUser(userID))
		if err != nil {
			return err
		}

		claim, err := st.GetClaim(ctx, userID, questID)
		switch {
		case err == nil && claim.Done:
			return fmt.Errorf("quest %d: %w", questID, game.ErrAlreadyClaimed)
		case err != nil && !errors.Is(err, game.ErrNotFound):
			return err
		}

		if err := st.UpsertClaim(ctx, userID, questID, true); err != nil {
			return fmt.Errorf("failed to record claim: %w", err)
		}

		user.Coins += quest.RewardCoins
		exp := s.progression.Grant(user, quest.RewardExp)
		if err := st.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to pay quest reward: %w", err)
		}

		reward = &Reward{
			QuestID:   quest.ID,
			Name:      quest.Name,
			Coins:     quest.RewardCoins,
			Exp:       quest.RewardExp,
			LeveledUp: exp.LeveledUp,
			Level:     exp.Level,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}

// List returns every quest with the user's claim state.
func (s *Service) List(ctx context.Context, userID int64) ([]Status, error) {
	quests, err := s.ledger.ListQuests(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := s.ledger.ListClaims(ctx, userID)
	if err != nil {
		return nil, err
	}

	claimed := make(map[int64]bool, len(claims))
	for _, c := range claims {
		if c.Done {
			claimed[c.QuestID] = true
		}
	}

	statuses := make([]Status, 0, len(quests))
	for _, q := range quests {
		statuses = append(statuses, Status{Quest: q, Claimed: claimed[q.ID]})
	}
	return statuses, nil
}

func (s *Service) Create(ctx context.Context, quest *game.Quest) error {
	quest.Name = strings.TrimSpace(quest.Name)
	quest.Description = strings.TrimSpace(quest.Description)
	if quest.Name == "" {
		return fmt.Errorf("%w: quest name is required", game.ErrInvalidInput)
	}
	if quest.RewardCoins < 0 || quest.RewardExp < 0 {
		return fmt.Errorf("%w: quest rewards cannot be negative", game.ErrInvalidInput)
	}
	return s.ledger.CreateQuest(ctx, quest)
}

// Delete removes the quest and every claim that references it.
func (s *Service) Delete(ctx context.Context, questID int64) error {
	return s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		if _, err := st.GetQuest(ctx, questID); err != nil {
			return err
		}
		return st.DeleteQuest(ctx, questID)
	})
}
