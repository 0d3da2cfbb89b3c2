package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
)

type Outcome struct {
	InitiatorID    int64
	OpponentID     int64
	InitiatorPower int64
	OpponentPower  int64
	WinnerID       int64
	LoserID        int64
	Tie            bool
	Coins          int64
	WinnerExp      *progression.Result
	LoserExp       *progression.Result
	FoughtAt       time.Time
}

func (o *Outcome) InitiatorWon() bool {
	return o.WinnerID == o.InitiatorID
}

type Service struct {
	ledger      game.Ledger
	cfg         game.Config
	rng         game.Rand
	now         game.Clock
	inventory   *inventory.Service
	progression *progression.Service
}

func NewService(ledger game.Ledger, cfg game.Config, rng game.Rand, now game.Clock, inv *inventory.Service, prog *progression.Service) *Service {
	if rng == nil {
		rng = game.DefaultRand
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		ledger:      ledger,
		cfg:         cfg.WithDefaults(),
		rng:         rng,
		now:         now,
		inventory:   inv,
		progression: prog,
	}
}

// Battle resolves a fight started by initiatorID against opponentID. An
// opponentID of zero means no opponent could be resolved. Every check runs
// before any write, and the reward and cooldown stamps commit together.
func (s *Service) Battle(ctx context.Context, initiatorID, opponentID int64) (*Outcome, error) {
	if opponentID == 0 {
		return nil, game.ErrNoOpponent
	}
	if opponentID == initiatorID {
		return nil, game.ErrSelfBattle
	}

	var outcome *Outcome
	err := s.ledger.Atomic(ctx, func(ctx context.Context, st game.Store) error {
		initiator, opponent, err := s.lockPair(ctx, st, initiatorID, opponentID)
		if err != nil {
			return err
		}

		now := s.now()
		cooldown := s.cfg.BattleCooldown.Std()
		if elapsed := now.Sub(initiator.LastBattle); elapsed < cooldown {
			return game.NewCooldownError("battle", cooldown, elapsed)
		}
		if now.Sub(opponent.LastBattle) < s.cfg.OpponentBusy.Std() {
			return game.ErrOpponentBusy
		}

		initiatorPower, err := s.inventory.TotalPowerTx(ctx, st, initiatorID)
		if err != nil {
			return err
		}
		opponentPower, err := s.inventory.TotalPowerTx(ctx, st, opponentID)
		if err != nil {
			return err
		}
		if initiatorPower == 0 || opponentPower == 0 {
			return game.ErrNoCombatPower
		}

		winner, loser := s.resolve(initiator, opponent, initiatorPower, opponentPower)

		coins := s.cfg.WinCoinsMin + int64(s.rng.IntN(int(s.cfg.WinCoinsMax-s.cfg.WinCoinsMin+1)))
		winner.Coins += coins
		winnerExp := s.progression.Grant(winner, s.cfg.WinExp)
		loserExp := s.progression.Grant(loser, s.cfg.LoseExp)

		winner.LastBattle = now
		loser.LastBattle = now

		if err := st.UpdateUser(ctx, initiator); err != nil {
			return fmt.Errorf("failed to save battle result: %w", err)
		}
		if err := st.UpdateUser(ctx, opponent); err != nil {
			return fmt.Errorf("failed to save battle result: %w", err)
		}

		outcome = &Outcome{
			InitiatorID:    initiatorID,
			OpponentID:     opponentID,
			InitiatorPower: initiatorPower,
			OpponentPower:  opponentPower,
			WinnerID:       winner.ID,
			LoserID:        loser.ID,
			Tie:            initiatorPower == opponentPower,
			Coins:          coins,
			WinnerExp:      winnerExp,
			LoserExp:       loserExp,
			FoughtAt:       now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// lockPair loads both fighters in ascending id order so that two battles
// between the same pair cannot lock each other out.
func (s *Service) lockPair(ctx context.Context, st game.Store, initiatorID, opponentID int64) (*game.User, *game.User, error) {
	first, second := initiatorID, opponentID
	if second < first {
		first, second = second, first
	}

	a, err := game.EnsureUser(ctx, st, s.cfg.NewUser(first))
	if err != nil {
		return nil, nil, err
	}
	b, err := game.EnsureUser(ctx, st, s.cfg.NewUser(second))
	if err != nil {
		return nil, nil, err
	}

	if a.ID == initiatorID {
		return a, b, nil
	}
	return b, a, nil
}

func (s *Service) resolve(initiator, opponent *game.User, initiatorPower, opponentPower int64) (winner, loser *game.User) {
	switch {
	case initiatorPower > opponentPower:
		return initiator, opponent
	case initiatorPower < opponentPower:
		return opponent, initiator
	case s.rng.IntN(2) == 0:
		return initiator, opponent
	default:
		return opponent, initiator
	}
}
