package battle

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/game/mock"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
	"go.uber.org/mock/gomock"
)

var start = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fighter struct {
	lastBattle time.Time
	power      int64
}

// arena wires a mock ledger holding two users with fixed state. Every
// GetUser returns a fresh copy so repeated battles see the same records.
func arena(t *testing.T, fighters map[int64]fighter) *mock.MockLedger {
	ledger := mock.NewMockLedger(gomock.NewController(t))
	mock.PassThroughAtomic(ledger)

	ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	ledger.EXPECT().GetUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id int64) (*game.User, error) {
		f := fighters[id]
		return &game.User{ID: id, Coins: 200, Level: 1, LastBattle: f.lastBattle}, nil
	}).AnyTimes()
	ledger.EXPECT().ListInventory(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id int64) ([]*game.InventoryItem, error) {
		f := fighters[id]
		if f.power == 0 {
			return nil, nil
		}
		return []*game.InventoryItem{{Character: &game.Character{ID: 1, Power: f.power}, Count: 1}}, nil
	}).AnyTimes()

	return ledger
}

func newTestService(ledger game.Ledger, rng game.Rand, now time.Time) *Service {
	cfg := game.DefaultConfig()
	return NewService(ledger, cfg, rng, func() time.Time { return now },
		inventory.NewService(ledger, cfg),
		progression.NewService(ledger, cfg))
}

func TestService_Battle_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		opponent int64
		fighters map[int64]fighter
		now      time.Time
		wantErr  error
	}{
		{name: "no opponent", opponent: 0, wantErr: game.ErrNoOpponent},
		{name: "self battle", opponent: 1, wantErr: game.ErrSelfBattle},
		{
			name:     "initiator on cooldown",
			opponent: 2,
			fighters: map[int64]fighter{1: {lastBattle: start, power: 10}, 2: {power: 10}},
			now:      start.Add(599 * time.Second),
			wantErr:  game.ErrOnCooldown,
		},
		{
			name:     "opponent busy",
			opponent: 2,
			fighters: map[int64]fighter{1: {power: 10}, 2: {lastBattle: start, power: 10}},
			now:      start.Add(9 * time.Second),
			wantErr:  game.ErrOpponentBusy,
		},
		{
			name:     "initiator has no power",
			opponent: 2,
			fighters: map[int64]fighter{1: {}, 2: {power: 10}},
			now:      start,
			wantErr:  game.ErrNoCombatPower,
		},
		{
			name:     "opponent has no power",
			opponent: 2,
			fighters: map[int64]fighter{1: {power: 10}, 2: {}},
			now:      start,
			wantErr:  game.ErrNoCombatPower,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// UpdateUser is never expected: a rejected battle writes nothing.
			ledger := arena(t, tt.fighters)
			s := newTestService(ledger, rand.New(rand.NewPCG(1, 1)), tt.now)

			got, err := s.Battle(context.Background(), 1, tt.opponent)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Service.Battle() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Service.Battle() got = %+v, want nil", got)
			}
		})
	}
}

func TestService_Battle_CooldownRemaining(t *testing.T) {
	ledger := arena(t, map[int64]fighter{1: {lastBattle: start, power: 10}, 2: {power: 10}})
	s := newTestService(ledger, rand.New(rand.NewPCG(1, 1)), start.Add(200*time.Second))

	_, err := s.Battle(context.Background(), 1, 2)
	remaining, ok := game.RemainingCooldown(err)
	if !ok || remaining != 400*time.Second {
		t.Errorf("RemainingCooldown() = %v, %v, want 400s, true", remaining, ok)
	}
}

func TestService_Battle_CooldownBoundary(t *testing.T) {
	ledger := arena(t, map[int64]fighter{1: {lastBattle: start, power: 30}, 2: {power: 10}})
	ledger.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	now := start.Add(600 * time.Second)
	s := newTestService(ledger, rand.New(rand.NewPCG(1, 1)), now)

	got, err := s.Battle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Service.Battle() error = %v", err)
	}
	if !got.InitiatorWon() || got.Tie {
		t.Errorf("Service.Battle() winner = %d, tie = %v, want initiator outright", got.WinnerID, got.Tie)
	}
	if !got.FoughtAt.Equal(now) {
		t.Errorf("Service.Battle() FoughtAt = %v, want %v", got.FoughtAt, now)
	}
}

func TestService_Battle_Rewards(t *testing.T) {
	ledger := arena(t, map[int64]fighter{1: {power: 10}, 2: {power: 500}})

	var saved []*game.User
	ledger.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *game.User) error {
		saved = append(saved, u)
		return nil
	}).Times(2)

	s := newTestService(ledger, rand.New(rand.NewPCG(3, 4)), start)
	got, err := s.Battle(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Service.Battle() error = %v", err)
	}

	if got.WinnerID != 2 || got.LoserID != 1 {
		t.Fatalf("Service.Battle() winner = %d loser = %d, want 2 and 1", got.WinnerID, got.LoserID)
	}
	if got.Coins < 80 || got.Coins > 150 {
		t.Errorf("Service.Battle() coins = %d, want within [80,150]", got.Coins)
	}

	byID := map[int64]*game.User{}
	for _, u := range saved {
		byID[u.ID] = u
	}
	if w := byID[2]; w.Coins != 200+got.Coins || w.Exp != 40 || !w.LastBattle.Equal(start) {
		t.Errorf("winner saved as %+v", w)
	}
	if l := byID[1]; l.Coins != 200 || l.Exp != 15 || !l.LastBattle.Equal(start) {
		t.Errorf("loser saved as %+v", l)
	}
}

func TestService_Battle_TieIsFair(t *testing.T) {
	const trials = 4000

	ledger := arena(t, map[int64]fighter{1: {power: 100}, 2: {power: 100}})
	ledger.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s := newTestService(ledger, rand.New(rand.NewPCG(7, 7)), start)

	initiatorWins := 0
	minCoins, maxCoins := int64(1<<62), int64(0)
	for range trials {
		got, err := s.Battle(context.Background(), 1, 2)
		if err != nil {
			t.Fatalf("Service.Battle() error = %v", err)
		}
		if !got.Tie {
			t.Fatal("Service.Battle() Tie = false for equal power")
		}
		if got.InitiatorWon() {
			initiatorWins++
		}
		minCoins = min(minCoins, got.Coins)
		maxCoins = max(maxCoins, got.Coins)
	}

	share := float64(initiatorWins) / trials
	if share < 0.45 || share > 0.55 {
		t.Errorf("initiator won %.3f of ties, want about 0.5", share)
	}
	if minCoins != 80 || maxCoins != 150 {
		t.Errorf("coin rewards spanned [%d,%d], want [80,150]", minCoins, maxCoins)
	}
}
