package draw

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/game/mock"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
	"go.uber.org/mock/gomock"
)

// seqRand replays fixed values, wrapped into range.
type seqRand struct {
	values []int
	i      int
}

func (r *seqRand) IntN(n int) int {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v % n
}

func TestRarityFor(t *testing.T) {
	tests := []struct {
		roll int
		want game.Rarity
	}{
		{1, game.RarityCommon},
		{50, game.RarityCommon},
		{51, game.RarityRare},
		{75, game.RarityRare},
		{76, game.RarityEpic},
		{90, game.RarityEpic},
		{91, game.RarityLegendary},
		{98, game.RarityLegendary},
		{99, game.RarityMythic},
		{100, game.RarityMythic},
		{101, game.RarityCommon},
	}

	for _, tt := range tests {
		if got := rarityFor(tt.roll); got != tt.want {
			t.Errorf("rarityFor(%d) = %s, want %s", tt.roll, got, tt.want)
		}
	}
}

func TestRollRarity_Distribution(t *testing.T) {
	const samples = 200_000
	rng := rand.New(rand.NewPCG(42, 1024))

	counts := make(map[game.Rarity]int)
	for range samples {
		counts[RollRarity(rng)]++
	}

	for _, r := range game.Rarities {
		got := float64(counts[r]) / samples * 100
		want := float64(Weight(r))
		if math.Abs(got-want) > 0.75 {
			t.Errorf("share of %s = %.2f%%, want %.0f%% within 0.75", r, got, want)
		}
	}
}

func TestChooseCharacters(t *testing.T) {
	mythicOnly := []*game.Character{{ID: 9, Rarity: game.RarityMythic}}

	tests := []struct {
		name    string
		catalog []*game.Character
		n       int
		wantLen int
	}{
		{name: "full catalog single", catalog: mock.Catalog, n: 1, wantLen: 1},
		{name: "full catalog ten", catalog: mock.Catalog, n: 10, wantLen: 10},
		{name: "sparse catalog falls back", catalog: mythicOnly, n: 25, wantLen: 25},
		{name: "empty catalog", catalog: nil, n: 10, wantLen: 0},
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChooseCharacters(rng, tt.catalog, tt.n)
			if len(got) != tt.wantLen {
				t.Fatalf("ChooseCharacters() returned %d characters, want %d", len(got), tt.wantLen)
			}
			for _, c := range got {
				if c == nil {
					t.Fatal("ChooseCharacters() returned a nil character")
				}
			}
		})
	}

	for _, c := range ChooseCharacters(rng, mythicOnly, 50) {
		if c.ID != 9 {
			t.Errorf("fallback draw returned character %d, want 9", c.ID)
		}
	}
}

func newTestService(ledger *mock.MockLedger, rng game.Rand) *Service {
	cfg := game.DefaultConfig()
	return NewService(ledger, cfg, rng,
		inventory.NewService(ledger, cfg),
		progression.NewService(ledger, cfg))
}

func TestService_Summon(t *testing.T) {
	ctx := context.Background()
	starter := game.DefaultConfig().NewUser(1)

	t.Run("single summon", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		mock.PassThroughAtomic(ledger)
		ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), starter).Return(nil)
		ledger.EXPECT().GetUser(gomock.Any(), int64(1)).Return(&game.User{ID: 1, Coins: 200, Level: 1, Exp: 95}, nil)
		ledger.EXPECT().ListCharacters(gomock.Any()).Return(mock.Catalog, nil)
		ledger.EXPECT().GetInventoryEntry(gomock.Any(), int64(1), int64(5)).Return(int64(0), game.NotFound("inventory entry", 5))
		ledger.EXPECT().UpsertInventoryEntry(gomock.Any(), int64(1), int64(5), int64(1)).Return(nil)
		ledger.EXPECT().UpdateUser(gomock.Any(), &game.User{ID: 1, Coins: 150, Level: 2, Exp: 5}).Return(nil)

		// roll 1 lands in Common, index 0 picks the only common character
		s := newTestService(ledger, &seqRand{values: []int{0}})
		got, err := s.Summon(ctx, 1, 1)
		if err != nil {
			t.Fatalf("Service.Summon() error = %v", err)
		}

		want := &SummonResult{
			Characters: []*game.Character{mock.Catalog[4]},
			Cost:       50,
			Coins:      150,
			LeveledUp:  true,
			Level:      2,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Service.Summon() got = %+v, want %+v", got, want)
		}
	})

	t.Run("ten summon groups duplicates", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		mock.PassThroughAtomic(ledger)
		ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), starter).Return(nil)
		ledger.EXPECT().GetUser(gomock.Any(), int64(1)).Return(&game.User{ID: 1, Coins: 600, Level: 1}, nil)
		ledger.EXPECT().ListCharacters(gomock.Any()).Return(mock.Catalog, nil)
		ledger.EXPECT().GetInventoryEntry(gomock.Any(), int64(1), int64(5)).Return(int64(2), nil)
		ledger.EXPECT().UpsertInventoryEntry(gomock.Any(), int64(1), int64(5), int64(12)).Return(nil)
		ledger.EXPECT().UpdateUser(gomock.Any(), &game.User{ID: 1, Coins: 100, Level: 2, Exp: 0}).Return(nil)

		s := newTestService(ledger, &seqRand{values: []int{0}})
		got, err := s.Summon(ctx, 1, 10)
		if err != nil {
			t.Fatalf("Service.Summon() error = %v", err)
		}
		if len(got.Characters) != 10 || got.Cost != 500 || got.Coins != 100 || !got.LeveledUp || got.Level != 2 {
			t.Errorf("Service.Summon() got = %+v", got)
		}
	})

	t.Run("insufficient coins", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		mock.PassThroughAtomic(ledger)
		ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), starter).Return(nil)
		ledger.EXPECT().GetUser(gomock.Any(), int64(1)).Return(&game.User{ID: 1, Coins: 499, Level: 1}, nil)
		ledger.EXPECT().ListCharacters(gomock.Any()).Return(mock.Catalog, nil)

		s := newTestService(ledger, &seqRand{values: []int{0}})
		if _, err := s.Summon(ctx, 1, 10); !errors.Is(err, game.ErrInsufficientFunds) {
			t.Errorf("Service.Summon() error = %v, want %v", err, game.ErrInsufficientFunds)
		}
	})

	t.Run("empty catalog charges nothing", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		mock.PassThroughAtomic(ledger)
		ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), starter).Return(nil)
		ledger.EXPECT().GetUser(gomock.Any(), int64(1)).Return(&game.User{ID: 1, Coins: 200, Level: 1}, nil)
		ledger.EXPECT().ListCharacters(gomock.Any()).Return(nil, nil)

		s := newTestService(ledger, &seqRand{values: []int{0}})
		if _, err := s.Summon(ctx, 1, 1); !errors.Is(err, game.ErrNotFound) {
			t.Errorf("Service.Summon() error = %v, want %v", err, game.ErrNotFound)
		}
	})

	t.Run("unsupported count", func(t *testing.T) {
		s := newTestService(mock.NewMockLedger(gomock.NewController(t)), nil)
		if _, err := s.Summon(ctx, 1, 3); !errors.Is(err, game.ErrInvalidInput) {
			t.Errorf("Service.Summon() error = %v, want %v", err, game.ErrInvalidInput)
		}
	})
}
