package mock

import (
	"context"

	game "github.com/tensuraworld/gachabot/internal/domain/game"
	gomock "go.uber.org/mock/gomock"
)

var Catalog = []*game.Character{
	{ID: 1, Name: "Rimuru Tempest", Rarity: game.RarityMythic, Faction: "Tempest", Power: 900, Price: 5000},
	{ID: 2, Name: "Milim Nava", Rarity: game.RarityLegendary, Faction: "Demon Lords", Power: 850, Price: 4000},
	{ID: 3, Name: "Benimaru", Rarity: game.RarityEpic, Faction: "Tempest", Power: 400, Price: 1200},
	{ID: 4, Name: "Gobta", Rarity: game.RarityRare, Faction: "Tempest", Power: 80, Price: 300},
	{ID: 5, Name: "Goblin Rider", Rarity: game.RarityCommon, Faction: "Tempest", Power: 50, Price: 100},
}

// PassThroughAtomic makes every Atomic call run fn directly against l.
func PassThroughAtomic(l *MockLedger) *gomock.Call {
	return l.EXPECT().
		Atomic(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, game.Store) error) error {
			return fn(ctx, l)
		}).
		AnyTimes()
}

// NewUser returns a fresh level 1 user with the given balance.
func NewUser(id, coins int64) *game.User {
	return &game.User{ID: id, Coins: coins, Level: 1}
}
