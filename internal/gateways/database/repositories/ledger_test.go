package repositories

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"github.com/tensuraworld/gachabot/gachabot/database"
	"github.com/tensuraworld/gachabot/internal/domain/draw"
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	db, err := database.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("database.NewSQLite() error = %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.InitializeSchema(context.Background()); err != nil {
		t.Fatalf("InitializeSchema() error = %v", err)
	}

	ledger, err := NewLedger(db.BunDB(), 16)
	if err != nil {
		t.Fatalf("NewLedger() error = %v", err)
	}
	return ledger
}

func TestLedger_Users(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	if _, err := l.GetUser(ctx, 1); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("Ledger.GetUser() on empty store error = %v, want %v", err, game.ErrNotFound)
	}

	if err := l.CreateUserIfAbsent(ctx, game.User{ID: 1, Coins: 200, Level: 1}); err != nil {
		t.Fatalf("Ledger.CreateUserIfAbsent() error = %v", err)
	}
	// A second create must not reset the row.
	battled := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	if err := l.UpdateUser(ctx, &game.User{ID: 1, Coins: 75, Level: 3, Exp: 20, LastBattle: battled}); err != nil {
		t.Fatalf("Ledger.UpdateUser() error = %v", err)
	}
	if err := l.CreateUserIfAbsent(ctx, game.User{ID: 1, Coins: 200, Level: 1}); err != nil {
		t.Fatalf("Ledger.CreateUserIfAbsent() error = %v", err)
	}

	got, err := l.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("Ledger.GetUser() error = %v", err)
	}
	want := &game.User{ID: 1, Coins: 75, Level: 3, Exp: 20, LastBattle: battled}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ledger.GetUser() got = %+v, want %+v", got, want)
	}

	if err := l.UpdateUser(ctx, &game.User{ID: 99, Level: 1}); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("Ledger.UpdateUser() on missing user error = %v, want %v", err, game.ErrNotFound)
	}
}

func TestLedger_ListTopUsers(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	for _, u := range []game.User{
		{ID: 1, Level: 2, Exp: 10, Coins: 5},
		{ID: 2, Level: 4, Exp: 0, Coins: 0},
		{ID: 3, Level: 2, Exp: 10, Coins: 900},
		{ID: 4, Level: 2, Exp: 50, Coins: 0},
	} {
		if err := l.CreateUserIfAbsent(ctx, u); err != nil {
			t.Fatalf("Ledger.CreateUserIfAbsent() error = %v", err)
		}
	}

	got, err := l.ListTopUsers(ctx, 3)
	if err != nil {
		t.Fatalf("Ledger.ListTopUsers() error = %v", err)
	}
	var ids []int64
	for _, u := range got {
		ids = append(ids, u.ID)
	}
	if want := []int64{2, 4, 3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Ledger.ListTopUsers() got = %v, want %v", ids, want)
	}
}

func TestLedger_Inventory(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	shion := &game.Character{Name: "Shion", Rarity: game.RarityEpic, Faction: "Tempest", Power: 380, Price: 1100}
	gobta := &game.Character{Name: "Gobta", Rarity: game.RarityRare, Faction: "Tempest", Power: 80, Price: 300}
	for _, c := range []*game.Character{shion, gobta} {
		if err := l.CreateCharacter(ctx, c); err != nil {
			t.Fatalf("Ledger.CreateCharacter() error = %v", err)
		}
	}
	if shion.ID == 0 || gobta.ID == 0 || shion.ID == gobta.ID {
		t.Fatalf("Ledger.CreateCharacter() assigned ids %d and %d", shion.ID, gobta.ID)
	}

	if _, err := l.GetInventoryEntry(ctx, 5, gobta.ID); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("Ledger.GetInventoryEntry() error = %v, want %v", err, game.ErrNotFound)
	}
	if err := l.UpsertInventoryEntry(ctx, 5, gobta.ID, 1); err != nil {
		t.Fatalf("Ledger.UpsertInventoryEntry() error = %v", err)
	}
	if err := l.UpsertInventoryEntry(ctx, 5, gobta.ID, 3); err != nil {
		t.Fatalf("Ledger.UpsertInventoryEntry() error = %v", err)
	}
	if err := l.UpsertInventoryEntry(ctx, 5, shion.ID, 2); err != nil {
		t.Fatalf("Ledger.UpsertInventoryEntry() error = %v", err)
	}

	count, err := l.GetInventoryEntry(ctx, 5, gobta.ID)
	if err != nil || count != 3 {
		t.Errorf("Ledger.GetInventoryEntry() got = %d, %v, want 3", count, err)
	}

	items, err := l.ListInventory(ctx, 5)
	if err != nil {
		t.Fatalf("Ledger.ListInventory() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Ledger.ListInventory() returned %d items, want 2", len(items))
	}
	if items[0].Character.Name != "Shion" || items[0].Count != 2 {
		t.Errorf("Ledger.ListInventory()[0] got = %+v x%d", items[0].Character, items[0].Count)
	}
	if items[1].Character.Name != "Gobta" || items[1].Count != 3 {
		t.Errorf("Ledger.ListInventory()[1] got = %+v x%d", items[1].Character, items[1].Count)
	}
	if power := inventory.TotalPower(items); power != 2*380+3*80 {
		t.Errorf("inventory.TotalPower() got = %d, want %d", power, 2*380+3*80)
	}
}

func TestLedger_CatalogCache(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	if err := l.CreateCharacter(ctx, &game.Character{Name: "Ranga", Rarity: game.RarityRare, Power: 120}); err != nil {
		t.Fatalf("Ledger.CreateCharacter() error = %v", err)
	}
	first, err := l.ListCharacters(ctx)
	if err != nil || len(first) != 1 {
		t.Fatalf("Ledger.ListCharacters() got %d characters, err %v", len(first), err)
	}
	first[0].Name = "mutated"

	if err := l.CreateCharacter(ctx, &game.Character{Name: "Diablo", Rarity: game.RarityLegendary, Power: 800}); err != nil {
		t.Fatalf("Ledger.CreateCharacter() error = %v", err)
	}
	second, err := l.ListCharacters(ctx)
	if err != nil {
		t.Fatalf("Ledger.ListCharacters() error = %v", err)
	}
	if len(second) != 2 || second[0].Name != "Ranga" {
		t.Errorf("Ledger.ListCharacters() after upload got = %+v", second)
	}

	rare, err := l.ListCharactersByRarity(ctx, game.RarityRare)
	if err != nil || len(rare) != 1 || rare[0].Name != "Ranga" {
		t.Errorf("Ledger.ListCharactersByRarity() got = %+v, err %v", rare, err)
	}
	if _, err := l.GetCharacter(ctx, 404); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("Ledger.GetCharacter() error = %v, want %v", err, game.ErrNotFound)
	}
}

func TestLedger_AtomicRollback(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	if err := l.CreateUserIfAbsent(ctx, game.User{ID: 8, Coins: 200, Level: 1}); err != nil {
		t.Fatalf("Ledger.CreateUserIfAbsent() error = %v", err)
	}

	boom := errors.New("boom")
	err := l.Atomic(ctx, func(ctx context.Context, s game.Store) error {
		if err := s.UpdateUser(ctx, &game.User{ID: 8, Coins: 0, Level: 1}); err != nil {
			return err
		}
		if err := s.UpsertInventoryEntry(ctx, 8, 1, 5); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) || errors.Is(err, game.ErrStorageUnavailable) {
		t.Fatalf("Ledger.Atomic() error = %v, want %v unwrapped", err, boom)
	}

	user, err := l.GetUser(ctx, 8)
	if err != nil {
		t.Fatalf("Ledger.GetUser() error = %v", err)
	}
	if user.Coins != 200 {
		t.Errorf("Ledger.Atomic() rollback left coins = %d, want 200", user.Coins)
	}
	if _, err := l.GetInventoryEntry(ctx, 8, 1); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("Ledger.Atomic() rollback left inventory, error = %v", err)
	}
}

func TestLedger_Quests(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	quest := &game.Quest{Name: "Hunt Orcs", RewardCoins: 150, RewardExp: 30, Description: "Defeat the orc lord"}
	if err := l.CreateQuest(ctx, quest); err != nil {
		t.Fatalf("Ledger.CreateQuest() error = %v", err)
	}
	if err := l.UpsertClaim(ctx, 3, quest.ID, false); err != nil {
		t.Fatalf("Ledger.UpsertClaim() error = %v", err)
	}
	if err := l.UpsertClaim(ctx, 3, quest.ID, true); err != nil {
		t.Fatalf("Ledger.UpsertClaim() error = %v", err)
	}

	claim, err := l.GetClaim(ctx, 3, quest.ID)
	if err != nil {
		t.Fatalf("Ledger.GetClaim() error = %v", err)
	}
	if want := (&game.Claim{UserID: 3, QuestID: quest.ID, Done: true}); !reflect.DeepEqual(claim, want) {
		t.Errorf("Ledger.GetClaim() got = %+v, want %+v", claim, want)
	}

	if err := l.DeleteQuest(ctx, quest.ID); err != nil {
		t.Fatalf("Ledger.DeleteQuest() error = %v", err)
	}
	if _, err := l.GetQuest(ctx, quest.ID); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("Ledger.GetQuest() after delete error = %v, want %v", err, game.ErrNotFound)
	}
	claims, err := l.ListClaims(ctx, 3)
	if err != nil || len(claims) != 0 {
		t.Errorf("Ledger.ListClaims() after delete got = %v, err %v", claims, err)
	}
	if err := l.DeleteQuest(ctx, quest.ID); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("Ledger.DeleteQuest() twice error = %v, want %v", err, game.ErrNotFound)
	}
}

func TestLedger_Admins(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	added := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := l.AddAdmin(ctx, &game.Admin{UserID: 11, AddedBy: 1, AddedAt: added}); err != nil {
		t.Fatalf("Ledger.AddAdmin() error = %v", err)
	}
	if err := l.AddAdmin(ctx, &game.Admin{UserID: 11, AddedBy: 2, AddedAt: added.Add(time.Hour)}); err != nil {
		t.Fatalf("Ledger.AddAdmin() twice error = %v", err)
	}

	ok, err := l.IsAdmin(ctx, 11)
	if err != nil || !ok {
		t.Errorf("Ledger.IsAdmin() got = %v, err %v, want true", ok, err)
	}

	admins, err := l.ListAdmins(ctx)
	if err != nil {
		t.Fatalf("Ledger.ListAdmins() error = %v", err)
	}
	want := []*game.Admin{{UserID: 11, AddedBy: 1, AddedAt: added}}
	if !reflect.DeepEqual(admins, want) {
		t.Errorf("Ledger.ListAdmins() got = %+v, want %+v", admins, want)
	}

	if err := l.RemoveAdmin(ctx, 11); err != nil {
		t.Fatalf("Ledger.RemoveAdmin() error = %v", err)
	}
	if err := l.RemoveAdmin(ctx, 11); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("Ledger.RemoveAdmin() twice error = %v, want %v", err, game.ErrNotFound)
	}
}

func TestLedger_SummonEndToEnd(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	cfg := game.DefaultConfig()

	if err := l.CreateCharacter(ctx, &game.Character{Name: "Goblin Rider", Rarity: game.RarityCommon, Power: 50, Price: 100}); err != nil {
		t.Fatalf("Ledger.CreateCharacter() error = %v", err)
	}

	prog := progression.NewService(l, cfg)
	inv := inventory.NewService(l, cfg)
	s := draw.NewService(l, cfg, rand.New(rand.NewPCG(1, 2)), inv, prog)

	got, err := s.Summon(ctx, 21, 1)
	if err != nil {
		t.Fatalf("Service.Summon() error = %v", err)
	}
	if got.Coins != 150 || len(got.Characters) != 1 {
		t.Errorf("Service.Summon() got = %+v", got)
	}

	if _, err := s.Summon(ctx, 21, 10); !errors.Is(err, game.ErrInsufficientFunds) {
		t.Fatalf("Service.Summon(10) error = %v, want %v", err, game.ErrInsufficientFunds)
	}

	user, err := l.GetUser(ctx, 21)
	if err != nil {
		t.Fatalf("Ledger.GetUser() error = %v", err)
	}
	want := &game.User{ID: 21, Coins: 150, Level: 1, Exp: 10}
	if !reflect.DeepEqual(user, want) {
		t.Errorf("Ledger.GetUser() after summons got = %+v, want %+v", user, want)
	}

	count, err := l.GetInventoryEntry(ctx, 21, got.Characters[0].ID)
	if err != nil || count != 1 {
		t.Errorf("Ledger.GetInventoryEntry() got = %d, err %v, want 1", count, err)
	}
}
