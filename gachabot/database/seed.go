package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tensuraworld/gachabot/internal/gateways/database/models"
)

var starterCharacters = []models.Character{
	{Name: "Rimuru Tempest", Rarity: "Mythic", Faction: "Tempest", Power: 900, Price: 5000},
	{Name: "Veldora Tempest", Rarity: "Mythic", Faction: "True Dragons", Power: 950, Price: 5500},
	{Name: "Milim Nava", Rarity: "Legendary", Faction: "Demon Lords", Power: 850, Price: 4000},
	{Name: "Diablo", Rarity: "Legendary", Faction: "Tempest", Power: 800, Price: 3800},
	{Name: "Benimaru", Rarity: "Epic", Faction: "Tempest", Power: 400, Price: 1200},
	{Name: "Shion", Rarity: "Epic", Faction: "Tempest", Power: 380, Price: 1100},
	{Name: "Souei", Rarity: "Epic", Faction: "Tempest", Power: 360, Price: 1000},
	{Name: "Ranga", Rarity: "Rare", Faction: "Tempest", Power: 120, Price: 450},
	{Name: "Gobta", Rarity: "Rare", Faction: "Tempest", Power: 80, Price: 300},
	{Name: "Goblin Rider", Rarity: "Common", Faction: "Tempest", Power: 50, Price: 100},
	{Name: "Orc Soldier", Rarity: "Common", Faction: "Orc Lord", Power: 40, Price: 80},
	{Name: "Lizardman Scout", Rarity: "Common", Faction: "Lizardmen", Power: 35, Price: 70},
}

var starterQuests = []models.Quest{
	{Name: "First Summon", RewardCoins: 50, RewardExp: 10, Description: "Summon your first character"},
	{Name: "Arena Debut", RewardCoins: 100, RewardExp: 20, Description: "Win a battle in the arena"},
	{Name: "Collector", RewardCoins: 150, RewardExp: 30, Description: "Own five different characters"},
}

// SeedStarterData fills an empty catalog and quest board. Tables that
// already hold rows are left alone.
func (db *DB) SeedStarterData(ctx context.Context) error {
	count, err := db.bunDB.NewSelect().Model((*models.Character)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count characters: %w", err)
	}
	if count == 0 {
		characters := append([]models.Character(nil), starterCharacters...)
		if _, err := db.bunDB.NewInsert().Model(&characters).Exec(ctx); err != nil {
			return fmt.Errorf("failed to seed characters: %w", err)
		}
		slog.Info("Seeded character catalog", slog.String("type", "db"), slog.Int("characters", len(characters)))
	} else {
		slog.Info("Character catalog already present, skipping", slog.String("type", "db"), slog.Int("existing", count))
	}

	count, err = db.bunDB.NewSelect().Model((*models.Quest)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count quests: %w", err)
	}
	if count == 0 {
		quests := append([]models.Quest(nil), starterQuests...)
		if _, err := db.bunDB.NewInsert().Model(&quests).Exec(ctx); err != nil {
			return fmt.Errorf("failed to seed quests: %w", err)
		}
		slog.Info("Seeded quests", slog.String("type", "db"), slog.Int("quests", len(quests)))
	}
	return nil
}
