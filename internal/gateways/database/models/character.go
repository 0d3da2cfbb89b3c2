package models

import (
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/uptrace/bun"
)

type Character struct {
	bun.BaseModel `bun:"table:characters,alias:c"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Name     string `bun:"name,notnull"`
	Rarity   string `bun:"rarity,notnull"`
	Faction  string `bun:"faction,notnull"`
	Power    int64  `bun:"power,notnull"`
	Price    int64  `bun:"price,notnull"`
	ImageURL string `bun:"image_url,notnull"`
}

func CharacterFrom(c *game.Character) *Character {
	return &Character{
		ID:       c.ID,
		Name:     c.Name,
		Rarity:   string(c.Rarity),
		Faction:  c.Faction,
		Power:    c.Power,
		Price:    c.Price,
		ImageURL: c.ImageURL,
	}
}

func (c *Character) Domain() *game.Character {
	return &game.Character{
		ID:       c.ID,
		Name:     c.Name,
		Rarity:   game.Rarity(c.Rarity),
		Faction:  c.Faction,
		Power:    c.Power,
		Price:    c.Price,
		ImageURL: c.ImageURL,
	}
}

// InventoryEntry is one (user, character) count. Rows never hold a count
// below one once written by the engines.
type InventoryEntry struct {
	bun.BaseModel `bun:"table:inventory,alias:i"`

	UserID      int64 `bun:"user_id,pk"`
	CharacterID int64 `bun:"character_id,pk"`
	Count       int64 `bun:"count,notnull"`

	Character *Character `bun:"rel:belongs-to,join:character_id=id"`
}

func (e *InventoryEntry) Domain() *game.InventoryItem {
	item := &game.InventoryItem{Count: e.Count}
	if e.Character != nil {
		item.Character = e.Character.Domain()
	}
	return item
}
