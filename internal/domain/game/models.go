package game

import (
	"fmt"
	"strings"
	"time"
)

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
)

// Rarities lists the tiers in declaration order. Draw weights walk this order.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}

// ParseRarity accepts a tier name in any letter case.
func ParseRarity(s string) (Rarity, error) {
	for _, r := range Rarities {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: rarity must be one of Common, Rare, Epic, Legendary, Mythic", ErrInvalidInput)
}

type User struct {
	ID         int64
	Coins      int64
	Level      int64
	Exp        int64
	LastDaily  time.Time
	LastBattle time.Time
}

type Character struct {
	ID       int64
	Name     string
	Rarity   Rarity
	Faction  string
	Power    int64
	Price    int64
	ImageURL string
}

// InventoryItem is an owned character together with its count.
type InventoryItem struct {
	Character *Character
	Count     int64
}

type Quest struct {
	ID          int64
	Name        string
	RewardCoins int64
	RewardExp   int64
	Description string
}

type Claim struct {
	UserID  int64
	QuestID int64
	Done    bool
}

type Admin struct {
	UserID  int64
	AddedBy int64
	AddedAt time.Time
}
