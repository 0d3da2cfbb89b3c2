package models

import (
	"strconv"
	"time"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/players"
	"github.com/tensuraworld/gachabot/internal/domain/quests"
)

// Views are the JSON shapes served by the public API. User ids are strings
// because JavaScript cannot hold a Discord snowflake in a number.

type CharacterView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity"`
	Faction  string `json:"faction"`
	Power    int64  `json:"power"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

type InventoryEntryView struct {
	Character CharacterView `json:"character"`
	Count     int64         `json:"count"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Level  int64  `json:"level"`
	Exp    int64  `json:"exp"`
	Coins  int64  `json:"coins"`
}

type ProfileView struct {
	UserID      string     `json:"user_id"`
	Level       int64      `json:"level"`
	Exp         int64      `json:"exp"`
	RequiredExp int64      `json:"required_exp"`
	Coins       int64      `json:"coins"`
	TotalPower  int64      `json:"total_power"`
	Distinct    int        `json:"distinct_characters"`
	Owned       int64      `json:"owned_characters"`
	LastDaily   *time.Time `json:"last_daily,omitempty"`
	LastBattle  *time.Time `json:"last_battle,omitempty"`
}

type QuestView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	RewardCoins int64  `json:"reward_coins"`
	RewardExp   int64  `json:"reward_exp"`
	Description string `json:"description,omitempty"`
	Claimed     *bool  `json:"claimed,omitempty"`
}

func NewCharacterView(c *game.Character) CharacterView {
	return CharacterView{
		ID:       c.ID,
		Name:     c.Name,
		Rarity:   string(c.Rarity),
		Faction:  c.Faction,
		Power:    c.Power,
		Price:    c.Price,
		ImageURL: c.ImageURL,
	}
}

func NewCharacterViews(characters []*game.Character) []CharacterView {
	views := make([]CharacterView, len(characters))
	for i, c := range characters {
		views[i] = NewCharacterView(c)
	}
	return views
}

func NewInventoryViews(items []*game.InventoryItem) []InventoryEntryView {
	views := make([]InventoryEntryView, len(items))
	for i, item := range items {
		views[i] = InventoryEntryView{Character: NewCharacterView(item.Character), Count: item.Count}
	}
	return views
}

func NewLeaderboard(users []*game.User) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = LeaderboardEntry{
			Rank:   i + 1,
			UserID: userID(u.ID),
			Level:  u.Level,
			Exp:    u.Exp,
			Coins:  u.Coins,
		}
	}
	return entries
}

func NewProfileView(p *players.Profile) ProfileView {
	return ProfileView{
		UserID:      userID(p.User.ID),
		Level:       p.User.Level,
		Exp:         p.User.Exp,
		RequiredExp: p.RequiredExp,
		Coins:       p.User.Coins,
		TotalPower:  p.TotalPower,
		Distinct:    p.Distinct,
		Owned:       p.Owned,
		LastDaily:   optionalTime(p.User.LastDaily),
		LastBattle:  optionalTime(p.User.LastBattle),
	}
}

func NewQuestViews(statuses []quests.Status, withClaims bool) []QuestView {
	views := make([]QuestView, len(statuses))
	for i, s := range statuses {
		views[i] = QuestView{
			ID:          s.Quest.ID,
			Name:        s.Quest.Name,
			RewardCoins: s.Quest.RewardCoins,
			RewardExp:   s.Quest.RewardExp,
			Description: s.Quest.Description,
		}
		if withClaims {
			claimed := s.Claimed
			views[i].Claimed = &claimed
		}
	}
	return views
}

func userID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
