package models

import (
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/uptrace/bun"
)

type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Name        string `bun:"name,notnull"`
	RewardCoins int64  `bun:"reward_coins,notnull"`
	RewardExp   int64  `bun:"reward_exp,notnull"`
	Description string `bun:"description,notnull"`
}

func QuestFrom(q *game.Quest) *Quest {
	return &Quest{
		ID:          q.ID,
		Name:        q.Name,
		RewardCoins: q.RewardCoins,
		RewardExp:   q.RewardExp,
		Description: q.Description,
	}
}

func (q *Quest) Domain() *game.Quest {
	return &game.Quest{
		ID:          q.ID,
		Name:        q.Name,
		RewardCoins: q.RewardCoins,
		RewardExp:   q.RewardExp,
		Description: q.Description,
	}
}

type UserQuest struct {
	bun.BaseModel `bun:"table:user_quests,alias:uq"`

	UserID  int64 `bun:"user_id,pk"`
	QuestID int64 `bun:"quest_id,pk"`
	Done    bool  `bun:"done,notnull"`
}

func (uq *UserQuest) Domain() *game.Claim {
	return &game.Claim{UserID: uq.UserID, QuestID: uq.QuestID, Done: uq.Done}
}
