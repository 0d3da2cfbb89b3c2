package models

import (
	"time"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/uptrace/bun"
)

// Timestamps are unix seconds. Zero means never.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID         int64 `bun:"id,pk"`
	Coins      int64 `bun:"coins,notnull"`
	Level      int64 `bun:"level,notnull"`
	Exp        int64 `bun:"exp,notnull"`
	LastDaily  int64 `bun:"last_daily,notnull"`
	LastBattle int64 `bun:"last_battle,notnull"`
}

func UserFrom(u *game.User) *User {
	return &User{
		ID:         u.ID,
		Coins:      u.Coins,
		Level:      u.Level,
		Exp:        u.Exp,
		LastDaily:  toUnix(u.LastDaily),
		LastBattle: toUnix(u.LastBattle),
	}
}

func (u *User) Domain() *game.User {
	return &game.User{
		ID:         u.ID,
		Coins:      u.Coins,
		Level:      u.Level,
		Exp:        u.Exp,
		LastDaily:  fromUnix(u.LastDaily),
		LastBattle: fromUnix(u.LastBattle),
	}
}

type Admin struct {
	bun.BaseModel `bun:"table:admins,alias:a"`

	UserID  int64 `bun:"user_id,pk"`
	AddedBy int64 `bun:"added_by,notnull"`
	AddedAt int64 `bun:"added_at,notnull"`
}

func AdminFrom(a *game.Admin) *Admin {
	return &Admin{UserID: a.UserID, AddedBy: a.AddedBy, AddedAt: toUnix(a.AddedAt)}
}

func (a *Admin) Domain() *game.Admin {
	return &game.Admin{UserID: a.UserID, AddedBy: a.AddedBy, AddedAt: fromUnix(a.AddedAt)}
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(s int64) time.Time {
	if s == 0 {
		return time.Time{}
	}
	return time.Unix(s, 0).UTC()
}
