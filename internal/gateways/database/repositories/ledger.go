package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/gateways/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultCacheSize = 128
	catalogKey       = "catalog"
)

// Ledger is the bun backed game.Ledger. The zero value is not usable.
type Ledger struct {
	db    *bun.DB
	idb   bun.IDB
	inTx  bool
	cache *lru.Cache
}

var _ game.Ledger = (*Ledger)(nil)

func NewLedger(db *bun.DB, cacheSize int) (*Ledger, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}
	return &Ledger{db: db, idb: db, cache: cache}, nil
}

// Atomic runs fn inside a database transaction. Calls made on a ledger that
// is already inside a transaction join it.
func (l *Ledger) Atomic(ctx context.Context, fn func(ctx context.Context, s game.Store) error) error {
	if l.inTx {
		return fn(ctx, l)
	}

	var fnErr error
	err := l.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		fnErr = fn(ctx, &Ledger{db: l.db, idb: tx, inTx: true, cache: l.cache})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return storageErr(err)
}

// lockRows reports whether reads should take row locks. SQLite serializes
// writers on its own.
func (l *Ledger) lockRows() bool {
	return l.inTx && l.db.Dialect().Name() == dialect.PG
}

func (l *Ledger) GetUser(ctx context.Context, id int64) (*game.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user := new(models.User)
	q := l.idb.NewSelect().Model(user).Where("id = ?", id)
	if l.lockRows() {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, lookupErr(err, "user", id)
	}
	return user.Domain(), nil
}

func (l *Ledger) CreateUserIfAbsent(ctx context.Context, defaults game.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := l.idb.NewInsert().
		Model(models.UserFrom(&defaults)).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	return storageErr(err)
}

func (l *Ledger) UpdateUser(ctx context.Context, user *game.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := l.idb.NewUpdate().
		Model(models.UserFrom(user)).
		Column("coins", "level", "exp", "last_daily", "last_battle").
		WherePK().
		Exec(ctx)
	if err != nil {
		return storageErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return game.NotFound("user", user.ID)
	}
	return nil
}

func (l *Ledger) ListTopUsers(ctx context.Context, limit int) ([]*game.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.User
	err := l.idb.NewSelect().
		Model(&rows).
		Order("level DESC", "exp DESC", "coins DESC", "id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	users := make([]*game.User, len(rows))
	for i, row := range rows {
		users[i] = row.Domain()
	}
	return users, nil
}

func (l *Ledger) GetCharacter(ctx context.Context, id int64) (*game.Character, error) {
	key := fmt.Sprintf("id:%d", id)
	if cached, ok := l.cache.Get(key); ok {
		c := *cached.(*game.Character)
		return &c, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := new(models.Character)
	if err := l.idb.NewSelect().Model(row).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, lookupErr(err, "character", id)
	}

	c := row.Domain()
	l.cache.Add(key, c)
	copied := *c
	return &copied, nil
}

func (l *Ledger) ListCharacters(ctx context.Context) ([]*game.Character, error) {
	return l.listCharacters(ctx, catalogKey, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q
	})
}

func (l *Ledger) ListCharactersByRarity(ctx context.Context, rarity game.Rarity) ([]*game.Character, error) {
	return l.listCharacters(ctx, catalogKey+":"+string(rarity), func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("rarity = ?", string(rarity))
	})
}

func (l *Ledger) listCharacters(ctx context.Context, key string, filter func(*bun.SelectQuery) *bun.SelectQuery) ([]*game.Character, error) {
	if cached, ok := l.cache.Get(key); ok {
		return copyCharacters(cached.([]*game.Character)), nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.Character
	if err := filter(l.idb.NewSelect().Model(&rows)).Order("id ASC").Scan(ctx); err != nil {
		return nil, storageErr(err)
	}

	characters := make([]*game.Character, len(rows))
	for i, row := range rows {
		characters[i] = row.Domain()
	}
	l.cache.Add(key, characters)
	return copyCharacters(characters), nil
}

func (l *Ledger) CreateCharacter(ctx context.Context, character *game.Character) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := models.CharacterFrom(character)
	if _, err := l.idb.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		return storageErr(err)
	}
	character.ID = row.ID
	l.cache.Purge()
	return nil
}

func (l *Ledger) GetInventoryEntry(ctx context.Context, userID, characterID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	entry := new(models.InventoryEntry)
	q := l.idb.NewSelect().
		Model(entry).
		Where("user_id = ? AND character_id = ?", userID, characterID)
	if l.lockRows() {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		return 0, lookupErr(err, "inventory entry for character", characterID)
	}
	return entry.Count, nil
}

func (l *Ledger) UpsertInventoryEntry(ctx context.Context, userID, characterID, count int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := l.idb.NewInsert().
		Model(&models.InventoryEntry{UserID: userID, CharacterID: characterID, Count: count}).
		On("CONFLICT (user_id, character_id) DO UPDATE").
		Set("count = EXCLUDED.count").
		Exec(ctx)
	return storageErr(err)
}

func (l *Ledger) ListInventory(ctx context.Context, userID int64) ([]*game.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.InventoryEntry
	err := l.idb.NewSelect().
		Model(&rows).
		Relation("Character").
		Where("i.user_id = ?", userID).
		Where("i.count > 0").
		Order("i.character_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	items := make([]*game.InventoryItem, len(rows))
	for i, row := range rows {
		items[i] = row.Domain()
	}
	return items, nil
}

func (l *Ledger) GetQuest(ctx context.Context, id int64) (*game.Quest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := new(models.Quest)
	if err := l.idb.NewSelect().Model(row).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, lookupErr(err, "quest", id)
	}
	return row.Domain(), nil
}

func (l *Ledger) ListQuests(ctx context.Context) ([]*game.Quest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.Quest
	if err := l.idb.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, storageErr(err)
	}

	quests := make([]*game.Quest, len(rows))
	for i, row := range rows {
		quests[i] = row.Domain()
	}
	return quests, nil
}

func (l *Ledger) CreateQuest(ctx context.Context, quest *game.Quest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := models.QuestFrom(quest)
	if _, err := l.idb.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		return storageErr(err)
	}
	quest.ID = row.ID
	return nil
}

// DeleteQuest removes the quest and every claim on it.
func (l *Ledger) DeleteQuest(ctx context.Context, id int64) error {
	return l.Atomic(ctx, func(ctx context.Context, s game.Store) error {
		tx := s.(*Ledger)
		ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
		defer cancel()

		if _, err := tx.idb.NewDelete().Model((*models.UserQuest)(nil)).Where("quest_id = ?", id).Exec(ctx); err != nil {
			return storageErr(err)
		}
		res, err := tx.idb.NewDelete().Model((*models.Quest)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return storageErr(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return game.NotFound("quest", id)
		}
		return nil
	})
}

func (l *Ledger) GetClaim(ctx context.Context, userID, questID int64) (*game.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := new(models.UserQuest)
	q := l.idb.NewSelect().
		Model(row).
		Where("user_id = ? AND quest_id = ?", userID, questID)
	if l.lockRows() {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, lookupErr(err, "claim for quest", questID)
	}
	return row.Domain(), nil
}

func (l *Ledger) UpsertClaim(ctx context.Context, userID, questID int64, done bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := l.idb.NewInsert().
		Model(&models.UserQuest{UserID: userID, QuestID: questID, Done: done}).
		On("CONFLICT (user_id, quest_id) DO UPDATE").
		Set("done = EXCLUDED.done").
		Exec(ctx)
	return storageErr(err)
}

func (l *Ledger) ListClaims(ctx context.Context, userID int64) ([]*game.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.UserQuest
	err := l.idb.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("quest_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	claims := make([]*game.Claim, len(rows))
	for i, row := range rows {
		claims[i] = row.Domain()
	}
	return claims, nil
}

func (l *Ledger) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	exists, err := l.idb.NewSelect().
		Model((*models.Admin)(nil)).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, storageErr(err)
	}
	return exists, nil
}

func (l *Ledger) AddAdmin(ctx context.Context, admin *game.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := l.idb.NewInsert().
		Model(models.AdminFrom(admin)).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	return storageErr(err)
}

func (l *Ledger) RemoveAdmin(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := l.idb.NewDelete().
		Model((*models.Admin)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return storageErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return game.NotFound("admin", userID)
	}
	return nil
}

func (l *Ledger) ListAdmins(ctx context.Context) ([]*game.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []*models.Admin
	if err := l.idb.NewSelect().Model(&rows).Order("added_at ASC", "user_id ASC").Scan(ctx); err != nil {
		return nil, storageErr(err)
	}

	admins := make([]*game.Admin, len(rows))
	for i, row := range rows {
		admins[i] = row.Domain()
	}
	return admins, nil
}

func lookupErr(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return game.NotFound(entity, id)
	}
	return storageErr(err)
}

func storageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
}

func copyCharacters(src []*game.Character) []*game.Character {
	out := make([]*game.Character, len(src))
	for i, c := range src {
		copied := *c
		out[i] = &copied
	}
	return out
}
