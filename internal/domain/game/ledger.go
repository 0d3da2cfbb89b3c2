package game

import "context"

// Store is the read/write contract the engines use against durable storage.
// Lookups of absent rows return an error wrapping ErrNotFound; storage
// faults wrap ErrStorageUnavailable.
type Store interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	CreateUserIfAbsent(ctx context.Context, defaults User) error
	UpdateUser(ctx context.Context, user *User) error
	ListTopUsers(ctx context.Context, limit int) ([]*User, error)

	GetCharacter(ctx context.Context, id int64) (*Character, error)
	ListCharacters(ctx context.Context) ([]*Character, error)
	ListCharactersByRarity(ctx context.Context, rarity Rarity) ([]*Character, error)
	CreateCharacter(ctx context.Context, character *Character) error

	GetInventoryEntry(ctx context.Context, userID, characterID int64) (int64, error)
	UpsertInventoryEntry(ctx context.Context, userID, characterID, count int64) error
	ListInventory(ctx context.Context, userID int64) ([]*InventoryItem, error)

	GetQuest(ctx context.Context, id int64) (*Quest, error)
	ListQuests(ctx context.Context) ([]*Quest, error)
	CreateQuest(ctx context.Context, quest *Quest) error
	DeleteQuest(ctx context.Context, id int64) error
	GetClaim(ctx context.Context, userID, questID int64) (*Claim, error)
	UpsertClaim(ctx context.Context, userID, questID int64, done bool) error
	ListClaims(ctx context.Context, userID int64) ([]*Claim, error)

	IsAdmin(ctx context.Context, userID int64) (bool, error)
	AddAdmin(ctx context.Context, admin *Admin) error
	RemoveAdmin(ctx context.Context, userID int64) error
	ListAdmins(ctx context.Context) ([]*Admin, error)
}

// Ledger is a Store that can run a sequence of operations as one unit.
type Ledger interface {
	Store

	// Atomic runs fn in a single transaction. User rows read through the
	// Store passed to fn stay locked until fn returns. Either every write
	// made through it is committed or none is.
	Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// EnsureUser creates the user with defaults when absent and returns the
// stored record.
func EnsureUser(ctx context.Context, st Store, defaults User) (*User, error) {
	if err := st.CreateUserIfAbsent(ctx, defaults); err != nil {
		return nil, err
	}
	return st.GetUser(ctx, defaults.ID)
}
