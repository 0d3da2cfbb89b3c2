package mock

import (
	context "context"
	reflect "reflect"

	game "github.com/tensuraworld/gachabot/internal/domain/game"
	gomock "go.uber.org/mock/gomock"
)

// MockLedger is a mock of Ledger interface.
type MockLedger struct {
	ctrl     *gomock.Controller
	recorder *MockLedgerMockRecorder
	isgomock struct{}
}

// MockLedgerMockRecorder is the mock recorder for MockLedger.
type MockLedgerMockRecorder struct {
	mock *MockLedger
}

// NewMockLedger creates a new mock instance.
func NewMockLedger(ctrl *gomock.Controller) *MockLedger {
	mock := &MockLedger{ctrl: ctrl}
	mock.recorder = &MockLedgerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLedger) EXPECT() *MockLedgerMockRecorder {
	return m.recorder
}

// AddAdmin mocks base method.
func (m *MockLedger) AddAdmin(ctx context.Context, admin *game.Admin) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddAdmin", ctx, admin)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddAdmin indicates an expected call of AddAdmin.
func (mr *MockLedgerMockRecorder) AddAdmin(ctx, admin any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddAdmin", reflect.TypeOf((*MockLedger)(nil).AddAdmin), ctx, admin)
}

// Atomic mocks base method.
func (m *MockLedger) Atomic(ctx context.Context, fn func(context.Context, game.Store) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Atomic", ctx, fn)
	ret0, _ := ret[0].(error)
	return ret0
}

// Atomic indicates an expected call of Atomic.
func (mr *MockLedgerMockRecorder) Atomic(ctx, fn any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Atomic", reflect.TypeOf((*MockLedger)(nil).Atomic), ctx, fn)
}

// CreateCharacter mocks base method.
func (m *MockLedger) CreateCharacter(ctx context.Context, character *game.Character) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCharacter", ctx, character)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateCharacter indicates an expected call of CreateCharacter.
func (mr *MockLedgerMockRecorder) CreateCharacter(ctx, character any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCharacter", reflect.TypeOf((*MockLedger)(nil).CreateCharacter), ctx, character)
}

// CreateQuest mocks base method.
func (m *MockLedger) CreateQuest(ctx context.Context, quest *game.Quest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateQuest", ctx, quest)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateQuest indicates an expected call of CreateQuest.
func (mr *MockLedgerMockRecorder) CreateQuest(ctx, quest any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateQuest", reflect.TypeOf((*MockLedger)(nil).CreateQuest), ctx, quest)
}

// CreateUserIfAbsent mocks base method.
func (m *MockLedger) CreateUserIfAbsent(ctx context.Context, defaults game.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateUserIfAbsent", ctx, defaults)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateUserIfAbsent indicates an expected call of CreateUserIfAbsent.
func (mr *MockLedgerMockRecorder) CreateUserIfAbsent(ctx, defaults any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateUserIfAbsent", reflect.TypeOf((*MockLedger)(nil).CreateUserIfAbsent), ctx, defaults)
}

// DeleteQuest mocks base method.
func (m *MockLedger) DeleteQuest(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteQuest", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteQuest indicates an expected call of DeleteQuest.
func (mr *MockLedgerMockRecorder) DeleteQuest(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteQuest", reflect.TypeOf((*MockLedger)(nil).DeleteQuest), ctx, id)
}

// GetCharacter mocks base method.
func (m *MockLedger) GetCharacter(ctx context.Context, id int64) (*game.Character, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCharacter", ctx, id)
	ret0, _ := ret[0].(*game.Character)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCharacter indicates an expected call of GetCharacter.
func (mr *MockLedgerMockRecorder) GetCharacter(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCharacter", reflect.TypeOf((*MockLedger)(nil).GetCharacter), ctx, id)
}

// GetClaim mocks base method.
func (m *MockLedger) GetClaim(ctx context.Context, userID, questID int64) (*game.Claim, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetClaim", ctx, userID, questID)
	ret0, _ := ret[0].(*game.Claim)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetClaim indicates an expected call of GetClaim.
func (mr *MockLedgerMockRecorder) GetClaim(ctx, userID, questID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetClaim", reflect.TypeOf((*MockLedger)(nil).GetClaim), ctx, userID, questID)
}

// GetInventoryEntry mocks base method.
func (m *MockLedger) GetInventoryEntry(ctx context.Context, userID, characterID int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetInventoryEntry", ctx, userID, characterID)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetInventoryEntry indicates an expected call of GetInventoryEntry.
func (mr *MockLedgerMockRecorder) GetInventoryEntry(ctx, userID, characterID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetInventoryEntry", reflect.TypeOf((*MockLedger)(nil).GetInventoryEntry), ctx, userID, characterID)
}

// GetQuest mocks base method.
func (m *MockLedger) GetQuest(ctx context.Context, id int64) (*game.Quest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetQuest", ctx, id)
	ret0, _ := ret[0].(*game.Quest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetQuest indicates an expected call of GetQuest.
func (mr *MockLedgerMockRecorder) GetQuest(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetQuest", reflect.TypeOf((*MockLedger)(nil).GetQuest), ctx, id)
}

// GetUser mocks base method.
func (m *MockLedger) GetUser(ctx context.Context, id int64) (*game.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUser", ctx, id)
	ret0, _ := ret[0].(*game.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUser indicates an expected call of GetUser.
func (mr *MockLedgerMockRecorder) GetUser(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUser", reflect.TypeOf((*MockLedger)(nil).GetUser), ctx, id)
}

// IsAdmin mocks base method.
func (m *MockLedger) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsAdmin", ctx, userID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IsAdmin indicates an expected call of IsAdmin.
func (mr *MockLedgerMockRecorder) IsAdmin(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsAdmin", reflect.TypeOf((*MockLedger)(nil).IsAdmin), ctx, userID)
}

// ListAdmins mocks base method.
func (m *MockLedger) ListAdmins(ctx context.Context) ([]*game.Admin, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAdmins", ctx)
	ret0, _ := ret[0].([]*game.Admin)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAdmins indicates an expected call of ListAdmins.
func (mr *MockLedgerMockRecorder) ListAdmins(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAdmins", reflect.TypeOf((*MockLedger)(nil).ListAdmins), ctx)
}

// ListCharacters mocks base method.
func (m *MockLedger) ListCharacters(ctx context.Context) ([]*game.Character, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListCharacters", ctx)
	ret0, _ := ret[0].([]*game.Character)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListCharacters indicates an expected call of ListCharacters.
func (mr *MockLedgerMockRecorder) ListCharacters(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListCharacters", reflect.TypeOf((*MockLedger)(nil).ListCharacters), ctx)
}

// ListCharactersByRarity mocks base method.
func (m *MockLedger) ListCharactersByRarity(ctx context.Context, rarity game.Rarity) ([]*game.Character, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListCharactersByRarity", ctx, rarity)
	ret0, _ := ret[0].([]*game.Character)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListCharactersByRarity indicates an expected call of ListCharactersByRarity.
func (mr *MockLedgerMockRecorder) ListCharactersByRarity(ctx, rarity any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListCharactersByRarity", reflect.TypeOf((*MockLedger)(nil).ListCharactersByRarity), ctx, rarity)
}

// ListClaims mocks base method.
func (m *MockLedger) ListClaims(ctx context.Context, userID int64) ([]*game.Claim, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListClaims", ctx, userID)
	ret0, _ := ret[0].([]*game.Claim)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListClaims indicates an expected call of ListClaims.
func (mr *MockLedgerMockRecorder) ListClaims(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListClaims", reflect.TypeOf((*MockLedger)(nil).ListClaims), ctx, userID)
}

// ListInventory mocks base method.
func (m *MockLedger) ListInventory(ctx context.Context, userID int64) ([]*game.InventoryItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListInventory", ctx, userID)
	ret0, _ := ret[0].([]*game.InventoryItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListInventory indicates an expected call of ListInventory.
func (mr *MockLedgerMockRecorder) ListInventory(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListInventory", reflect.TypeOf((*MockLedger)(nil).ListInventory), ctx, userID)
}

// ListQuests mocks base method.
func (m *MockLedger) ListQuests(ctx context.Context) ([]*game.Quest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListQuests", ctx)
	ret0, _ := ret[0].([]*game.Quest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListQuests indicates an expected call of ListQuests.
func (mr *MockLedgerMockRecorder) ListQuests(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListQuests", reflect.TypeOf((*MockLedger)(nil).ListQuests), ctx)
}

// ListTopUsers mocks base method.
func (m *MockLedger) ListTopUsers(ctx context.Context, limit int) ([]*game.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListTopUsers", ctx, limit)
	ret0, _ := ret[0].([]*game.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListTopUsers indicates an expected call of ListTopUsers.
func (mr *MockLedgerMockRecorder) ListTopUsers(ctx, limit any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListTopUsers", reflect.TypeOf((*MockLedger)(nil).ListTopUsers), ctx, limit)
}

// RemoveAdmin mocks base method.
func (m *MockLedger) RemoveAdmin(ctx context.Context, userID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveAdmin", ctx, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RemoveAdmin indicates an expected call of RemoveAdmin.
func (mr *MockLedgerMockRecorder) RemoveAdmin(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveAdmin", reflect.TypeOf((*MockLedger)(nil).RemoveAdmin), ctx, userID)
}

// UpdateUser mocks base method.
func (m *MockLedger) UpdateUser(ctx context.Context, user *game.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateUser", ctx, user)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateUser indicates an expected call of UpdateUser.
func (mr *MockLedgerMockRecorder) UpdateUser(ctx, user any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateUser", reflect.TypeOf((*MockLedger)(nil).UpdateUser), ctx, user)
}

// UpsertClaim mocks base method.
func (m *MockLedger) UpsertClaim(ctx context.Context, userID, questID int64, done bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertClaim", ctx, userID, questID, done)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertClaim indicates an expected call of UpsertClaim.
func (mr *MockLedgerMockRecorder) UpsertClaim(ctx, userID, questID, done any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertClaim", reflect.TypeOf((*MockLedger)(nil).UpsertClaim), ctx, userID, questID, done)
}

// UpsertInventoryEntry mocks base method.
func (m *MockLedger) UpsertInventoryEntry(ctx context.Context, userID, characterID, count int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertInventoryEntry", ctx, userID, characterID, count)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertInventoryEntry indicates an expected call of UpsertInventoryEntry.
func (mr *MockLedgerMockRecorder) UpsertInventoryEntry(ctx, userID, characterID, count any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertInventoryEntry", reflect.TypeOf((*MockLedger)(nil).UpsertInventoryEntry), ctx, userID, characterID, count)
}
