package quests

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/game/mock"
	"github.com/tensuraworld/gachabot/internal/domain/progression"
	"go.uber.org/mock/gomock"
)

var quest5 = &game.Quest{ID: 5, Name: "Slay the Orc Lord", RewardCoins: 100, RewardExp: 20}

func newTestService(ledger game.Ledger) *Service {
	cfg := game.DefaultConfig()
	return NewService(ledger, cfg, progression.NewService(ledger, cfg))
}

func TestService_Claim_Twice(t *testing.T) {
	ctx := context.Background()
	ledger := mock.NewMockLedger(gomock.NewController(t))
	mock.PassThroughAtomic(ledger)

	starter := game.DefaultConfig().NewUser(1)
	ledger.EXPECT().GetQuest(gomock.Any(), int64(5)).Return(quest5, nil).Times(2)
	ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), starter).Return(nil).Times(2)

	gomock.InOrder(
		ledger.EXPECT().GetUser(gomock.Any(), int64(1)).Return(mock.NewUser(1, 200), nil),
		ledger.EXPECT().GetUser(gomock.Any(), int64(1)).Return(&game.User{ID: 1, Coins: 300, Level: 1, Exp: 20}, nil),
	)
	gomock.InOrder(
		ledger.EXPECT().GetClaim(gomock.Any(), int64(1), int64(5)).Return(nil, game.NotFound("claim", 5)),
		ledger.EXPECT().GetClaim(gomock.Any(), int64(1), int64(5)).Return(&game.Claim{UserID: 1, QuestID: 5, Done: true}, nil),
	)
	ledger.EXPECT().UpsertClaim(gomock.Any(), int64(1), int64(5), true).Return(nil).Times(1)
	ledger.EXPECT().UpdateUser(gomock.Any(), &game.User{ID: 1, Coins: 300, Level: 1, Exp: 20}).Return(nil).Times(1)

	s := newTestService(ledger)

	got, err := s.Claim(ctx, 1, 5)
	if err != nil {
		t.Fatalf("Service.Claim() error = %v", err)
	}
	want := &Reward{QuestID: 5, Name: "Slay the Orc Lord", Coins: 100, Exp: 20, Level: 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Service.Claim() got = %+v, want %+v", got, want)
	}

	if _, err := s.Claim(ctx, 1, 5); !errors.Is(err, game.ErrAlreadyClaimed) {
		t.Errorf("second Service.Claim() error = %v, want %v", err, game.ErrAlreadyClaimed)
	}
}

func TestService_Claim(t *testing.T) {
	tests := []struct {
		name     string
		quest    *game.Quest
		questErr error
		claim    *game.Claim
		wantUser *game.User
		want     *Reward
		wantErr  error
	}{
		{
			name:     "unknown quest",
			questErr: game.NotFound("quest", 5),
			wantErr:  game.ErrNotFound,
		},
		{
			name:     "pending claim record is paid",
			quest:    &game.Quest{ID: 5, Name: "Veldora", RewardCoins: 10, RewardExp: 150},
			claim:    &game.Claim{UserID: 1, QuestID: 5, Done: false},
			wantUser: &game.User{ID: 1, Coins: 210, Level: 2, Exp: 50},
			want:     &Reward{QuestID: 5, Name: "Veldora", Coins: 10, Exp: 150, LeveledUp: true, Level: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mock.NewMockLedger(gomock.NewController(t))
			mock.PassThroughAtomic(ledger)
			ledger.EXPECT().GetQuest(gomock.Any(), int64(5)).Return(tt.quest, tt.questErr)
			if tt.quest != nil {
				ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), gomock.Any()).Return(nil)
				ledger.EXPECT().GetUser(gomock.Any(), int64(1)).Return(mock.NewUser(1, 200), nil)
				ledger.EXPECT().GetClaim(gomock.Any(), int64(1), int64(5)).Return(tt.claim, nil)
				ledger.EXPECT().UpsertClaim(gomock.Any(), int64(1), int64(5), true).Return(nil)
				ledger.EXPECT().UpdateUser(gomock.Any(), tt.wantUser).Return(nil)
			}

			got, err := newTestService(ledger).Claim(context.Background(), 1, 5)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Service.Claim() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Service.Claim() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	ledger := mock.NewMockLedger(gomock.NewController(t))
	q1 := &game.Quest{ID: 1, Name: "Gather herbs"}
	q2 := &game.Quest{ID: 2, Name: "Guard the village"}
	ledger.EXPECT().ListQuests(gomock.Any()).Return([]*game.Quest{q1, q2}, nil)
	ledger.EXPECT().ListClaims(gomock.Any(), int64(9)).Return([]*game.Claim{{UserID: 9, QuestID: 2, Done: true}}, nil)

	got, err := newTestService(ledger).List(context.Background(), 9)
	if err != nil {
		t.Fatalf("Service.List() error = %v", err)
	}
	want := []Status{{Quest: q1}, {Quest: q2, Claimed: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Service.List() got = %+v, want %+v", got, want)
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		quest   *game.Quest
		wantErr error
	}{
		{name: "valid", quest: &game.Quest{Name: " Scout ", RewardCoins: 50, RewardExp: 5}},
		{name: "missing name", quest: &game.Quest{Name: "  "}, wantErr: game.ErrInvalidInput},
		{name: "negative reward", quest: &game.Quest{Name: "Scout", RewardCoins: -5}, wantErr: game.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mock.NewMockLedger(gomock.NewController(t))
			if tt.wantErr == nil {
				ledger.EXPECT().CreateQuest(gomock.Any(), &game.Quest{Name: "Scout", RewardCoins: 50, RewardExp: 5}).Return(nil)
			}
			if err := newTestService(ledger).Create(context.Background(), tt.quest); !errors.Is(err, tt.wantErr) {
				t.Errorf("Service.Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("existing quest", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		mock.PassThroughAtomic(ledger)
		ledger.EXPECT().GetQuest(gomock.Any(), int64(5)).Return(quest5, nil)
		ledger.EXPECT().DeleteQuest(gomock.Any(), int64(5)).Return(nil)

		if err := newTestService(ledger).Delete(context.Background(), 5); err != nil {
			t.Errorf("Service.Delete() error = %v", err)
		}
	})

	t.Run("unknown quest", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		mock.PassThroughAtomic(ledger)
		ledger.EXPECT().GetQuest(gomock.Any(), int64(5)).Return(nil, game.NotFound("quest", 5))

		if err := newTestService(ledger).Delete(context.Background(), 5); !errors.Is(err, game.ErrNotFound) {
			t.Errorf("Service.Delete() error = %v, want %v", err, game.ErrNotFound)
		}
	})
}
