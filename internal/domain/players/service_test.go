package players

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/game/mock"
	"go.uber.org/mock/gomock"
)

func TestService_Profile(t *testing.T) {
	ledger := mock.NewMockLedger(gomock.NewController(t))
	user := &game.User{ID: 3, Coins: 420, Level: 4, Exp: 120}
	ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), game.DefaultConfig().NewUser(3)).Return(nil)
	ledger.EXPECT().GetUser(gomock.Any(), int64(3)).Return(user, nil)
	ledger.EXPECT().ListInventory(gomock.Any(), int64(3)).Return([]*game.InventoryItem{
		{Character: &game.Character{ID: 1, Power: 50}, Count: 3},
		{Character: &game.Character{ID: 2, Power: 80}, Count: 2},
	}, nil)

	got, err := NewService(ledger, game.DefaultConfig(), nil).Profile(context.Background(), 3)
	if err != nil {
		t.Fatalf("Service.Profile() error = %v", err)
	}

	want := &Profile{User: user, RequiredExp: 400, TotalPower: 310, Distinct: 2, Owned: 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Service.Profile() got = %+v, want %+v", got, want)
	}
}

func TestService_Daily(t *testing.T) {
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastDaily time.Time
		want      *DailyReward
		wantErr   error
	}{
		{
			name: "first claim",
			want: &DailyReward{Coins: 100, Balance: 300, NextAt: now.Add(24 * time.Hour)},
		},
		{
			name:      "window passed",
			lastDaily: now.Add(-24 * time.Hour),
			want:      &DailyReward{Coins: 100, Balance: 300, NextAt: now.Add(24 * time.Hour)},
		},
		{
			name:      "too soon",
			lastDaily: now.Add(-23 * time.Hour),
			wantErr:   game.ErrOnCooldown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mock.NewMockLedger(gomock.NewController(t))
			mock.PassThroughAtomic(ledger)
			ledger.EXPECT().CreateUserIfAbsent(gomock.Any(), gomock.Any()).Return(nil)
			ledger.EXPECT().GetUser(gomock.Any(), int64(3)).Return(&game.User{ID: 3, Coins: 200, Level: 1, LastDaily: tt.lastDaily}, nil)
			if tt.want != nil {
				ledger.EXPECT().UpdateUser(gomock.Any(), &game.User{ID: 3, Coins: 300, Level: 1, LastDaily: now}).Return(nil)
			}

			s := NewService(ledger, game.DefaultConfig(), func() time.Time { return now })
			got, err := s.Daily(context.Background(), 3)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Service.Daily() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Service.Daily() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestService_Leaderboard(t *testing.T) {
	ledger := mock.NewMockLedger(gomock.NewController(t))
	top := []*game.User{{ID: 1, Level: 9}, {ID: 2, Level: 7}}
	ledger.EXPECT().ListTopUsers(gomock.Any(), 10).Return(top, nil)

	got, err := NewService(ledger, game.DefaultConfig(), nil).Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Service.Leaderboard() error = %v", err)
	}
	if !reflect.DeepEqual(got, top) {
		t.Errorf("Service.Leaderboard() got = %v, want %v", got, top)
	}
}
