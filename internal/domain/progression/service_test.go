package progression

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/game/mock"
	"go.uber.org/mock/gomock"
)

func TestCalculator_Apply(t *testing.T) {
	tests := []struct {
		name        string
		level       int64
		exp         int64
		amount      int64
		wantLevel   int64
		wantExp     int64
		wantLeveled bool
	}{
		{name: "below threshold", level: 1, exp: 0, amount: 99, wantLevel: 1, wantExp: 99},
		{name: "exactly threshold", level: 1, exp: 0, amount: 100, wantLevel: 2, wantExp: 0, wantLeveled: true},
		{name: "250 from level 1", level: 1, exp: 0, amount: 250, wantLevel: 2, wantExp: 150, wantLeveled: true},
		{name: "multiple level ups", level: 1, exp: 0, amount: 600, wantLevel: 4, wantExp: 0, wantLeveled: true},
		{name: "carry existing exp", level: 3, exp: 250, amount: 60, wantLevel: 4, wantExp: 10, wantLeveled: true},
		{name: "zero amount", level: 5, exp: 20, amount: 0, wantLevel: 5, wantExp: 20},
	}

	c := NewCalculator(100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, exp, leveled := c.Apply(tt.level, tt.exp, tt.amount)
			if level != tt.wantLevel || exp != tt.wantExp || leveled != tt.wantLeveled {
				t.Errorf("Calculator.Apply() = (%d, %d, %v), want (%d, %d, %v)",
					level, exp, leveled, tt.wantLevel, tt.wantExp, tt.wantLeveled)
			}
		})
	}
}

func TestService_AddExperience(t *testing.T) {
	tests := []struct {
		name     string
		user     *game.User
		getErr   error
		amount   int64
		want     *Result
		wantUser *game.User
		wantErr  error
	}{
		{
			name:     "levels up once",
			user:     &game.User{ID: 7, Level: 1},
			amount:   250,
			want:     &Result{LeveledUp: true, Level: 2, Exp: 150, RequiredExp: 200, ExpGained: 250},
			wantUser: &game.User{ID: 7, Level: 2, Exp: 150},
		},
		{
			name:     "no level up",
			user:     &game.User{ID: 7, Level: 2, Exp: 10},
			amount:   40,
			want:     &Result{Level: 2, Exp: 50, RequiredExp: 200, ExpGained: 40},
			wantUser: &game.User{ID: 7, Level: 2, Exp: 50},
		},
		{
			name:    "unknown user",
			getErr:  game.NotFound("user", 7),
			amount:  40,
			wantErr: game.ErrNotFound,
		},
		{
			name:    "negative amount",
			amount:  -1,
			wantErr: game.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mock.NewMockLedger(gomock.NewController(t))
			mock.PassThroughAtomic(ledger)
			if tt.amount >= 0 {
				ledger.EXPECT().GetUser(gomock.Any(), int64(7)).Return(tt.user, tt.getErr)
			}
			if tt.wantUser != nil {
				ledger.EXPECT().UpdateUser(gomock.Any(), tt.wantUser).Return(nil)
			}

			s := NewService(ledger, game.DefaultConfig())
			got, err := s.AddExperience(context.Background(), 7, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Service.AddExperience() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Service.AddExperience() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}
