package catalog

import (
	"context"
	"testing"

	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/game/mock"
	"go.uber.org/mock/gomock"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantIDs []int64
	}{
		{name: "exact name", query: "Benimaru", wantIDs: []int64{3}},
		{name: "prefix", query: "rimu", wantIDs: []int64{1}},
		{name: "scattered letters", query: "mlmnv", wantIDs: []int64{2}},
		{name: "no match", query: "veldora", wantIDs: nil},
		{name: "blank", query: "   ", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(mock.Catalog, tt.query, 1)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Match(%q) returned %d results, want %d", tt.query, len(got), len(tt.wantIDs))
			}
			for i, c := range got {
				if c.ID != tt.wantIDs[i] {
					t.Errorf("Match(%q)[%d] = %d, want %d", tt.query, i, c.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestMatch_ExactFirst(t *testing.T) {
	characters := []*game.Character{
		{ID: 1, Name: "Shion the Secretary"},
		{ID: 2, Name: "Shion"},
	}

	got := Match(characters, "shion", 0)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("Match() = %v, want exact match 2 before 1", got)
	}
}

func TestService_Search(t *testing.T) {
	ledger := mock.NewMockLedger(gomock.NewController(t))
	ledger.EXPECT().ListCharacters(gomock.Any()).Return(mock.Catalog, nil)

	got, err := NewService(ledger).Search(context.Background(), "gob", 5)
	if err != nil {
		t.Fatalf("Service.Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Service.Search() returned %d results, want 2", len(got))
	}
	for _, c := range got {
		if c.ID != 4 && c.ID != 5 {
			t.Errorf("Service.Search() returned %q", c.Name)
		}
	}
}
