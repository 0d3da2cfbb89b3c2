package catalog

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

// searchItems implements fuzzy.Source over character names.
type searchItems []*game.Character

func (items searchItems) Len() int {
	return len(items)
}

func (items searchItems) String(i int) string {
	return strings.ToLower(items[i].Name)
}

type Service struct {
	ledger game.Ledger
}

func NewService(ledger game.Ledger) *Service {
	return &Service{ledger: ledger}
}

func (s *Service) Get(ctx context.Context, id int64) (*game.Character, error) {
	return s.ledger.GetCharacter(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*game.Character, error) {
	return s.ledger.ListCharacters(ctx)
}

func (s *Service) ByRarity(ctx context.Context, rarity game.Rarity) ([]*game.Character, error) {
	return s.ledger.ListCharactersByRarity(ctx, rarity)
}

// Search returns up to limit characters whose names match query, best
// match first. An exact name match always ranks first.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*game.Character, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	characters, err := s.ledger.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	return Match(characters, query, limit), nil
}

func Match(characters []*game.Character, query string, limit int) []*game.Character {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(characters) == 0 {
		return nil
	}

	var results []*game.Character
	exact := make(map[int64]bool)
	for _, c := range characters {
		if strings.ToLower(c.Name) == query {
			results = append(results, c)
			exact[c.ID] = true
		}
	}

	for _, m := range fuzzy.FindFrom(query, searchItems(characters)) {
		c := characters[m.Index]
		if !exact[c.ID] {
			results = append(results, c)
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
