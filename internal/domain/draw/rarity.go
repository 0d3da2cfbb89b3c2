package draw

import "github.com/tensuraworld/gachabot/internal/domain/game"

type tier struct {
	rarity     game.Rarity
	cumulative int
}

// Weights out of 100. Walk order comes from game.Rarities.
var weights = map[game.Rarity]int{
	game.RarityCommon:    50,
	game.RarityRare:      25,
	game.RarityEpic:      15,
	game.RarityLegendary: 8,
	game.RarityMythic:    2,
}

var table = buildTable()

func buildTable() []tier {
	t := make([]tier, 0, len(game.Rarities))
	total := 0
	for _, r := range game.Rarities {
		total += weights[r]
		t = append(t, tier{rarity: r, cumulative: total})
	}
	return t
}

// Weight returns the draw weight of r out of 100.
func Weight(r game.Rarity) int {
	return weights[r]
}

// RollRarity draws a uniform integer in [1,100] and returns the first tier
// whose cumulative weight reaches it.
func RollRarity(rng game.Rand) game.Rarity {
	return rarityFor(rng.IntN(100) + 1)
}

func rarityFor(roll int) game.Rarity {
	for _, t := range table {
		if roll <= t.cumulative {
			return t.rarity
		}
	}
	return table[0].rarity
}

// ChooseCharacters draws n characters from catalog. A tier with no
// characters falls back to the whole catalog. An empty catalog yields nil.
func ChooseCharacters(rng game.Rand, catalog []*game.Character, n int) []*game.Character {
	if len(catalog) == 0 || n <= 0 {
		return nil
	}

	byRarity := make(map[game.Rarity][]*game.Character, len(game.Rarities))
	for _, c := range catalog {
		byRarity[c.Rarity] = append(byRarity[c.Rarity], c)
	}

	chosen := make([]*game.Character, 0, n)
	for range n {
		pool := byRarity[RollRarity(rng)]
		if len(pool) == 0 {
			pool = catalog
		}
		chosen = append(chosen, pool[rng.IntN(len(pool))])
	}
	return chosen
}
