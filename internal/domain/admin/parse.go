package admin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tensuraworld/gachabot/internal/domain/game"
)

// ParseCharacter reads either "Name|Rarity|Faction|Power|Price" or one
// "key: value" pair per line with the keys name, rarity, faction, power and
// price.
func ParseCharacter(text string) (*game.Character, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: usage Name|Rarity|Faction|Power|Price", game.ErrInvalidInput)
	}

	var name, rarity, faction, power, price string
	if strings.Contains(text, "|") && !strings.Contains(text, "\n") {
		parts := splitTrim(text, "|")
		if len(parts) != 5 {
			return nil, fmt.Errorf("%w: usage Name|Rarity|Faction|Power|Price", game.ErrInvalidInput)
		}
		name, rarity, faction, power, price = parts[0], parts[1], parts[2], parts[3], parts[4]
	} else {
		fields := map[string]string{}
		for _, line := range strings.Split(text, "\n") {
			k, v, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			fields[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
		}
		for _, k := range []string{"name", "rarity", "faction", "power", "price"} {
			if _, ok := fields[k]; !ok {
				return nil, fmt.Errorf("%w: missing %q line", game.ErrInvalidInput, k)
			}
		}
		name, rarity, faction, power, price = fields["name"], fields["rarity"], fields["faction"], fields["power"], fields["price"]
	}

	p, err := parseInt("power", power)
	if err != nil {
		return nil, err
	}
	c, err := parseInt("price", price)
	if err != nil {
		return nil, err
	}

	character := &game.Character{
		Name:    name,
		Rarity:  game.Rarity(rarity),
		Faction: faction,
		Power:   p,
		Price:   c,
	}
	if err := Validate(character); err != nil {
		return nil, err
	}
	return character, nil
}

// ParseQuest reads "Name|Coins|Exp|Description". The description may itself
// contain pipes.
func ParseQuest(text string) (*game.Quest, error) {
	parts := strings.SplitN(strings.TrimSpace(text), "|", 4)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: usage Name|Coins|Exp|Description", game.ErrInvalidInput)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	coins, err := parseInt("coins", parts[1])
	if err != nil {
		return nil, err
	}
	exp, err := parseInt("exp", parts[2])
	if err != nil {
		return nil, err
	}

	return &game.Quest{
		Name:        parts[0],
		RewardCoins: coins,
		RewardExp:   exp,
		Description: parts[3],
	}, nil
}

func parseInt(field, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", game.ErrInvalidInput, field)
	}
	return v, nil
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
