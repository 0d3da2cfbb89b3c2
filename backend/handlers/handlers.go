package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tensuraworld/gachabot/backend/models"
	"github.com/tensuraworld/gachabot/backend/utils"
	"github.com/tensuraworld/gachabot/internal/domain/catalog"
	"github.com/tensuraworld/gachabot/internal/domain/game"
	"github.com/tensuraworld/gachabot/internal/domain/inventory"
	"github.com/tensuraworld/gachabot/internal/domain/players"
	"github.com/tensuraworld/gachabot/internal/domain/quests"
)

const (
	requestTimeout   = 5 * time.Second
	defaultPageLimit = 25
	maxPageLimit     = 100
	maxSearchResults = 10
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// WebApp holds what the read-only API serves from.
type WebApp struct {
	DB        Pinger
	Store     game.Store
	Players   *players.Service
	Catalog   *catalog.Service
	Inventory *inventory.Service
	Quests    *quests.Service
	Version   string
	Commit    string
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c)
		defer cancel()

		if webApp.DB != nil {
			if err := webApp.DB.Ping(ctx); err != nil {
				return utils.SendServiceUnavailable(c, "database unreachable")
			}
		}
		return utils.SendSuccess(c, fiber.Map{
			"status":  "healthy",
			"version": webApp.Version,
			"commit":  webApp.Commit,
		}, "Health check successful")
	}
}

func Leaderboard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c)
		defer cancel()

		users, err := webApp.Players.Leaderboard(ctx)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, models.NewLeaderboard(users), "")
	}
}

// Catalog lists characters, optionally filtered by ?rarity=, one page at a
// time.
func Catalog(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c)
		defer cancel()

		var (
			characters []*game.Character
			err        error
		)
		if r := c.Query("rarity"); r != "" {
			rarity, perr := game.ParseRarity(r)
			if perr != nil {
				return utils.SendDomainError(c, perr)
			}
			characters, err = webApp.Catalog.ByRarity(ctx, rarity)
		} else {
			characters, err = webApp.Catalog.List(ctx)
		}
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		page, limit := utils.ParsePage(c, defaultPageLimit, maxPageLimit)
		start, end := utils.PageBounds(len(characters), page, limit)
		return utils.SendPaginated(c,
			models.NewCharacterViews(characters[start:end]),
			models.NewPaginationInfo(page, limit, int64(len(characters))), "")
	}
}

func CatalogSearch(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			return utils.SendBadRequest(c, "query parameter q is required", nil)
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		matches, err := webApp.Catalog.Search(ctx, query, maxSearchResults)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, models.NewCharacterViews(matches), "")
	}
}

func CharacterDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := utils.ParseID(c, "id")
		if !ok {
			return utils.SendBadRequest(c, "invalid character id", nil)
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		character, err := webApp.Catalog.Get(ctx, id)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, models.NewCharacterView(character), "")
	}
}

// UserProfile only serves users who already played. The lookup never
// registers anyone.
func UserProfile(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := utils.ParseID(c, "id")
		if !ok {
			return utils.SendBadRequest(c, "invalid user id", nil)
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := webApp.Store.GetUser(ctx, id); err != nil {
			return utils.SendDomainError(c, err)
		}
		profile, err := webApp.Players.Profile(ctx, id)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, models.NewProfileView(profile), "")
	}
}

func UserInventory(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := utils.ParseID(c, "id")
		if !ok {
			return utils.SendBadRequest(c, "invalid user id", nil)
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := webApp.Store.GetUser(ctx, id); err != nil {
			return utils.SendDomainError(c, err)
		}
		items, err := webApp.Inventory.List(ctx, id)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		page, limit := utils.ParsePage(c, webApp.Inventory.PageSize(), maxPageLimit)
		start, end := utils.PageBounds(len(items), page, limit)
		return utils.SendPaginated(c,
			models.NewInventoryViews(items[start:end]),
			models.NewPaginationInfo(page, limit, int64(len(items))), "")
	}
}

// QuestList serves every quest. With ?user= each entry also says whether
// that user claimed it.
func QuestList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := requestContext(c)
		defer cancel()

		var userID int64
		withClaims := false
		if raw := c.Query("user"); raw != "" {
			id, err := parseUserQuery(raw)
			if err != nil {
				return utils.SendBadRequest(c, "invalid user id", nil)
			}
			userID, withClaims = id, true
		}

		statuses, err := webApp.Quests.List(ctx, userID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, models.NewQuestViews(statuses, withClaims), "")
	}
}

func parseUserQuery(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: user must be a positive id", game.ErrInvalidInput)
	}
	return id, nil
}
