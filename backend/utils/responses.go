package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tensuraworld/gachabot/backend/models"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusOK, models.NewSuccessResponse(data, message))
}

// SendError sends an error JSON response
func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(code, message, details))
}

func SendBadRequest(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}

func SendServiceUnavailable(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", message, nil)
}

// SendPaginated sends a paginated JSON response
func SendPaginated(c *fiber.Ctx, data interface{}, pagination *models.PaginationInfo, message string) error {
	return SendJSON(c, http.StatusOK, models.NewPaginatedResponse(data, pagination, message))
}

// SendDomainError maps an engine error onto an HTTP status. Storage faults
// are logged and hidden from the client.
func SendDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return SendNotFound(c, err.Error())
	case errors.Is(err, game.ErrInvalidInput):
		return SendBadRequest(c, err.Error(), nil)
	case errors.Is(err, game.ErrStorageUnavailable):
		slog.Error("API storage failure",
			slog.String("type", "db"),
			slog.String("path", c.Path()),
			slog.Any("error", err))
		return SendServiceUnavailable(c, "Storage is temporarily unavailable")
	default:
		slog.Error("API request failed",
			slog.String("type", "error"),
			slog.String("path", c.Path()),
			slog.Any("error", err))
		return SendInternalServerError(c, "Something went wrong")
	}
}

// ParseID reads a positive integer path parameter.
func ParseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParsePage reads 1-based page and limit query values, clamping limit to
// [1, maxLimit].
func ParsePage(c *fiber.Ctx, defaultLimit, maxLimit int) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// PageBounds returns the slice bounds of page within n items.
func PageBounds(n, page, limit int) (start, end int) {
	start = (page - 1) * limit
	if start > n {
		start = n
	}
	end = start + limit
	if end > n {
		end = n
	}
	return start, end
}

// GetIPAddress extracts the client IP address
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}

// GetUserAgent extracts the user agent
func GetUserAgent(c *fiber.Ctx) string {
	return c.Get("User-Agent")
}
