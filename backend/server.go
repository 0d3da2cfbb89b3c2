package backend

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tensuraworld/gachabot/backend/handlers"
	"github.com/tensuraworld/gachabot/backend/middleware"
	"github.com/tensuraworld/gachabot/backend/utils"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

// Config controls the public read-only game API. An empty Addr disables it.
type Config struct {
	Addr         string        `toml:"addr" env:"API_ADDR"`
	AllowOrigins []string      `toml:"allow_origins"`
	RateLimit    int           `toml:"rate_limit"`
	RateWindow   game.Duration `toml:"rate_window"`
}

func (c Config) Enabled() bool {
	return c.Addr != ""
}

type Server struct {
	app  *fiber.App
	addr string
}

func New(cfg Config, webApp *handlers.WebApp) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Tensura Gacha API",
		ServerHeader:          "Tensura-API",
		ErrorHandler:          middleware.CustomErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(middleware.CORS(cfg.AllowOrigins))
	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateWindow.Std()))

	setupRoutes(app, webApp)
	return &Server{app: app, addr: cfg.Addr}
}

func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Tensura Gacha API",
			"version": webApp.Version,
			"status":  "running",
		})
	})

	api := app.Group("/api/v1")
	api.Get("/leaderboard", handlers.Leaderboard(webApp))
	api.Get("/characters", handlers.Catalog(webApp))
	api.Get("/characters/search", handlers.CatalogSearch(webApp))
	api.Get("/characters/:id", handlers.CharacterDetail(webApp))
	api.Get("/users/:id", handlers.UserProfile(webApp))
	api.Get("/users/:id/inventory", handlers.UserInventory(webApp))
	api.Get("/quests", handlers.QuestList(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "api"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()))
		return utils.SendNotFound(c, "route not found")
	})
}

// App exposes the fiber app for in-process requests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() {
	go func() {
		slog.Info("Starting API server", slog.String("type", "sys"), slog.String("addr", s.addr))
		if err := s.app.Listen(s.addr); err != nil {
			slog.Error("API server stopped", slog.String("type", "sys"), slog.Any("error", err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
