package app

import (
	"context"
	"fmt"
	"strings"

	"freelance-match/internal/config"
	"freelance-match/internal/delivery/http/handler"
	"freelance-match/internal/delivery/http/middleware"
	"freelance-match/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// bodySlack covers multipart framing around an avatar of UPLOAD_MAX_BYTES.
const bodySlack = 64 << 10

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: cfg.Upload.MaxBytes + bodySlack,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	checks := make(map[string]handler.HealthCheck)
	for name, check := range c.HealthChecks() {
		checks[name] = check
	}

	reg := routes.NewRegistry(routes.Handlers{
		Health:      handler.NewHealthHandler(checks),
		Auth:        handler.NewAuthHandler(c.Session),
		Files:       handler.NewFileHandler(c.Avatars),
		Catalog:     handler.NewCatalogHandler(),
		Marketplace: handler.NewMarketplaceHandler(c.Marketplace),
	}, middleware.NewAuthMiddleware(c.JWT, c.Session), c.UploadDir)
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
