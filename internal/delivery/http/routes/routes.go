package routes

import (
	"freelance-match/internal/delivery/http/handler"
	"freelance-match/internal/delivery/http/middleware"
	"freelance-match/internal/infrastructure/filestore"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Files       *handler.FileHandler
	Catalog     *handler.CatalogHandler
	Marketplace *handler.MarketplaceHandler
}

type Registry struct {
	handlers  Handlers
	auth      *middleware.AuthMiddleware
	uploadDir string
}

// NewRegistry wires handlers to paths. An empty uploadDir skips serving
// uploaded files, which is the case when uploads go to a remote backend.
func NewRegistry(h Handlers, auth *middleware.AuthMiddleware, uploadDir string) *Registry {
	return &Registry{handlers: h, auth: auth, uploadDir: uploadDir}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerUploads(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerUploads(app *fiber.App) {
	if r.uploadDir == "" {
		return
	}
	app.Get(filestore.PublicPrefix+"*", static.New(r.uploadDir))
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	if r.handlers.Auth != nil {
		r.handlers.Auth.RegisterRoutes(api.Group("/auth"), r.auth.PlainMiddleware())
	}
	if r.handlers.Files != nil {
		r.handlers.Files.RegisterRoutes(api.Group("/files"))
	}
	if r.handlers.Catalog != nil {
		r.handlers.Catalog.RegisterRoutes(api)
	}
	if r.handlers.Marketplace != nil {
		r.handlers.Marketplace.RegisterRoutes(api, r.auth.Middleware())
	}
}
