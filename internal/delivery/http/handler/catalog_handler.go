package handler

import (
	"freelance-match/internal/domain/catalog"
	"freelance-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/technologies", h.Technologies)
}

func (h *CatalogHandler) Technologies(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, catalog.Technologies())
}
