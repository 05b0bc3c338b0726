package handler

import (
	"freelance-match/internal/delivery/http/middleware"
	"freelance-match/internal/pkg/response"
	"freelance-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type FileHandler struct {
	uc usecase.AvatarUsecase
}

func NewFileHandler(uc usecase.AvatarUsecase) *FileHandler {
	return &FileHandler{uc: uc}
}

func (h *FileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/avatar", h.UploadAvatar)
}

// UploadAvatar reads the multipart "file" field and answers {"url": "..."}.
func (h *FileHandler) UploadAvatar(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh.Size == 0 {
		return middleware.NewPlainError(fiber.StatusBadRequest, "File is empty", err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewPlainError(fiber.StatusInternalServerError, "", err)
	}
	defer f.Close()

	url, err := h.uc.Upload(c.Context(), fh.Filename, fh.Header.Get(fiber.HeaderContentType), f)
	if err != nil {
		return mapPlainError(err)
	}
	return response.Plain(c, fiber.StatusOK, fiber.Map{"url": url})
}
