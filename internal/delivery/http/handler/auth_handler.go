package handler

import (
	"freelance-match/internal/delivery/http/middleware"
	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/pkg/response"
	"freelance-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// AuthHandler serves /api/auth with bare JSON bodies: the user object on
// success and {"error": "..."} on failure.
type AuthHandler struct {
	uc usecase.SessionUsecase
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	UserType        string `json:"userType"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	marketplace.User
	AccessToken string `json:"accessToken"`
}

func NewAuthHandler(uc usecase.SessionUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", auth, h.Logout)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewPlainError(fiber.StatusBadRequest, "Bad request", err)
	}

	res, err := h.uc.Register(c.Context(), usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		UserType:        req.UserType,
	})
	if err != nil {
		return mapPlainError(err)
	}
	return response.Plain(c, fiber.StatusOK, sessionResponse{User: res.User, AccessToken: res.AccessToken})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewPlainError(fiber.StatusBadRequest, "Bad request", err)
	}

	res, err := h.uc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapPlainError(err)
	}
	return response.Plain(c, fiber.StatusOK, sessionResponse{User: res.User, AccessToken: res.AccessToken})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewPlainError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	if err := h.uc.Logout(c.Context(), usr.ID); err != nil {
		return mapPlainError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
