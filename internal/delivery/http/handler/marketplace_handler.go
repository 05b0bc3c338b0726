package handler

import (
	"strings"

	"freelance-match/internal/delivery/http/middleware"
	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/pkg/response"
	"freelance-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MarketplaceHandler struct {
	uc usecase.MarketplaceUsecase
}

type projectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Budget       float64  `json:"budget"`
	Technologies []string `json:"technologies"`
}

type profileRequest struct {
	Title        string   `json:"title"`
	Bio          string   `json:"bio"`
	Experience   int      `json:"experience"`
	HourlyRate   float64  `json:"hourlyRate"`
	Technologies []string `json:"technologies"`
	Availability string   `json:"availability"`
	Avatar       string   `json:"avatar"`
}

type createProjectResponse struct {
	Project       marketplace.Project        `json:"project"`
	Notifications []marketplace.Notification `json:"notifications"`
}

func NewMarketplaceHandler(uc usecase.MarketplaceUsecase) *MarketplaceHandler {
	return &MarketplaceHandler{uc: uc}
}

// RegisterRoutes mounts every route behind auth.
func (h *MarketplaceHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me", auth, h.Me)
	r.Get("/dashboard", auth, h.Dashboard)

	r.Get("/profile", auth, h.GetProfile)
	r.Put("/profile", auth, h.SaveProfile)
	r.Get("/freelancers", auth, h.Freelancers)

	r.Post("/projects", auth, h.CreateProject)
	r.Get("/projects", auth, h.Projects)
	r.Get("/projects/client/:clientId", auth, h.ClientProjects)
	r.Get("/matches", auth, h.Matches)

	r.Get("/notifications", auth, h.Notifications)
	r.Delete("/notifications/:id", auth, h.DismissNotification)
}

func (h *MarketplaceHandler) Me(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, usr)
}

func (h *MarketplaceHandler) Dashboard(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	d, err := h.uc.Dashboard(c.Context(), usr)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *MarketplaceHandler) GetProfile(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	p, ok, err := h.uc.Profile(c.Context(), usr.ID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if !ok {
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *MarketplaceHandler) SaveProfile(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.SaveProfile(c.Context(), usr, usecase.ProfileInput{
		Title:        req.Title,
		Bio:          req.Bio,
		Experience:   req.Experience,
		HourlyRate:   req.HourlyRate,
		Technologies: req.Technologies,
		Availability: req.Availability,
		Avatar:       req.Avatar,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile saved", p)
}

func (h *MarketplaceHandler) Freelancers(c fiber.Ctx) error {
	pool, err := h.uc.FreelancerPool(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, pool)
}

func (h *MarketplaceHandler) CreateProject(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.CreateProject(c.Context(), usr, usecase.ProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		Technologies: req.Technologies,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Project posted", createProjectResponse{
		Project:       res.Project,
		Notifications: res.Notifications,
	})
}

func (h *MarketplaceHandler) Projects(c fiber.Ctx) error {
	projects, err := h.uc.Projects(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, projects)
}

func (h *MarketplaceHandler) ClientProjects(c fiber.Ctx) error {
	clientID := strings.TrimSpace(c.Params("clientId"))
	if clientID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	projects, err := h.uc.ClientProjects(c.Context(), clientID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, projects)
}

func (h *MarketplaceHandler) Matches(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	matches, err := h.uc.MatchingProjects(c.Context(), usr.ID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matches)
}

func (h *MarketplaceHandler) Notifications(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Notifications(usr.ID))
}

func (h *MarketplaceHandler) DismissNotification(c fiber.Ctx) error {
	usr, err := currentUser(c)
	if err != nil {
		return err
	}

	if !h.uc.DismissNotification(usr.ID, c.Params("id")) {
		return middleware.NewAppError(fiber.StatusNotFound, "Notification not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "Notification dismissed", nil)
}

func currentUser(c fiber.Ctx) (marketplace.User, error) {
	usr, ok := middleware.CurrentUser(c)
	if !ok {
		return marketplace.User{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return usr, nil
}
