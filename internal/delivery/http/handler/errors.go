package handler

import (
	"errors"

	"freelance-match/internal/delivery/http/middleware"
	"freelance-match/internal/pkg/response"
	"freelance-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	status, msg := statusFor(err)
	return middleware.NewAppError(status, msg, nil, err)
}

func mapPlainError(err error) error {
	status, msg := statusFor(err)
	return middleware.NewPlainError(status, msg, err)
}

func statusFor(err error) (int, string) {
	var rej *usecase.RejectedError
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &rej):
		if rej.Unreachable {
			return fiber.StatusBadGateway, rej.Message
		}
		return fiber.StatusBadRequest, rej.Message
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, verr.Message
	case errors.Is(err, usecase.ErrInvalidInput):
		return fiber.StatusBadRequest, "Bad request"
	case errors.Is(err, usecase.ErrUnauthorized):
		return fiber.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, usecase.ErrForbidden):
		return fiber.StatusForbidden, "Forbidden"
	default:
		return fiber.StatusInternalServerError, response.MessageInternalServerError
	}
}
