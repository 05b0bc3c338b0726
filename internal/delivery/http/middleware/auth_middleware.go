package middleware

import (
	"context"
	"errors"
	"strings"

	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/pkg/jwt"
	"freelance-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxUserKey = "user"

type sessionResolver interface {
	Me(ctx context.Context, userID string) (marketplace.User, error)
}

// AuthMiddleware accepts a bearer token only while the session it names is
// still cached, so logout takes effect before the token expires.
type AuthMiddleware struct {
	jwt      jwt.Service
	sessions sessionResolver
}

func NewAuthMiddleware(jwtSvc jwt.Service, sessions sessionResolver) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, sessions: sessions}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return m.handler(false)
}

// PlainMiddleware reports failures as {"error": "..."}.
func (m *AuthMiddleware) PlainMiddleware() fiber.Handler {
	return m.handler(true)
}

func (m *AuthMiddleware) handler(plain bool) fiber.Handler {
	fail := func(status int, msg string, cause error) error {
		if plain {
			return NewPlainError(status, msg, cause)
		}
		return NewAppError(status, msg, nil, cause)
	}

	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fail(fiber.StatusUnauthorized, "Unauthorized", nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return fail(fiber.StatusUnauthorized, "Token expired", err)
			}
			return fail(fiber.StatusUnauthorized, "Invalid token", err)
		}

		usr, err := m.sessions.Me(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthorized) {
				return fail(fiber.StatusUnauthorized, "Session ended", err)
			}
			return fail(fiber.StatusInternalServerError, "", err)
		}

		c.Locals(CtxUserKey, usr)
		return c.Next()
	}
}

// CurrentUser returns the identity stored by AuthMiddleware.
func CurrentUser(c fiber.Ctx) (marketplace.User, bool) {
	usr, ok := c.Locals(CtxUserKey).(marketplace.User)
	return usr, ok && usr.ID != ""
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
