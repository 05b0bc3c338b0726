package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/infrastructure/authapi"
	applog "freelance-match/internal/logger"
	"freelance-match/internal/pkg/jwt"
	"freelance-match/internal/repository"
	ucauth "freelance-match/internal/usecase/auth"
)

const minPasswordLength = 6

// Authenticator is either the local auth service or the remote auth API.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (marketplace.User, error)
	Register(ctx context.Context, name, email, password string, userType marketplace.UserType) (marketplace.User, error)
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	UserType        string
}

type SessionResult struct {
	User        marketplace.User
	AccessToken string
}

type SessionUsecase interface {
	Login(ctx context.Context, email, password string) (SessionResult, error)
	Register(ctx context.Context, in RegisterInput) (SessionResult, error)
	Logout(ctx context.Context, userID string) error
	Me(ctx context.Context, userID string) (marketplace.User, error)
}

type inboxClearer interface {
	Clear(userID string)
}

type Session struct {
	auth   Authenticator
	repo   repository.MarketplaceRepository
	jwt    jwt.Service
	inbox  inboxClearer
	logger *zap.Logger
}

func NewSessionUsecase(auth Authenticator, repo repository.MarketplaceRepository, jwtSvc jwt.Service, inbox inboxClearer, logger *zap.Logger) *Session {
	logger = applog.OrNop(logger)
	return &Session{auth: auth, repo: repo, jwt: jwtSvc, inbox: inbox, logger: logger}
}

func (u *Session) Login(ctx context.Context, email, password string) (SessionResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return SessionResult{}, invalid("Email and password are required")
	}

	usr, err := u.auth.Login(ctx, email, password)
	if err != nil {
		return SessionResult{}, authFailure(err, authapi.MessageLoginFailed)
	}
	return u.establish(ctx, usr)
}

func (u *Session) Register(ctx context.Context, in RegisterInput) (SessionResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	switch {
	case name == "":
		return SessionResult{}, invalid("Name is required")
	case email == "":
		return SessionResult{}, invalid("Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return SessionResult{}, invalid("Invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return SessionResult{}, invalid("Password must be at least 6 characters")
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		return SessionResult{}, invalid("Passwords do not match")
	}
	userType, ok := marketplace.ParseUserType(in.UserType)
	if !ok {
		return SessionResult{}, invalid("User type must be CLIENT or FREELANCER")
	}

	usr, err := u.auth.Register(ctx, name, email, in.Password, userType)
	if err != nil {
		return SessionResult{}, authFailure(err, authapi.MessageRegistrationFailed)
	}
	return u.establish(ctx, usr)
}

// Logout drops the cached identity and the in-process inbox. Tokens stay
// valid until expiry but no longer resolve to a session.
func (u *Session) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if err := u.repo.DeleteSession(ctx, userID); err != nil {
		u.logger.Error("delete session", zap.String("user_id", userID), zap.Error(err))
		return ErrInternal
	}
	if u.inbox != nil {
		u.inbox.Clear(userID)
	}
	return nil
}

func (u *Session) Me(ctx context.Context, userID string) (marketplace.User, error) {
	if userID == "" {
		return marketplace.User{}, ErrUnauthorized
	}
	usr, err := u.repo.LoadSession(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return marketplace.User{}, ErrUnauthorized
		}
		u.logger.Error("load session", zap.String("user_id", userID), zap.Error(err))
		return marketplace.User{}, ErrInternal
	}
	return usr, nil
}

func (u *Session) establish(ctx context.Context, usr marketplace.User) (SessionResult, error) {
	if usr.ID == "" {
		return SessionResult{}, ErrInternal
	}

	token, err := u.jwt.GenerateAccessToken(jwt.Identity{
		UserID:   usr.ID,
		Name:     usr.Name,
		Email:    usr.Email,
		UserType: string(usr.UserType),
	})
	if err != nil {
		return SessionResult{}, ErrInternal
	}

	if err := u.repo.SaveSession(ctx, usr); err != nil {
		u.logger.Error("save session", zap.String("user_id", usr.ID), zap.Error(err))
		return SessionResult{}, ErrInternal
	}
	if err := u.repo.UpsertUser(ctx, usr); err != nil {
		u.logger.Error("upsert user", zap.String("user_id", usr.ID), zap.Error(err))
		if derr := u.repo.DeleteSession(ctx, usr.ID); derr != nil {
			u.logger.Warn("drop session after failed upsert", zap.String("user_id", usr.ID), zap.Error(derr))
		}
		return SessionResult{}, ErrInternal
	}

	return SessionResult{User: usr, AccessToken: token}, nil
}

// authFailure turns an Authenticator error into a *RejectedError carrying the
// message users see. Unknown errors become ErrInternal.
func authFailure(err error, fallback string) error {
	var apiErr *authapi.APIError
	switch {
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return &RejectedError{Message: msg, Cause: err}
	case errors.Is(err, authapi.ErrUnreachable):
		return &RejectedError{Message: authapi.MessageUnreachable, Unreachable: true, Cause: err}
	case errors.Is(err, ucauth.ErrEmailExists):
		return &RejectedError{Message: "Email already exists", Cause: err}
	case errors.Is(err, ucauth.ErrUserNotFound):
		return &RejectedError{Message: "User not found", Cause: err}
	case errors.Is(err, ucauth.ErrInvalidPassword):
		return &RejectedError{Message: "Invalid password", Cause: err}
	case errors.Is(err, ucauth.ErrInvalidInput):
		return &RejectedError{Message: fallback, Cause: err}
	default:
		return ErrInternal
	}
}
