package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"freelance-match/internal/domain/marketplace"
	"freelance-match/internal/domain/user"
)

var (
	ErrEmailExists     = errors.New("email already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
)

// Service registers and verifies users against a local user repository.
type Service struct {
	users user.Repository
	cost  int
	newID func() string
}

func NewService(users user.Repository, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{users: users, cost: cost, newID: uuid.NewString}
}

func (s *Service) Register(ctx context.Context, name, email, password string, userType marketplace.UserType) (marketplace.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || password == "" {
		return marketplace.User{}, ErrInvalidInput
	}
	if userType != marketplace.UserTypeClient && userType != marketplace.UserTypeFreelancer {
		return marketplace.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return marketplace.User{}, ErrInternal
	}
	if exists {
		return marketplace.User{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return marketplace.User{}, ErrInternal
	}

	u := user.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		UserType:     userType,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return marketplace.User{}, ErrEmailExists
		}
		return marketplace.User{}, ErrInternal
	}

	return u.Identity(), nil
}

func (s *Service) Login(ctx context.Context, email, password string) (marketplace.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return marketplace.User{}, ErrUserNotFound
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return marketplace.User{}, ErrUserNotFound
		}
		return marketplace.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return marketplace.User{}, ErrInvalidPassword
	}

	return u.Identity(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
