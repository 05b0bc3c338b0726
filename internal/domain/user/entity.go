package user

import (
	"time"

	"freelance-match/internal/domain/marketplace"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	UserType     marketplace.UserType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity drops credentials and timestamps.
func (u User) Identity() marketplace.User {
	return marketplace.User{ID: u.ID, Name: u.Name, Email: u.Email, UserType: u.UserType}
}
