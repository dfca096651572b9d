package domain

import "context"

// User represents a registered user of the application.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// UserRepository defines persistence operations for users.
// Create assigns the ID and returns ErrDuplicateEmail when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}
