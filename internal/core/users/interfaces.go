package users

import (
	"context"
	"time"
)

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create inserts the user and fills in ID and DateJoined.
	// Returns ErrEmailTaken / ErrUsernameTaken on unique constraint violations.
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*User, error)
}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID int64, staff bool) (string, time.Time, error)
}

// UserService defines the interface for account business logic
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
}
