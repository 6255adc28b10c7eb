package user

import (
	"context"
	"time"

	"github.com/lllypuk/userhub/internal/domain/user"
)

// CommandRepository defines the write side of the user store.
// Declared on the consumer side (application layer).
type CommandRepository interface {
	// Insert persists a new user; a duplicate username surfaces as errs.ErrAlreadyExists
	Insert(ctx context.Context, u *user.User) error

	// UpdatePartial sets name, surname and updatedAt on the user with the given ID
	UpdatePartial(ctx context.Context, id string, name, surname string, updatedAt time.Time) (user.UpdateResult, error)
}

// QueryRepository defines the read side of the user store
type QueryRepository interface {
	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*user.User, error)

	// FindByID finds a user by hex ID
	FindByID(ctx context.Context, id string) (*user.User, error)

	// List returns every user
	List(ctx context.Context) ([]*user.User, error)
}

// Repository combines Command and Query interfaces
type Repository interface {
	CommandRepository
	QueryRepository
}
