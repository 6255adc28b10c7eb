// Package memory provides in-process stores used in mock mode and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lllypuk/userhub/internal/domain/errs"
	"github.com/lllypuk/userhub/internal/domain/objectid"
	"github.com/lllypuk/userhub/internal/domain/user"
)

// UserRepository keeps users in memory in insertion order
type UserRepository struct {
	mu         sync.RWMutex
	order      []objectid.ID
	byID       map[objectid.ID]*user.User
	byUsername map[string]objectid.ID
}

// NewUserRepository creates an empty UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[objectid.ID]*user.User),
		byUsername: make(map[string]objectid.ID),
	}
}

// FindByUsername finds a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

// FindByID finds a user by hex ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[oid]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return clone(u), nil
}

// Insert stores a new user; the username behaves like a unique index
func (r *UserRepository) Insert(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u == nil {
		return errs.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[u.Username()]; taken {
		return errs.ErrAlreadyExists
	}
	if _, taken := r.byID[u.ID()]; taken {
		return errs.ErrAlreadyExists
	}

	r.byID[u.ID()] = clone(u)
	r.byUsername[u.Username()] = u.ID()
	r.order = append(r.order, u.ID())
	return nil
}

// UpdatePartial sets name and surname on the user with the given ID
func (r *UserRepository) UpdatePartial(
	ctx context.Context,
	id string,
	name, surname string,
	updatedAt time.Time,
) (user.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return user.UpdateResult{}, err
	}

	oid, err := objectid.Parse(id)
	if err != nil {
		return user.UpdateResult{}, errs.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[oid]
	if !ok {
		return user.UpdateResult{}, nil
	}

	res := user.UpdateResult{Matched: 1}
	if current.Name() != name || current.Surname() != surname {
		res.Modified = 1
	}
	r.byID[oid] = user.Reconstruct(
		current.ID(),
		current.Username(),
		name,
		surname,
		current.CreatedAt(),
		updatedAt,
	)
	return res, nil
}

// List returns every user in insertion order
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*user.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, clone(r.byID[id]))
	}
	return users, nil
}

// Count returns the number of stored users
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func clone(u *user.User) *user.User {
	return user.Reconstruct(u.ID(), u.Username(), u.Name(), u.Surname(), u.CreatedAt(), u.UpdatedAt())
}
