package user

import (
	"time"

	"github.com/lllypuk/userhub/internal/domain/errs"
	"github.com/lllypuk/userhub/internal/domain/objectid"
)

// User represents a user record
type User struct {
	id        objectid.ID
	username  string // immutable after creation
	name      string
	surname   string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with a freshly generated identifier
func NewUser(username, name, surname string) (*User, error) {
	if username == "" {
		return nil, errs.ErrInvalidInput
	}
	if name == "" || surname == "" {
		return nil, errs.ErrInvalidInput
	}

	now := timestamp()
	return &User{
		id:        objectid.New(),
		username:  username,
		name:      name,
		surname:   surname,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct restores a user from storage
func Reconstruct(
	id objectid.ID,
	username, name, surname string,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:        id,
		username:  username,
		name:      name,
		surname:   surname,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters

// ID returns the user identifier
func (u *User) ID() objectid.ID {
	return u.id
}

// Username returns the unique username
func (u *User) Username() string {
	return u.username
}

// Name returns the first name
func (u *User) Name() string {
	return u.name
}

// Surname returns the last name
func (u *User) Surname() string {
	return u.surname
}

// CreatedAt returns creation time
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the time of the last update
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Rename sets name and surname. Username and ID are never touched.
func (u *User) Rename(name, surname string) error {
	if name == "" || surname == "" {
		return errs.ErrInvalidInput
	}

	u.name = name
	u.surname = surname
	u.updatedAt = timestamp()
	return nil
}

// timestamp is truncated to the millisecond precision of BSON dates so a
// stored record reads back equal to the in-memory one.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
