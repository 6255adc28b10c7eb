package user

import "errors"

var (
	// ErrUsernameTaken is returned when creating a user whose username already exists
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUserNotFound is returned when the target user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrInsertFailed is returned when the store rejects a new user for a reason
	// other than a duplicate username
	ErrInsertFailed = errors.New("failed to insert user")

	// ErrUpdateFailed is returned when a partial update did not reach any record
	ErrUpdateFailed = errors.New("failed to update user")
)
