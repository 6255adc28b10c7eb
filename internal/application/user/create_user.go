package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/errs"
	"github.com/lllypuk/userhub/internal/domain/user"
)

// CreateUserUseCase creates a user with a unique username
type CreateUserUseCase struct {
	userRepo Repository
}

// NewCreateUserUseCase creates a new CreateUserUseCase
func NewCreateUserUseCase(userRepo Repository) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: userRepo}
}

// Execute validates the payload, checks username availability and persists the user
func (uc *CreateUserUseCase) Execute(
	ctx context.Context,
	cmd CreateUserCommand,
) (Result, error) {
	input, err := ValidateInput(cmd.Payload)
	if err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := uc.userRepo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil && existing != nil:
		return Result{}, ErrUsernameTaken
	case err != nil && !errors.Is(err, errs.ErrNotFound):
		return Result{}, fmt.Errorf("%w: %w", appcore.ErrStoreFailure, err)
	}

	usr, err := user.NewUser(input.Username, input.Name, input.Surname)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", appcore.ErrValidationFailed, err)
	}

	// the unique index wins a race between two creates of the same username
	if insertErr := uc.userRepo.Insert(ctx, usr); insertErr != nil {
		if errors.Is(insertErr, errs.ErrAlreadyExists) {
			return Result{}, ErrUsernameTaken
		}
		return Result{}, fmt.Errorf("%w: %w", ErrInsertFailed, insertErr)
	}

	return Result{
		Result: appcore.Result[*user.User]{
			Value: usr,
		},
	}, nil
}
