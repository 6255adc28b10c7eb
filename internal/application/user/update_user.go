package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/errs"
	"github.com/lllypuk/userhub/internal/domain/user"
)

// UpdateUserUseCase changes name and surname of an existing user
type UpdateUserUseCase struct {
	userRepo Repository
}

// NewUpdateUserUseCase creates a new UpdateUserUseCase
func NewUpdateUserUseCase(userRepo Repository) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo}
}

// Execute performs the partial update. The payload username selects the
// target and is never changed.
func (uc *UpdateUserUseCase) Execute(
	ctx context.Context,
	cmd UpdateUserCommand,
) (Result, error) {
	input, err := ValidateInput(cmd.Payload)
	if err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	usr, err := uc.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Result{}, ErrUserNotFound
		}
		return Result{}, fmt.Errorf("%w: %w", appcore.ErrStoreFailure, err)
	}

	if renameErr := usr.Rename(input.Name, input.Surname); renameErr != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUpdateFailed, renameErr)
	}

	// the store writes the entity's own timestamp so the returned user matches the record
	res, err := uc.userRepo.UpdatePartial(ctx, usr.ID().String(), usr.Name(), usr.Surname(), usr.UpdatedAt())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	if res.Matched == 0 {
		return Result{}, ErrUpdateFailed
	}

	return Result{
		Result: appcore.Result[*user.User]{
			Value: usr,
		},
	}, nil
}
