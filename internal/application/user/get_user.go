package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/errs"
	"github.com/lllypuk/userhub/internal/domain/user"
)

// GetUserUseCase fetches a user by ID
type GetUserUseCase struct {
	userRepo Repository
}

// NewGetUserUseCase creates a new GetUserUseCase
func NewGetUserUseCase(userRepo Repository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

// Execute runs the query
func (uc *GetUserUseCase) Execute(
	ctx context.Context,
	query GetUserQuery,
) (Result, error) {
	id, err := ValidateUserID(query.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	usr, err := uc.userRepo.FindByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrInvalidInput) {
			return Result{}, ErrUserNotFound
		}
		return Result{}, fmt.Errorf("%w: %w", appcore.ErrStoreFailure, err)
	}

	return Result{
		Result: appcore.Result[*user.User]{
			Value: usr,
		},
	}, nil
}
