package user

import (
	"context"
	"fmt"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/user"
)

// ListUsersUseCase returns every user
type ListUsersUseCase struct {
	userRepo Repository
}

// NewListUsersUseCase creates a new ListUsersUseCase
func NewListUsersUseCase(userRepo Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute runs the query
func (uc *ListUsersUseCase) Execute(
	ctx context.Context,
	_ ListUsersQuery,
) (UsersListResult, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return UsersListResult{}, fmt.Errorf("%w: %w", appcore.ErrStoreFailure, err)
	}
	if users == nil {
		users = []*user.User{}
	}

	return UsersListResult{Users: users}, nil
}
