package user_test

import (
	"context"
	"time"

	domainuser "github.com/lllypuk/userhub/internal/domain/user"
	"github.com/lllypuk/userhub/internal/infrastructure/repository/memory"
)

// faultyRepository wraps the in-memory store and injects errors per operation
type faultyRepository struct {
	*memory.UserRepository

	findByUsernameError error
	findByIDError       error
	insertError         error
	updateError         error
	listError           error
	updateResult        *domainuser.UpdateResult
}

func newFaultyRepository() *faultyRepository {
	return &faultyRepository{UserRepository: memory.NewUserRepository()}
}

func (f *faultyRepository) FindByUsername(ctx context.Context, username string) (*domainuser.User, error) {
	if f.findByUsernameError != nil {
		return nil, f.findByUsernameError
	}
	return f.UserRepository.FindByUsername(ctx, username)
}

func (f *faultyRepository) FindByID(ctx context.Context, id string) (*domainuser.User, error) {
	if f.findByIDError != nil {
		return nil, f.findByIDError
	}
	return f.UserRepository.FindByID(ctx, id)
}

func (f *faultyRepository) Insert(ctx context.Context, u *domainuser.User) error {
	if f.insertError != nil {
		return f.insertError
	}
	return f.UserRepository.Insert(ctx, u)
}

func (f *faultyRepository) UpdatePartial(
	ctx context.Context,
	id string,
	name, surname string,
	updatedAt time.Time,
) (domainuser.UpdateResult, error) {
	if f.updateError != nil {
		return domainuser.UpdateResult{}, f.updateError
	}
	if f.updateResult != nil {
		return *f.updateResult, nil
	}
	return f.UserRepository.UpdatePartial(ctx, id, name, surname, updatedAt)
}

func (f *faultyRepository) List(ctx context.Context) ([]*domainuser.User, error) {
	if f.listError != nil {
		return nil, f.listError
	}
	return f.UserRepository.List(ctx)
}
