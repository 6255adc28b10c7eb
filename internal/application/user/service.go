package user

import (
	"context"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/user"
)

var (
	_ appcore.UseCase[CreateUserCommand, Result]       = (*CreateUserUseCase)(nil)
	_ appcore.UseCase[UpdateUserCommand, Result]       = (*UpdateUserUseCase)(nil)
	_ appcore.UseCase[GetUserQuery, Result]            = (*GetUserUseCase)(nil)
	_ appcore.UseCase[ListUsersQuery, UsersListResult] = (*ListUsersUseCase)(nil)

	_ appcore.Command = CreateUserCommand{}
	_ appcore.Command = UpdateUserCommand{}
	_ appcore.Query   = GetUserQuery{}
	_ appcore.Query   = ListUsersQuery{}
)

// Service groups the user use cases behind one handle for the transport layer
type Service struct {
	create *CreateUserUseCase
	update *UpdateUserUseCase
	get    *GetUserUseCase
	list   *ListUsersUseCase
}

// NewService creates a Service over repo
func NewService(repo Repository) *Service {
	return &Service{
		create: NewCreateUserUseCase(repo),
		update: NewUpdateUserUseCase(repo),
		get:    NewGetUserUseCase(repo),
		list:   NewListUsersUseCase(repo),
	}
}

// Create registers a new user from a raw payload
func (s *Service) Create(ctx context.Context, payload Payload) (*user.User, error) {
	res, err := s.create.Execute(ctx, CreateUserCommand{Payload: payload})
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// Update changes name and surname of the user named in the payload
func (s *Service) Update(ctx context.Context, payload Payload) (*user.User, error) {
	res, err := s.update.Execute(ctx, UpdateUserCommand{Payload: payload})
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// GetByID fetches one user
func (s *Service) GetByID(ctx context.Context, rawID string) (*user.User, error) {
	res, err := s.get.Execute(ctx, GetUserQuery{UserID: rawID})
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// ListAll returns every user
func (s *Service) ListAll(ctx context.Context) ([]*user.User, error) {
	res, err := s.list.Execute(ctx, ListUsersQuery{})
	if err != nil {
		return nil, err
	}
	return res.Users, nil
}
