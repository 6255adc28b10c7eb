package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/application/user"
	"github.com/lllypuk/userhub/internal/domain/objectid"
)

func TestGetUserUseCase_Success(t *testing.T) {
	repo := newFaultyRepository()
	alice := seedAlice(t, repo)
	uc := user.NewGetUserUseCase(repo)

	result, err := uc.Execute(context.Background(), user.GetUserQuery{UserID: alice.ID().String()})

	require.NoError(t, err)
	assert.Equal(t, alice.ID(), result.Value.ID())
	assert.Equal(t, "alice", result.Value.Username())
}

func TestGetUserUseCase_NotFound(t *testing.T) {
	repo := newFaultyRepository()
	seedAlice(t, repo)
	uc := user.NewGetUserUseCase(repo)

	_, err := uc.Execute(context.Background(), user.GetUserQuery{UserID: objectid.New().String()})

	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestGetUserUseCase_MalformedID(t *testing.T) {
	uc := user.NewGetUserUseCase(newFaultyRepository())

	_, err := uc.Execute(context.Background(), user.GetUserQuery{UserID: "12345"})

	require.ErrorIs(t, err, appcore.ErrValidationFailed)
	require.ErrorIs(t, err, appcore.ErrInvalidID)
}

func TestGetUserUseCase_StoreError(t *testing.T) {
	repo := newFaultyRepository()
	repo.findByIDError = errors.New("socket closed")
	uc := user.NewGetUserUseCase(repo)

	_, err := uc.Execute(context.Background(), user.GetUserQuery{UserID: objectid.New().String()})

	require.ErrorIs(t, err, appcore.ErrStoreFailure)
}
