package user

import (
	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/user"
)

// Result - result of an operation on a single user
type Result struct {
	appcore.Result[*user.User]
}

// UsersListResult - result of listing users
type UsersListResult struct {
	Users []*user.User
}
