package user

// GetUserQuery - fetch a user by raw identifier
type GetUserQuery struct {
	UserID string
}

func (q GetUserQuery) QueryName() string { return "GetUser" }

// ListUsersQuery - every user, unpaginated
type ListUsersQuery struct{}

func (q ListUsersQuery) QueryName() string { return "ListUsers" }
