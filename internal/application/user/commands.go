package user

// Payload is an untyped, object-shaped request body
type Payload map[string]any

// CreateUserCommand - create a user from a raw payload
type CreateUserCommand struct {
	Payload Payload
}

func (c CreateUserCommand) CommandName() string { return "CreateUser" }

// UpdateUserCommand - update name and surname of the user identified by the
// payload's username
type UpdateUserCommand struct {
	Payload Payload
}

func (c UpdateUserCommand) CommandName() string { return "UpdateUser" }
