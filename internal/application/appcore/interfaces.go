package appcore

import "context"

// UseCase is the base interface for all use cases.
// TCommand is the input, TResult the output.
type UseCase[TCommand any, TResult any] interface {
	// Execute runs the use case with the given command
	Execute(ctx context.Context, cmd TCommand) (TResult, error)
}

// Command marks state-changing inputs
type Command interface {
	CommandName() string
}

// Query marks read-only inputs
type Query interface {
	QueryName() string
}

// Result is the base result structure. Failures travel as the returned error.
type Result[T any] struct {
	Value T
}
