package user

import (
	"fmt"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/domain/objectid"
)

// Schema limits.
const (
	MaxUsernameLength = 64
	MaxNameLength     = 100
)

// Input is a schema-approved user payload
type Input struct {
	Username string `json:"username" validate:"required,notblank,max=64,nospace"`
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Surname  string `json:"surname" validate:"required,notblank,max=100"`
}

var inputFields = []string{"username", "name", "surname"}

// ValidateInput checks raw against the user schema. It never returns a partial Input.
func ValidateInput(raw Payload) (Input, error) {
	if raw == nil {
		return Input{}, appcore.NewValidationError("body", "must be an object")
	}
	if err := appcore.RejectUnknownFields(raw, inputFields...); err != nil {
		return Input{}, err
	}

	var (
		in  Input
		err error
	)
	if in.Username, err = appcore.FieldString(raw, "username"); err != nil {
		return Input{}, err
	}
	if in.Name, err = appcore.FieldString(raw, "name"); err != nil {
		return Input{}, err
	}
	if in.Surname, err = appcore.FieldString(raw, "surname"); err != nil {
		return Input{}, err
	}

	if err = appcore.ValidateStruct(in); err != nil {
		return Input{}, err
	}
	return in, nil
}

// ValidateUserID checks that raw is a well-formed store identifier
func ValidateUserID(raw string) (objectid.ID, error) {
	id, err := appcore.ValidateObjectID("userId", raw)
	if err != nil {
		return "", fmt.Errorf("invalid user id: %w", err)
	}
	return id, nil
}
