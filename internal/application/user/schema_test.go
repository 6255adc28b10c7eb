package user_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/application/user"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		payload user.Payload
		want    user.Input
		wantErr error
	}{
		{
			name:    "valid",
			payload: user.Payload{"username": "alice", "name": "Alice", "surname": "Smith"},
			want:    user.Input{Username: "alice", Name: "Alice", Surname: "Smith"},
		},
		{
			name:    "values are kept as sent",
			payload: user.Payload{"username": "bob", "name": " Bob ", "surname": "van  Dyke "},
			want:    user.Input{Username: "bob", Name: " Bob ", Surname: "van  Dyke "},
		},
		{
			name:    "padded username",
			payload: user.Payload{"username": " alice", "name": "Alice", "surname": "Smith"},
			wantErr: appcore.ErrValidationFailed,
		},
		{
			name:    "nil payload",
			payload: nil,
			wantErr: appcore.ErrValidationFailed,
		},
		{
			name:    "missing surname",
			payload: user.Payload{"username": "alice", "name": "Alice"},
			wantErr: appcore.ErrValidationFailed,
		},
		{
			name:    "blank name",
			payload: user.Payload{"username": "alice", "name": "   ", "surname": "Smith"},
			wantErr: appcore.ErrValidationFailed,
		},
		{
			name:    "blank surname",
			payload: user.Payload{"username": "alice", "name": "Alice", "surname": "\t \n"},
			wantErr: appcore.ErrValidationFailed,
		},
		{
			name:    "non-string username",
			payload: user.Payload{"username": 42.0, "name": "Alice", "surname": "Smith"},
			wantErr: appcore.ErrInvalidFormat,
		},
		{
			name:    "null username",
			payload: user.Payload{"username": nil, "name": "Alice", "surname": "Smith"},
			wantErr: appcore.ErrValidationFailed,
		},
		{
			name:    "unknown key",
			payload: user.Payload{"username": "alice", "name": "Alice", "surname": "Smith", "role": "admin"},
			wantErr: appcore.ErrUnknownField,
		},
		{
			name:    "username with whitespace",
			payload: user.Payload{"username": "ali ce", "name": "Alice", "surname": "Smith"},
			wantErr: appcore.ErrValidationFailed,
		},
		{
			name: "username too long",
			payload: user.Payload{
				"username": strings.Repeat("a", user.MaxUsernameLength+1),
				"name":     "Alice",
				"surname":  "Smith",
			},
			wantErr: appcore.ErrValidationFailed,
		},
		{
			name: "surname too long",
			payload: user.Payload{
				"username": "alice",
				"name":     "Alice",
				"surname":  strings.Repeat("s", user.MaxNameLength+1),
			},
			wantErr: appcore.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := user.ValidateInput(tt.payload)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, user.Input{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateInput_ReportsField(t *testing.T) {
	_, err := user.ValidateInput(user.Payload{"username": "alice", "name": "Alice"})

	var vErr *appcore.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "surname", vErr.Field)
	assert.Equal(t, "is required", vErr.Message)
}

func TestValidateInput_BlankReportedAsRequired(t *testing.T) {
	_, err := user.ValidateInput(user.Payload{"username": "alice", "name": "  ", "surname": "Smith"})

	var vErr *appcore.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
	assert.Equal(t, "is required", vErr.Message)
}

func TestValidateUserID(t *testing.T) {
	id, err := user.ValidateUserID("507F1F77BCF86CD799439011")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id.String())

	for _, bad := range []string{"", "abc", "507f1f77bcf86cd79943901z", "507f1f77bcf86cd7994390111"} {
		_, err = user.ValidateUserID(bad)
		require.ErrorIs(t, err, appcore.ErrValidationFailed, bad)
	}
}
