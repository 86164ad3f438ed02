//go:build unit

package user_test

import (
	"testing"

	"courtside/internal/domain/user"
	"courtside/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "test@example.com", actual.Email().Value())
		assert.Equal(t, user.RoleMember, actual.Role())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := builder.NewUserBuilder().WithEmail("not-an-email").BuildDomain()
		require.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := builder.NewUserBuilder().WithRole("superuser").BuildDomain()
		require.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "plain address", input: "a@example.com", want: "a@example.com"},
		{name: "surrounding whitespace is trimmed", input: "  a@example.com  ", want: "a@example.com"},
		{name: "plus addressing", input: "a+tag@example.com", want: "a+tag@example.com"},
		{name: "missing at sign", input: "example.com", errIs: user.ErrInvalidEmail},
		{name: "missing tld", input: "a@example", errIs: user.ErrInvalidEmail},
		{name: "empty", input: "", errIs: user.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := user.NewEmail(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, email.Value())
		})
	}
}

func TestNewPassword(t *testing.T) {
	t.Run("minimum length", func(t *testing.T) {
		_, err := user.NewPassword("1234567")
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)

		pass, err := user.NewPassword("12345678")
		require.NoError(t, err)
		assert.Equal(t, "12345678", pass.Value())
	})
}

func TestNewRole(t *testing.T) {
	for _, s := range []string{"member", "owner", "admin"} {
		role, err := user.NewRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := user.NewRole("viewer")
	require.ErrorIs(t, err, user.ErrInvalidRole)
}
