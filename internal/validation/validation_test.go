package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pressroom/internal/errors"
)

type registerForm struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100,password"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN EDITOR VIEWER"`
}

func TestValidate_Register(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		form      registerForm
		wantField string
	}{
		{
			name: "valid input",
			form: registerForm{Name: "Jordan", Email: "jordan@example.com", Password: "Abc123"},
		},
		{
			name:      "password without uppercase",
			form:      registerForm{Name: "Jordan", Email: "jordan@example.com", Password: "abc123"},
			wantField: "password",
		},
		{
			name:      "password without digit",
			form:      registerForm{Name: "Jordan", Email: "jordan@example.com", Password: "Abcdef"},
			wantField: "password",
		},
		{
			name:      "password too short",
			form:      registerForm{Name: "Jordan", Email: "jordan@example.com", Password: "Ab1"},
			wantField: "password",
		},
		{
			name:      "invalid email",
			form:      registerForm{Name: "Jordan", Email: "not-an-email", Password: "Abc123"},
			wantField: "email",
		},
		{
			name:      "name too short",
			form:      registerForm{Name: "J", Email: "jordan@example.com", Password: "Abc123"},
			wantField: "name",
		},
		{
			name:      "unknown role",
			form:      registerForm{Name: "Jordan", Email: "jordan@example.com", Password: "Abc123", Role: "OWNER"},
			wantField: "role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.form)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *apperrors.ValidationError
			require.True(t, errors.As(err, &ve), "expected a validation error, got %v", err)
			require.NotEmpty(t, ve.Fields)
			assert.Equal(t, tt.wantField, ve.Fields[0].Field)
			assert.NotEmpty(t, ve.Fields[0].Message)
		})
	}
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	v := New()
	err := v.Validate(&registerForm{Name: "J", Email: "bad", Password: "short"})

	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 3)
}
