package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      LoginForm
		wantField string
	}{
		{"valid", LoginForm{Email: "ana@x.com", Password: "secret1"}, ""},
		{"invalid email", LoginForm{Email: "not-an-email", Password: "secret1"}, "email"},
		{"empty email", LoginForm{Email: "", Password: "secret1"}, "email"},
		{"empty password", LoginForm{Email: "ana@x.com", Password: ""}, "password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}
}

func TestRegisterForm_Validate(t *testing.T) {
	valid := RegisterForm{
		Name:            "Ana",
		Email:           "ana@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}

	tests := []struct {
		name      string
		mutate    func(f *RegisterForm)
		wantField string
	}{
		{"valid", func(f *RegisterForm) {}, ""},
		{"short name", func(f *RegisterForm) { f.Name = "A" }, "name"},
		{"invalid email", func(f *RegisterForm) { f.Email = "ana" }, "email"},
		{"short password", func(f *RegisterForm) { f.Password = "12345"; f.ConfirmPassword = "12345" }, "password"},
		{"password mismatch", func(f *RegisterForm) { f.ConfirmPassword = "other1" }, "confirmPassword"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			err := f.Validate()
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}
}

func TestValidationError_ErrorIncludesField(t *testing.T) {
	err := error(&ValidationError{Field: "email", Message: "invalid email"})
	assert.Equal(t, "email: invalid email", err.Error())

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}
