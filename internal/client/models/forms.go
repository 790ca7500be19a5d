package models

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// ValidationError is a client-side form rejection. It never reaches a
// backend call; callers should surface Message next to the named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// LoginForm carries the credentials entered on the login screen.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks the form fields and returns the first *ValidationError
// found, or nil.
func (f *LoginForm) Validate() error {
	if !emailRe.MatchString(f.Email) {
		return &ValidationError{Field: "email", Message: "invalid email"}
	}
	if f.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// RegisterForm carries the data entered on the registration screen.
// Profile is optional and attached to the new user as-is.
type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Profile         *UserProfile
}

// Validate checks the form fields and returns the first *ValidationError
// found, or nil.
func (f *RegisterForm) Validate() error {
	if utf8.RuneCountInString(f.Name) < 2 {
		return &ValidationError{Field: "name", Message: "name must have at least 2 characters"}
	}
	if !emailRe.MatchString(f.Email) {
		return &ValidationError{Field: "email", Message: "invalid email"}
	}
	if len(f.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must have at least 6 characters"}
	}
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
	}
	return nil
}
