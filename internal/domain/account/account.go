// Package account holds the login, registration and password change forms.
package account

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/auth"
	"github.com/janhq/jan-translator/internal/domain/validation"
)

// API is the part of the backend client the account forms call.
type API interface {
	Register(ctx context.Context, registration auth.Registration) (auth.User, error)
	ChangePassword(ctx context.Context, change auth.PasswordChange) (auth.User, error)
}

// Authenticator is the session the login form signs into.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (auth.User, error)
	Require() error
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Username string `validate:"nonblank" label:"username"`
	Password string `validate:"required" label:"password"`
}

// RegisterForm is the sign-up form. Email is optional.
type RegisterForm struct {
	Username        string `validate:"nonblank" label:"username"`
	Email           string `validate:"omitempty,email" label:"email"`
	Password        string `validate:"required" label:"password"`
	ConfirmPassword string `validate:"eqfield=Password" label:"password confirmation"`
}

// PasswordForm changes the password of the signed-in user.
type PasswordForm struct {
	OldPassword     string `validate:"required" label:"current password"`
	ConfirmPassword string `validate:"eqfield=NewPassword" label:"password confirmation"`
	NewPassword     string `validate:"min=6" label:"new password"`
}

// Service submits the account forms.
type Service struct {
	api     API
	session Authenticator
	log     zerolog.Logger
}

// NewService wires the account forms to the backend and session.
func NewService(api API, session Authenticator, log zerolog.Logger) *Service {
	return &Service{
		api:     api,
		session: session,
		log:     log.With().Str("component", "account").Logger(),
	}
}

// Login signs in and returns the current user.
func (s *Service) Login(ctx context.Context, form LoginForm) (auth.User, error) {
	if err := validation.Struct(form); err != nil {
		return auth.User{}, err
	}
	return s.session.Login(ctx, strings.TrimSpace(form.Username), form.Password)
}

// Register creates an account. It does not sign in.
func (s *Service) Register(ctx context.Context, form RegisterForm) (auth.User, error) {
	if err := validation.Struct(form); err != nil {
		return auth.User{}, err
	}
	registration := auth.Registration{
		Username: strings.TrimSpace(form.Username),
		Password: form.Password,
	}
	if email := strings.TrimSpace(form.Email); email != "" {
		registration.Email = &email
	}
	user, err := s.api.Register(ctx, registration)
	if err != nil {
		return auth.User{}, err
	}
	s.log.Info().Str("username", user.Username).Msg("account registered")
	return user, nil
}

// ChangePassword replaces the password of the signed-in user.
func (s *Service) ChangePassword(ctx context.Context, form PasswordForm) error {
	if err := s.session.Require(); err != nil {
		return err
	}
	if err := validation.Struct(form); err != nil {
		return err
	}
	_, err := s.api.ChangePassword(ctx, auth.PasswordChange{
		OldPassword: form.OldPassword,
		NewPassword: form.NewPassword,
	})
	return err
}
