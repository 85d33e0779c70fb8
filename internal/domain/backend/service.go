// Package backend implements the translation backend served by the sandbox
// command. It is a functional stand-in for the hosted service: accounts,
// settings, conversations and the library behave the same, while the
// model calls go through a pluggable Engine.
package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/janhq/jan-translator/internal/domain/auth"
	"github.com/janhq/jan-translator/internal/domain/profile"
	"github.com/janhq/jan-translator/internal/domain/setting"
	"github.com/janhq/jan-translator/internal/utils/redact"
)

// TokenIssuer signs access tokens for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Service owns the backend business rules.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	engine Engine
	log    zerolog.Logger
	redact *redact.Redactor
	now    func() time.Time
}

// NewService wires the backend service. A nil engine falls back to EchoEngine.
func NewService(repo Repository, tokens TokenIssuer, engine Engine, log zerolog.Logger) *Service {
	if engine == nil {
		engine = EchoEngine{}
	}
	return &Service{
		repo:   repo,
		tokens: tokens,
		engine: engine,
		log:    log.With().Str("component", "sandbox-service").Logger(),
		redact: redact.New(redact.LevelHashed, ""),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// logger prefers the request-scoped logger the transport attaches to ctx,
// so service lines carry the request id.
func (s *Service) logger(ctx context.Context) *zerolog.Logger {
	reqLog := zerolog.Ctx(ctx)
	if reqLog.GetLevel() == zerolog.Disabled {
		return &s.log
	}
	l := reqLog.With().Str("component", "sandbox-service").Logger()
	return &l
}

// Redactor returns the redactor applied to logged user content.
func (s *Service) Redactor() *redact.Redactor {
	return s.redact
}

// WithRedactor replaces the redactor applied to logged user content.
func (s *Service) WithRedactor(r *redact.Redactor) *Service {
	s.redact = r
	return s
}

// Register creates an account. Username and email must be unused.
func (s *Service) Register(ctx context.Context, reg auth.Registration) (auth.User, error) {
	username := strings.TrimSpace(reg.Username)
	if username == "" || reg.Password == "" {
		return auth.User{}, badRequest("Username and password are required")
	}
	if _, taken := s.repo.AccountByUsername(ctx, username); taken {
		return auth.User{}, conflict("Username already registered")
	}
	var email *string
	if reg.Email != nil && strings.TrimSpace(*reg.Email) != "" {
		trimmed := strings.TrimSpace(*reg.Email)
		if _, taken := s.repo.AccountByEmail(ctx, trimmed); taken {
			return auth.User{}, conflict("Email already registered")
		}
		email = &trimmed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.User{}, err
	}
	now := s.now()
	account, err := s.repo.CreateAccount(ctx, Account{
		User: auth.User{
			Username:  username,
			Email:     email,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	})
	if err != nil {
		return auth.User{}, err
	}
	s.logger(ctx).Info().Str("username", username).Int64("user_id", account.User.ID).Msg("account registered")
	return account.User, nil
}

// Authenticate checks the credentials and issues a bearer token.
func (s *Service) Authenticate(ctx context.Context, username, password string) (auth.Token, error) {
	account, ok := s.repo.AccountByUsername(ctx, strings.TrimSpace(username))
	if !ok || bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return auth.Token{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(account.User.Username)
	if err != nil {
		return auth.Token{}, err
	}
	return auth.Token{AccessToken: token, TokenType: "bearer"}, nil
}

// UserByUsername resolves the subject of a validated token.
func (s *Service) UserByUsername(ctx context.Context, username string) (auth.User, error) {
	account, ok := s.repo.AccountByUsername(ctx, username)
	if !ok || !account.User.IsActive {
		return auth.User{}, ErrUnauthenticated
	}
	return account.User, nil
}

// ChangePassword rotates the password after checking the old one.
func (s *Service) ChangePassword(ctx context.Context, user auth.User, change auth.PasswordChange) (auth.User, error) {
	account, ok := s.repo.AccountByUsername(ctx, user.Username)
	if !ok {
		return auth.User{}, ErrUnauthenticated
	}
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(change.OldPassword)) != nil {
		return auth.User{}, badRequest("Incorrect old password")
	}
	if change.NewPassword == "" {
		return auth.User{}, badRequest("New password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(change.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return auth.User{}, err
	}
	account.PasswordHash = hash
	account.User.UpdatedAt = s.now()
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return auth.User{}, err
	}
	return account.User, nil
}

// UpsertSetting stores a user-global setting.
func (s *Service) UpsertSetting(ctx context.Context, owner int64, key string, value *string) (setting.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return setting.Setting{}, badRequest("Setting key is required")
	}
	s.repo.PutSetting(ctx, owner, key, value)

	logged := "<unset>"
	if value != nil {
		logged = s.redact.Text(*value)
		if key == setting.KeyOpenAIAPIKey {
			logged = s.redact.Secret(*value)
		}
	}
	s.logger(ctx).Debug().Int64("user_id", owner).Str("key", key).Str("value", logged).Msg("setting stored")
	return setting.Setting{Key: key, Value: value}, nil
}

// GetSetting reads a setting. Unset keys have a nil value.
func (s *Service) GetSetting(ctx context.Context, owner int64, key string) setting.Setting {
	value, _ := s.repo.Setting(ctx, owner, key)
	return setting.Setting{Key: key, Value: value}
}

func (s *Service) settingOr(ctx context.Context, owner int64, key, fallback string) string {
	return s.GetSetting(ctx, owner, key).ValueOr(fallback)
}

func (s *Service) requireAPIKey(ctx context.Context, owner int64) error {
	if s.settingOr(ctx, owner, setting.KeyOpenAIAPIKey, "") == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// GetProfile returns the profile, creating an empty one on first access.
func (s *Service) GetProfile(ctx context.Context, owner int64) profile.Profile {
	if p, ok := s.repo.Profile(ctx, owner); ok {
		return p
	}
	return s.repo.PutProfile(ctx, owner, profile.Profile{})
}

// UpdateProfile replaces the profile.
func (s *Service) UpdateProfile(ctx context.Context, owner int64, p profile.Profile) profile.Profile {
	return s.repo.PutProfile(ctx, owner, p)
}

// StatusOf maps err onto an HTTP status and a client facing detail.
func StatusOf(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, e.Detail
	}
	return http.StatusInternalServerError, "Internal server error"
}
