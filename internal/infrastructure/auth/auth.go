// Package auth signs and validates the sandbox backend's bearer tokens.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/config"
	domain "github.com/janhq/jan-translator/internal/domain/auth"
)

const userContextKey = "auth_user"

// UserResolver loads the account named by a token subject.
type UserResolver func(ctx context.Context, username string) (domain.User, error)

// Validator issues HS256 tokens and enforces them on protected routes.
type Validator struct {
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

// NewValidator uses the configured secret, or a random one that lives as
// long as the process when none is set.
func NewValidator(cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	secret := []byte(strings.TrimSpace(cfg.SandboxJWTSecret))
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		secret = []byte(hex.EncodeToString(buf))
		log.Debug().Msg("SANDBOX_JWT_SECRET not set, using an ephemeral signing key")
	}
	ttl := cfg.SandboxTokenTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Validator{secret: secret, ttl: ttl, log: log, now: time.Now}, nil
}

// Issue signs a token whose subject is username.
func (v *Validator) Issue(username string) (string, error) {
	now := v.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Subject validates tokenString and returns its subject.
func (v *Validator) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// resolved user on the gin context.
func (v *Validator) Middleware(resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}
		subject, err := v.Subject(tokenString)
		if err != nil {
			v.log.Debug().Err(err).Msg("rejected bearer token")
			abortUnauthorized(c, "Could not validate credentials")
			return
		}
		user, err := resolve(c.Request.Context(), subject)
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by Middleware.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": message,
	})
}
