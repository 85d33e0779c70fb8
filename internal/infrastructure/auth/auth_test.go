package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-translator/internal/config"
	domain "github.com/janhq/jan-translator/internal/domain/auth"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(&config.Config{SandboxJWTSecret: "secret", SandboxTokenTTL: time.Minute}, zerolog.Nop())
	require.NoError(t, err)
	return v
}

func TestIssueAndSubject(t *testing.T) {
	v := newValidator(t)
	token, err := v.Issue("alice")
	require.NoError(t, err)

	subject, err := v.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestSubjectRejectsExpiredAndForeignTokens(t *testing.T) {
	v := newValidator(t)
	token, err := v.Issue("alice")
	require.NoError(t, err)

	v.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = v.Subject(token)
	assert.Error(t, err)

	other, err := NewValidator(&config.Config{SandboxJWTSecret: "other"}, zerolog.Nop())
	require.NoError(t, err)
	foreign, err := other.Issue("alice")
	require.NoError(t, err)
	_, err = newValidator(t).Subject(foreign)
	assert.Error(t, err)
}

func TestEphemeralSecret(t *testing.T) {
	v, err := NewValidator(&config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, v.secret, 64)
	assert.Equal(t, 30*time.Minute, v.ttl)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken(""))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := newValidator(t)
	resolve := func(_ context.Context, username string) (domain.User, error) {
		if username != "alice" {
			return domain.User{}, errors.New("unknown")
		}
		return domain.User{ID: 7, Username: username}, nil
	}

	engine := gin.New()
	engine.GET("/me", v.Middleware(resolve), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, user)
	})

	aliceToken, err := v.Issue("alice")
	require.NoError(t, err)
	bobToken, err := v.Issue("bob")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + aliceToken, http.StatusOK, `"username":"alice"`},
		{"missing", "", http.StatusUnauthorized, "Not authenticated"},
		{"garbage", "Bearer nope", http.StatusUnauthorized, "Could not validate credentials"},
		{"unknown user", "Bearer " + bobToken, http.StatusUnauthorized, "Could not validate credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}
