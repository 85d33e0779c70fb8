package apiclient

import (
	"context"
	"net/http"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/auth"
)

// Login exchanges credentials for a bearer token. The request is
// form-url-encoded as the token endpoint expects.
func (c *Client) Login(ctx context.Context, username, password string) (auth.Token, error) {
	req := c.request(ctx).SetFormData(map[string]string{
		"username": username,
		"password": password,
	})
	resp, err := c.execute(ctx, "login", http.MethodPost, "/token", req)
	if err != nil {
		return auth.Token{}, err
	}
	var token auth.Token
	if err := decodeJSON(resp, &token); err != nil {
		return auth.Token{}, err
	}
	if token.AccessToken == "" {
		return auth.Token{}, apperr.New(apperr.KindAuth, "login response did not include an access token")
	}
	return token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, registration auth.Registration) (auth.User, error) {
	var user auth.User
	err := c.doJSON(ctx, "register", http.MethodPost, "/register", nil, registration, &user)
	return user, err
}

// CurrentUser fetches the account the bearer token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (auth.User, error) {
	var user auth.User
	err := c.doJSON(ctx, "current_user", http.MethodGet, "/users/me/", nil, nil, &user)
	return user, err
}

// ChangePassword rotates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, change auth.PasswordChange) (auth.User, error) {
	var user auth.User
	err := c.doJSON(ctx, "change_password", http.MethodPut, "/users/me/password", nil, change, &user)
	return user, err
}
