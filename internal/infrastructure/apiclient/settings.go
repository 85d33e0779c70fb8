package apiclient

import (
	"context"
	"net/http"

	"github.com/janhq/jan-translator/internal/domain/profile"
	"github.com/janhq/jan-translator/internal/domain/setting"
)

// UpsertSetting creates or replaces the value stored under key.
func (c *Client) UpsertSetting(ctx context.Context, key, value string) (setting.Setting, error) {
	var out setting.Setting
	body := setting.Setting{Key: key, Value: &value}
	err := c.doJSON(ctx, "upsert_setting", http.MethodPost, "/settings", nil, body, &out)
	return out, err
}

// GetSetting reads a setting. Unknown keys come back with a nil value.
func (c *Client) GetSetting(ctx context.Context, key string) (setting.Setting, error) {
	var out setting.Setting
	err := c.doJSON(ctx, "get_setting", http.MethodGet, "/settings/{key}", map[string]string{"key": key}, nil, &out)
	if err == nil && out.Key == "" {
		out.Key = key
	}
	return out, err
}

// GetProfile returns the user's profile, created empty on first access.
func (c *Client) GetProfile(ctx context.Context) (profile.Profile, error) {
	var out profile.Profile
	err := c.doJSON(ctx, "get_profile", http.MethodGet, "/profile", nil, nil, &out)
	return out, err
}

// UpdateProfile replaces the user's profile.
func (c *Client) UpdateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	var out profile.Profile
	p.ID = 0
	err := c.doJSON(ctx, "update_profile", http.MethodPost, "/profile", nil, p, &out)
	return out, err
}
