package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/janhq/jan-translator/internal/domain/apperr"
)

// Health is the status the backend reports on its root path.
type Health struct {
	URL     string `json:"url" yaml:"url"`
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Health queries the backend root, outside the API prefix.
func (c *Client) Health(ctx context.Context) (Health, error) {
	resp, err := c.execute(ctx, "health", http.MethodGet, c.root+"/", c.request(ctx))
	if err != nil {
		return Health{URL: c.root}, err
	}
	body := resp.Body()
	status := gjson.GetBytes(body, "status")
	if !status.Exists() {
		return Health{URL: c.root}, apperr.New(apperr.KindTransport, "unexpected response from the translation service")
	}
	return Health{
		URL:     c.root,
		Status:  status.String(),
		Message: gjson.GetBytes(body, "message").String(),
	}, nil
}

// WaitHealthy polls Health every interval until it succeeds or timeout
// elapses.
func (c *Client) WaitHealthy(ctx context.Context, timeout, interval time.Duration) (Health, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		health, err := c.Health(ctx)
		if err == nil {
			return health, nil
		}
		select {
		case <-ctx.Done():
			return health, fmt.Errorf("backend not healthy after %v: %w", timeout, err)
		case <-ticker.C:
		}
	}
}
