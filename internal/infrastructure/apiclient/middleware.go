package apiclient

import (
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// newRestyClient builds a resty client that logs every exchange at debug
// level. Bodies are never logged since they carry credentials and audio.
func newRestyClient(clientName string, log zerolog.Logger) *resty.Client {
	client := resty.New()
	client.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
		raw := r.Request.RawRequest
		if raw == nil {
			return nil
		}
		log.Debug().
			Str("request_id", r.Request.Header.Get(requestIDHeader)).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Str("method", raw.Method).
			Str("path", raw.URL.Path).
			Str("query", raw.URL.RawQuery).
			Int("resp_bytes", len(r.Body())).
			Dur("latency", r.Time()).
			Msg("HTTP client request")
		return nil
	})
	client.OnError(func(r *resty.Request, err error) {
		log.Debug().
			Err(err).
			Str("request_id", r.Header.Get(requestIDHeader)).
			Str("client", clientName).
			Str("method", r.Method).
			Str("url", r.URL).
			Msg("HTTP client request failed")
	})
	return client
}
