// Package apiclient wraps every endpoint of the translation backend as a typed call.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/infrastructure/metrics"
)

const (
	apiPrefix       = "/api/v1"
	requestIDHeader = "X-Request-Id"
	tracerName      = "github.com/janhq/jan-translator/apiclient"
)

// Config captures the knobs of the API client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client is the uniform REST client for the translation backend.
// It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	root   string
	log    zerolog.Logger
	tracer trace.Tracer

	mu    sync.RWMutex
	token string
}

// New wires a resty client against cfg.BaseURL.
func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "jan-translator/1.0"
	}

	root := strings.TrimRight(cfg.BaseURL, "/")
	clientLog := log.With().Str("component", "api-client").Logger()
	httpClient := newRestyClient("translator-backend", clientLog).
		SetBaseURL(root+apiPrefix).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		root:   root,
		log:    clientLog,
		tracer: otel.Tracer(tracerName),
	}
}

// SetAuthToken sets the bearer token attached to subsequent calls.
// An empty token removes the Authorization header.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// AuthToken returns the bearer token currently attached to calls.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString())
	if token := c.AuthToken(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// execute runs req and maps failures onto apperr kinds. operation names the
// call for logs, spans and metrics.
func (c *Client) execute(ctx context.Context, operation, method, path string, req *resty.Request) (*resty.Response, error) {
	ctx, span := c.tracer.Start(ctx, "apiclient."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", apiPrefix+path),
		),
	)
	defer span.End()
	req.SetContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		metrics.RecordClientCall(operation, 0, time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		c.log.Warn().Err(err).Str("operation", operation).Msg("backend call failed")
		return nil, apperr.Wrap(apperr.KindTransport, "network error: could not reach the translation service", err)
	}

	metrics.RecordClientCall(operation, resp.StatusCode(), time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if resp.IsError() {
		apiErr := decodeError(resp)
		span.SetStatus(codes.Error, apiErr.Error())
		c.log.Debug().
			Str("operation", operation).
			Int("status", resp.StatusCode()).
			Str("detail", apiErr.Message).
			Msg("backend returned error")
		return resp, apiErr
	}
	return resp, nil
}

func decodeJSON(resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return apperr.Wrap(apperr.KindTransport, "unexpected response from the translation service", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// doJSON issues a call with an optional JSON body and decodes a JSON result.
func (c *Client) doJSON(ctx context.Context, operation, method, path string, pathParams map[string]string, body, out any) error {
	req := c.request(ctx)
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := c.execute(ctx, operation, method, path, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeJSON(resp, out)
}

func idParam(name string, id int64) map[string]string {
	return map[string]string{name: strconv.FormatInt(id, 10)}
}
