package hibp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

const (
	DefaultBaseURL   = "https://haveibeenpwned.com/api/v3"
	DefaultUserAgent = "pwncheck/1.0"

	apiKeyHeader = "hibp-api-key"
	tracerName   = "github.com/bryanwahyu/pwncheck/internal/infra/hibp"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config for the breachedaccount client.
type Config struct {
	BaseURL   string
	APIKey    string
	UserAgent string
}

// Client implements breach.Retriever against the HaveIBeenPwned v3 API.
type Client struct {
	cfg    Config
	http   HTTPDoer
	tracer trace.Tracer
}

var _ breach.Retriever = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.http = doer
	}
}

// NewClient builds a client. No timeout is set on the default transport:
// the lookup waits as long as the transport allows.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:    cfg,
		http:   http.DefaultClient,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup performs exactly one GET /breachedaccount/{account}. Status codes
// other than 200 and 404 come back as a breach.OutcomeError result, not as
// an error; errors are reserved for configuration and transport failures.
func (c *Client) Lookup(ctx context.Context, account string) (breach.Result, error) {
	if strings.TrimSpace(account) == "" {
		return breach.Result{}, breach.ErrEmptyAccount
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return breach.Result{}, &breach.ConfigurationError{Field: "hibp api key", Reason: "is not set"}
	}

	ctx, span := c.tracer.Start(ctx, "hibp.breachedaccount", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(account), nil)
	if err != nil {
		span.RecordError(err)
		return breach.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return breach.Result{}, fmt.Errorf("%w: failed to execute request: %w", breach.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return breach.Result{}, fmt.Errorf("%w: failed to read response body: %w", breach.ErrUpstreamUnavailable, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch resp.StatusCode {
	case http.StatusOK:
		var breaches []breach.Breach
		if err := json.Unmarshal(body, &breaches); err != nil {
			span.RecordError(err)
			return breach.Result{}, fmt.Errorf("%w: failed to parse response: %w", breach.ErrUpstreamUnavailable, err)
		}
		if len(breaches) == 0 {
			return breach.NotFound(), nil
		}
		span.SetAttributes(attribute.Int("hibp.breach_count", len(breaches)))
		return breach.Found(breaches), nil
	case http.StatusNotFound:
		return breach.NotFound(), nil
	default:
		span.SetStatus(codes.Error, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
		return breach.Failed(resp.StatusCode, string(body)), nil
	}
}

func (c *Client) endpoint(account string) string {
	return fmt.Sprintf("%s/breachedaccount/%s?truncateResponse=false", c.cfg.BaseURL, url.PathEscape(account))
}
