// Package airborne is a typed client for the Airborne release management API.
//
// Every operation takes a context, sends the tenancy headers the endpoint
// expects (x-organisation, x-application) and maps non-2xx responses onto the
// typed errors in errors.go.
package airborne

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/oapi-codegen/runtime"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Tenancy header names.
const (
	HeaderOrganisation = "x-organisation"
	HeaderApplication  = "x-application"
	HeaderDimension    = "x-dimension"
	HeaderChecksum     = "x-checksum"
)

const defaultUserAgent = "airborne-cli"

// scope selects which tenancy headers a request carries.
type scope int

const (
	scopeNone scope = iota
	scopeOrganisation
	scopeApplication
)

// Client talks to one Airborne server.
type Client struct {
	baseURL      string
	http         *retryablehttp.Client
	modifiers    []Modifier
	organisation string
	application  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http.HTTPClient = hc
		}
	}
}

// WithToken authenticates every request with a static bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.modifiers = append(c.modifiers, NewBearerAuthorizer(StaticToken(token)))
		}
	}
}

// WithTokenSource authenticates every request with tokens from src.
func WithTokenSource(src oauth2.TokenSource) Option {
	return func(c *Client) {
		if src != nil {
			c.modifiers = append(c.modifiers, NewBearerAuthorizer(src))
		}
	}
}

// WithOrganisation sets the default x-organisation header.
func WithOrganisation(org string) Option {
	return func(c *Client) { c.organisation = org }
}

// WithApplication sets the default x-application header.
func WithApplication(app string) Option {
	return func(c *Client) { c.application = app }
}

// WithRetryMax sets how many times a failed idempotent request is retried.
func WithRetryMax(n int) Option {
	return func(c *Client) { c.http.RetryMax = n }
}

// WithRetryWait bounds the backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = minWait
		c.http.RetryWaitMax = maxWait
	}
}

// WithModifiers appends request modifiers.
func WithModifiers(m ...Modifier) Option {
	return func(c *Client) { c.modifiers = append(c.modifiers, m...) }
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("airborne: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("airborne: invalid base url %q: %w", baseURL, err)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = retryLogger{}
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      rc,
		modifiers: []Modifier{userAgentModifier(defaultUserAgent)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Organisation returns the default organisation.
func (c *Client) Organisation() string { return c.organisation }

// Application returns the default application.
func (c *Client) Application() string { return c.application }

// Tenant holds per-call overrides of the client's default tenancy.
type Tenant struct {
	Organisation string `json:"-"`
	Application  string `json:"-"`
}

// request is one API call before it is turned into an *http.Request.
type request struct {
	method string
	path   string
	query  url.Values
	header http.Header
	scope  scope
	tenant Tenant

	body    any
	raw     io.Reader
	rawSize int64
}

func newRequest(method, path string, sc scope, tenant Tenant) *request {
	return &request{
		method: method,
		path:   path,
		query:  url.Values{},
		header: http.Header{},
		scope:  sc,
		tenant: tenant,
	}
}

// setQuery adds a query parameter styled the way generated clients do
// (form, exploded). Zero values are skipped by the caller.
func (r *request) setQuery(name string, value any) error {
	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return fmt.Errorf("airborne: query parameter %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return fmt.Errorf("airborne: query parameter %s: %w", name, err)
	}
	for k, vs := range parsed {
		for _, v := range vs {
			r.query.Add(k, v)
		}
	}
	return nil
}

// pathParam escapes a single path segment.
func pathParam(name, value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("airborne: path parameter %s is required", name)
	}
	return runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
}

// build renders the request into an *http.Request with all modifiers applied.
func (c *Client) build(ctx context.Context, r *request) (*http.Request, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	switch {
	case r.raw != nil && r.rawSize == 0:
		body = http.NoBody
	case r.raw != nil:
		body = r.raw
	case r.body != nil:
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("airborne: encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("airborne: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.raw != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
		// the upload endpoint rejects chunked bodies
		req.ContentLength = r.rawSize
	} else if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	org, app := c.organisation, c.application
	if r.tenant.Organisation != "" {
		org = r.tenant.Organisation
	}
	if r.tenant.Application != "" {
		app = r.tenant.Application
	}
	if r.scope >= scopeOrganisation {
		if org == "" {
			return nil, fmt.Errorf("airborne: organisation is required for %s %s", r.method, r.path)
		}
		req.Header.Set(HeaderOrganisation, org)
	}
	if r.scope >= scopeApplication {
		if app == "" {
			return nil, fmt.Errorf("airborne: application is required for %s %s", r.method, r.path)
		}
		req.Header.Set(HeaderApplication, app)
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	for _, m := range c.modifiers {
		if err := m.Modify(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// do sends r and decodes a 2xx JSON body into out (when out is non-nil).
// Streamed bodies and non-idempotent methods are sent once; everything else
// goes through the retrying client.
func (c *Client) do(ctx context.Context, r *request, out any) error {
	req, err := c.build(ctx, r)
	if err != nil {
		return err
	}

	start := time.Now()
	var resp *http.Response
	if r.raw != nil || !idempotent(r.method) {
		resp, err = c.http.HTTPClient.Do(req)
	} else {
		var rreq *retryablehttp.Request
		rreq, err = retryablehttp.FromRequest(req)
		if err != nil {
			return fmt.Errorf("airborne: build request: %w", err)
		}
		resp, err = c.http.Do(rreq)
	}
	if err != nil {
		return fmt.Errorf("airborne: %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("airborne: read response: %w", err)
	}

	log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("airborne request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("airborne: decode %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

// checkRetry retries connection failures and 429/5xx for idempotent methods.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.Request != nil && !idempotent(resp.Request.Method) {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// retryLogger routes retryablehttp logs to zerolog.
type retryLogger struct{}

func (retryLogger) Error(msg string, kv ...interface{}) { log.Error().Fields(kv).Msg(msg) }
func (retryLogger) Info(msg string, kv ...interface{})  { log.Debug().Fields(kv).Msg(msg) }
func (retryLogger) Debug(msg string, kv ...interface{}) { log.Debug().Fields(kv).Msg(msg) }
func (retryLogger) Warn(msg string, kv ...interface{})  { log.Warn().Fields(kv).Msg(msg) }
