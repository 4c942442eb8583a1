package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config locates the remote catalog API. BaseURL and APIPath come from the
// environment; Timeout 0 means requests are bounded only by their context.
type Config struct {
	BaseURL string
	APIPath string
	Timeout time.Duration
}

// Client talks to the remote catalog API. It holds no credential of its own:
// every authenticated call takes the caller's *Session.
type Client struct {
	baseURL string
	apiPath string
	hc      *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend: base URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("backend: base URL: %w", err)
	}
	path := strings.Trim(strings.TrimSpace(cfg.APIPath), "/")
	if path == "" {
		return nil, errors.New("backend: API path is required")
	}
	return &Client{
		baseURL: base,
		apiPath: path,
		hc:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.hc = hc
	return c
}

func (c *Client) SignIn(ctx context.Context, in Credentials) (SignInResult, error) {
	var out signInResponse
	if err := c.do(ctx, http.MethodPost, "/admin/signin", nil, in, &out); err != nil {
		return SignInResult{}, err
	}
	if out.Token == "" {
		return SignInResult{}, &TransportError{Method: http.MethodPost, Path: "/admin/signin", Err: errors.New("response carries no token")}
	}
	return SignInResult{Token: out.Token, Expires: out.Expired.Time()}, nil
}

// CheckSession asks the backend whether the bearer value is still valid.
func (c *Client) CheckSession(ctx context.Context, sess *Session) error {
	return c.do(ctx, http.MethodPost, "/api/user/check", sess, nil, nil)
}

func (c *Client) ListProducts(ctx context.Context, sess *Session) ([]ProductRecord, error) {
	var out listResponse
	path := c.adminPath("/products")
	if err := c.do(ctx, http.MethodGet, path, sess, nil, &out); err != nil {
		return nil, err
	}
	recs, err := decodeProducts(out.Products)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: path, Err: err}
	}
	return recs, nil
}

func (c *Client) CreateProduct(ctx context.Context, sess *Session, p ProductPayload) error {
	return c.do(ctx, http.MethodPost, c.adminPath("/product"), sess, productEnvelope{Data: p}, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, sess *Session, id string, p ProductPayload) error {
	return c.do(ctx, http.MethodPut, c.adminPath("/product/"+url.PathEscape(id)), sess, productEnvelope{Data: p}, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, sess *Session, id string) error {
	return c.do(ctx, http.MethodDelete, c.adminPath("/product/"+url.PathEscape(id)), sess, nil, nil)
}

func (c *Client) adminPath(suffix string) string {
	return "/api/" + c.apiPath + "/admin" + suffix
}

func (c *Client) do(ctx context.Context, method, path string, sess *Session, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Method: method, Path: path, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// The backend expects the raw token, without a "Bearer " scheme.
	if tok := sess.Token(); tok != "" {
		req.Header.Set("Authorization", tok)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: res.StatusCode}
		var m messageResponse
		if len(raw) > 0 && json.Unmarshal(raw, &m) == nil {
			apiErr.Message = messageText(m.Message)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
