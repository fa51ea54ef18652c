package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultEndpoint is the Tavily crawl endpoint
const DefaultEndpoint = "https://api.tavily.com/crawl"

// ErrMissingAPIKey is returned by NewClient when no credential is supplied
var ErrMissingAPIKey = errors.New("tavily API key is not set")

// Client submits crawl requests to the Tavily API
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// ClientOption customizes a Client
type ClientOption func(*Client)

// WithEndpoint overrides the crawl endpoint URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient replaces the HTTP client used for the crawl call
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client bound to the given API key
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Crawl sends one crawl request and returns the response as received.
// A non-success status is not an error here; callers inspect Response.OK.
func (c *Client) Crawl(ctx context.Context, opts Options) (*Response, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid crawl options: %w", err)
	}

	body, err := json.Marshal(opts.Payload())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal crawl payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build crawl request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	logrus.Debugf("POST %s %s", c.endpoint, body)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crawl request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read crawl response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
