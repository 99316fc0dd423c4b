package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samvad-hq/trends-proxy/pkg/httpclient"
)

const (
	DefaultBaseURL  = "https://serpapi.com/search.json"
	DefaultEngine   = "google_news"
	DefaultCountry  = "us"
	DefaultLanguage = "en"
)

// ErrMissingAPIKey is returned when a search is attempted without a key.
var ErrMissingAPIKey = errors.New("serpapi: api key is empty")

// Client issues Google News searches against SerpApi.
type Client struct {
	http     httpclient.Client
	apiKey   string
	baseURL  string
	engine   string
	country  string
	language string
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint, mostly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient sets the transport used for searches.
func WithHTTPClient(h httpclient.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLocale sets the gl/hl parameters.
func WithLocale(country, language string) Option {
	return func(c *Client) {
		if country != "" {
			c.country = country
		}
		if language != "" {
			c.language = language
		}
	}
}

// New builds a client; the default transport has no timeout.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   strings.TrimSpace(apiKey),
		baseURL:  DefaultBaseURL,
		engine:   DefaultEngine,
		country:  DefaultCountry,
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(0)
	}
	return c
}

// SearchURL returns the fully encoded request URL for query.
func (c *Client) SearchURL(query string) string {
	v := url.Values{}
	v.Set("engine", c.engine)
	v.Set("q", query)
	v.Set("gl", c.country)
	v.Set("hl", c.language)
	v.Set("api_key", c.apiKey)
	return c.baseURL + "?" + v.Encode()
}

// SearchNews runs one search and decodes the news results.
func (c *Client) SearchNews(ctx context.Context, query string) (*NewsResponse, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	resp, err := c.http.Get(ctx, c.SearchURL(query), map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("serpapi request: %w", err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("serpapi returned status %d body: %s", resp.StatusCode(), responseSnippet(body))
	}

	var out NewsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode serpapi response: %w", err)
	}
	return &out, nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
