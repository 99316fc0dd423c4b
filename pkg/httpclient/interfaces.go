package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts outbound GETs so the SerpApi client and the probe CLI can
// be pointed at fakes or httptest servers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
