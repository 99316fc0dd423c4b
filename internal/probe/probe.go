package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/samvad-hq/trends-proxy/internal/domain"
	"github.com/samvad-hq/trends-proxy/pkg/httpclient"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	previewCount   = 3
	linkPreviewLen = 50
)

// DefaultNiches is the run sequence used when no niche is given: general, then two niches.
var DefaultNiches = []string{"", "Technology", "Marketing"}

// Result is the decoded endpoint reply plus the HTTP status.
type Result struct {
	URL     string                 `json:"-"`
	Status  int                    `json:"-"`
	Success *bool                  `json:"success"`
	Count   *int                   `json:"count"`
	Data    []domain.TrendingTopic `json:"data"`
	Error   string                 `json:"error"`
}

// Prober issues test requests against a running trends endpoint.
type Prober struct {
	client  httpclient.Client
	baseURL string
}

// New builds a Prober for baseURL.
func New(client httpclient.Client, baseURL string) *Prober {
	if client == nil {
		client = httpclient.NewRestyClient(0)
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Prober{client: client, baseURL: baseURL}
}

// TrendsURL returns the endpoint URL for niche.
func (p *Prober) TrendsURL(niche string) string {
	u := p.baseURL + "/api/trends"
	if niche != "" {
		u += "?" + url.Values{"niche": {niche}}.Encode()
	}
	return u
}

// Probe performs one GET and decodes the body.
func (p *Prober) Probe(ctx context.Context, niche string) (*Result, error) {
	target := p.TrendsURL(niche)
	resp, err := p.client.Get(ctx, target, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", target, err)
	}

	res := &Result{URL: target, Status: resp.StatusCode()}
	if err := json.Unmarshal(resp.Body(), res); err != nil {
		return res, fmt.Errorf("decode response (status %d): %w", resp.StatusCode(), err)
	}
	return res, nil
}

// RunAll probes each niche in order, writing a report per run. A failing run
// (transport error, undecodable body or status >= 400) is reported and does
// not stop the sequence; the number of failures is returned.
func (p *Prober) RunAll(ctx context.Context, niches []string, out io.Writer) int {
	failures := 0
	for _, niche := range niches {
		fmt.Fprintln(out, renderHeader(p.TrendsURL(niche)))

		res, err := p.Probe(ctx, niche)
		if err != nil {
			failures++
			fmt.Fprintln(out, renderError(err))
			continue
		}
		if res.Status >= 400 {
			failures++
		}
		fmt.Fprintln(out, renderResult(res))
	}
	fmt.Fprintln(out, renderFooter())
	return failures
}

func truncateLink(link string) string {
	if len(link) > linkPreviewLen {
		link = link[:linkPreviewLen]
	}
	return link + "..."
}
