package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/trends-proxy/internal/domain"
	"github.com/samvad-hq/trends-proxy/internal/logger"
)

const (
	headerAllowOrigin  = "Access-Control-Allow-Origin"
	headerAllowMethods = "Access-Control-Allow-Methods"
	headerAllowHeaders = "Access-Control-Allow-Headers"

	allowedMethods = "GET, OPTIONS"
	allowedHeaders = "Content-Type"

	errMissingAPIKey = "SERP_API_KEY not configured"
)

// TrendsFetcher resolves a niche into trending topics.
type TrendsFetcher interface {
	Trends(ctx context.Context, niche string) ([]domain.TrendingTopic, error)
}

// Handler serves /api/trends.
type Handler struct {
	trends        TrendsFetcher
	keyConfigured bool
	log           logger.Logger
}

// NewHandler builds the trends handler. An empty apiKey makes every GET
// answer with the configuration error instead of calling upstream.
func NewHandler(trends TrendsFetcher, apiKey string, log logger.Logger) *Handler {
	return &Handler{
		trends:        trends,
		keyConfigured: strings.TrimSpace(apiKey) != "",
		log:           logger.Ensure(log),
	}
}

type trendsResponse struct {
	Success bool                   `json:"success"`
	Data    []domain.TrendingTopic `json:"data"`
	Count   int                    `json:"count"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Trends handles GET /api/trends?niche=<optional>.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	niche := r.URL.Query().Get("niche")

	if !h.keyConfigured {
		h.log.ErrorObj("trends request rejected", "trends_request", map[string]any{
			"niche": niche,
			"error": errMissingAPIKey,
		})
		w.Header().Set(headerAllowOrigin, "*")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": errMissingAPIKey})
		return
	}

	body, err := h.render(r.Context(), niche)
	if err != nil {
		h.log.ErrorObj("trends request failed", "trends_request", map[string]any{
			"niche":      niche,
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		// Only the origin header on this path; methods/headers are not repeated.
		w.Header().Set(headerAllowOrigin, "*")
		writeJSON(w, http.StatusInternalServerError, failureResponse{Success: false, Error: err.Error()})
		return
	}

	setCORSHeaders(w.Header())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)

	h.log.InfoObj("trends request served", "trends_request", map[string]any{
		"niche":      niche,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
}

// render fetches and encodes the success body so encoding errors still reach
// the generic failure path before anything is written.
func (h *Handler) render(ctx context.Context, niche string) ([]byte, error) {
	topics, err := h.trends.Trends(ctx, niche)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []domain.TrendingTopic{}
	}
	return json.Marshal(trendsResponse{Success: true, Data: topics, Count: len(topics)})
}

// Preflight handles OPTIONS /api/trends.
func (h *Handler) Preflight(w http.ResponseWriter, _ *http.Request) {
	setCORSHeaders(w.Header())
	w.WriteHeader(http.StatusOK)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func setCORSHeaders(h http.Header) {
	h.Set(headerAllowOrigin, "*")
	h.Set(headerAllowMethods, allowedMethods)
	h.Set(headerAllowHeaders, allowedHeaders)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
