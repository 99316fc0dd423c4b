package trends

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/trends-proxy/internal/domain"
	"github.com/samvad-hq/trends-proxy/internal/logger"
	"github.com/samvad-hq/trends-proxy/internal/storage"
	"github.com/samvad-hq/trends-proxy/pkg/publishers"
	"github.com/samvad-hq/trends-proxy/pkg/serpapi"
)

const defaultPublishTimeout = 5 * time.Second

// Searcher runs one upstream news search.
type Searcher interface {
	SearchNews(ctx context.Context, query string) (*serpapi.NewsResponse, error)
}

// EventPublisher delivers snapshot events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Service resolves a niche into mapped trending topics.
type Service struct {
	search         Searcher
	cache          storage.Store
	publisher      EventPublisher
	publishTimeout time.Duration
	log            logger.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithCache enables result caching keyed by upstream query.
func WithCache(s storage.Store) Option {
	return func(svc *Service) { svc.cache = s }
}

// WithPublisher publishes a snapshot after every upstream fetch.
func WithPublisher(p EventPublisher, timeout time.Duration) Option {
	return func(svc *Service) {
		svc.publisher = p
		if timeout > 0 {
			svc.publishTimeout = timeout
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) { svc.log = logger.Ensure(l) }
}

// NewService wires a Service around the upstream searcher.
func NewService(search Searcher, opts ...Option) *Service {
	svc := &Service{
		search:         search,
		publishTimeout: defaultPublishTimeout,
		log:            logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Trends returns up to MaxResults topics for niche. Cache and publish
// failures are logged and never fail the call.
func (s *Service) Trends(ctx context.Context, niche string) ([]domain.TrendingTopic, error) {
	if s == nil || s.search == nil {
		return nil, fmt.Errorf("trends service is not initialized")
	}

	query := BuildQuery(niche)

	if s.cache != nil {
		topics, ok, err := s.cache.GetTopics(ctx, query)
		if err != nil {
			s.log.WarnObj("trends cache lookup failed", "cache_error", map[string]any{
				"query": query,
				"error": err.Error(),
			})
		} else if ok {
			s.log.DebugObj("trends cache hit", "cache_hit", map[string]any{
				"query": query,
				"count": len(topics),
			})
			return topics, nil
		}
	}

	resp, err := s.search.SearchNews(ctx, query)
	if err != nil {
		return nil, err
	}
	topics := MapResults(resp.NewsResults)

	if s.cache != nil {
		if err := s.cache.PutTopics(ctx, query, topics); err != nil {
			s.log.WarnObj("trends cache store failed", "cache_error", map[string]any{
				"query": query,
				"error": err.Error(),
			})
		}
	}

	s.publish(ctx, niche, query, topics)
	return topics, nil
}

// publish delivers the snapshot synchronously; a cancelled request does not
// abort delivery, the publish timeout bounds it instead.
func (s *Service) publish(ctx context.Context, niche, query string, topics []domain.TrendingTopic) {
	if s.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	evt := publishers.NewEvent(niche, query, topics)
	delivered, err := s.publisher.Publish(pubCtx, evt)
	if err != nil {
		s.log.ErrorObj("trends snapshot publish failed", "publish_error", map[string]any{
			"event_id":  evt.ID,
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	s.log.DebugObj("trends snapshot published", "publish_result", map[string]any{
		"event_id":  evt.ID,
		"delivered": delivered,
	})
}
