package trends

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/samvad-hq/trends-proxy/internal/domain"
	"github.com/samvad-hq/trends-proxy/pkg/publishers"
	"github.com/samvad-hq/trends-proxy/pkg/serpapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher records queries and returns a preset response.
type fakeSearcher struct {
	queries []string
	resp    *serpapi.NewsResponse
	err     error
}

func (f *fakeSearcher) SearchNews(_ context.Context, query string) (*serpapi.NewsResponse, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// memCache is an in-memory storage.Store.
type memCache struct {
	mu     sync.Mutex
	data   map[string][]domain.TrendingTopic
	getErr error
}

func (m *memCache) Close() error { return nil }

func (m *memCache) GetTopics(_ context.Context, q string) ([]domain.TrendingTopic, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	t, ok := m.data[q]
	return t, ok, nil
}

func (m *memCache) PutTopics(_ context.Context, q string, topics []domain.TrendingTopic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]domain.TrendingTopic)
	}
	m.data[q] = topics
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []publishers.Event
	err    error
}

func (r *recordingPublisher) Publish(ctx context.Context, evt publishers.Event) (int, error) {
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("publish context has no deadline")
	}
	r.events = append(r.events, evt)
	if r.err != nil {
		return 0, r.err
	}
	return 1, nil
}

func TestService_Trends(t *testing.T) {
	search := &fakeSearcher{resp: &serpapi.NewsResponse{NewsResults: newsResults(25)}}
	svc := NewService(search)

	topics, err := svc.Trends(context.Background(), "Technology")
	require.NoError(t, err)

	assert.Equal(t, []string{"Technology trends"}, search.queries)
	assert.Len(t, topics, 20)
}

func TestService_TrendsMissingNewsResults(t *testing.T) {
	svc := NewService(&fakeSearcher{resp: &serpapi.NewsResponse{}})

	topics, err := svc.Trends(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestService_TrendsPropagatesUpstreamError(t *testing.T) {
	svc := NewService(&fakeSearcher{err: errors.New("upstream down")})

	_, err := svc.Trends(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestService_TrendsUsesCache(t *testing.T) {
	search := &fakeSearcher{resp: &serpapi.NewsResponse{NewsResults: newsResults(2)}}
	cache := &memCache{}
	svc := NewService(search, WithCache(cache))

	first, err := svc.Trends(context.Background(), "AI")
	require.NoError(t, err)
	second, err := svc.Trends(context.Background(), "AI")
	require.NoError(t, err)

	assert.Len(t, search.queries, 1, "second call must be served from cache")
	assert.Equal(t, first, second)
}

func TestService_TrendsIgnoresCacheErrors(t *testing.T) {
	search := &fakeSearcher{resp: &serpapi.NewsResponse{NewsResults: newsResults(1)}}
	svc := NewService(search, WithCache(&memCache{getErr: errors.New("bolt closed")}))

	topics, err := svc.Trends(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, topics, 1)
	assert.Len(t, search.queries, 1)
}

func TestService_TrendsPublishesSnapshot(t *testing.T) {
	search := &fakeSearcher{resp: &serpapi.NewsResponse{NewsResults: newsResults(3)}}
	pub := &recordingPublisher{}
	svc := NewService(search, WithPublisher(pub, 0))

	ctx, cancel := context.WithCancel(context.Background())
	topics, err := svc.Trends(ctx, "Marketing")
	cancel()
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	evt := pub.events[0]
	assert.Equal(t, "Marketing", evt.Niche)
	assert.Equal(t, "Marketing trends", evt.Query)
	assert.Equal(t, 3, evt.Count)
	assert.Equal(t, topics, evt.Topics)
	assert.NotEmpty(t, evt.ID)
}

func TestService_TrendsPublishFailureDoesNotFail(t *testing.T) {
	search := &fakeSearcher{resp: &serpapi.NewsResponse{NewsResults: newsResults(1)}}
	svc := NewService(search, WithPublisher(&recordingPublisher{err: errors.New("sqs down")}, 0))

	_, err := svc.Trends(context.Background(), "")
	assert.NoError(t, err)
}
