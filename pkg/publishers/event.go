package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/trends-proxy/internal/domain"
)

// Event is the trends snapshot published downstream after an upstream fetch.
type Event struct {
	ID        string                 `json:"id"`
	Niche     string                 `json:"niche"`
	Query     string                 `json:"query"`
	Count     int                    `json:"count"`
	Topics    []domain.TrendingTopic `json:"topics"`
	FetchedAt time.Time              `json:"fetched_at"`
}

// NewEvent constructs a snapshot Event for the given query and mapped topics.
func NewEvent(niche, query string, topics []domain.TrendingTopic) Event {
	return Event{
		ID:        uuid.NewString(),
		Niche:     niche,
		Query:     query,
		Count:     len(topics),
		Topics:    topics,
		FetchedAt: time.Now().UTC(),
	}
}

// attributes are attached to queue/topic messages for subscriber filtering.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_id": e.ID,
		"query":    e.Query,
	}
}
