package trends

import (
	"strconv"

	"github.com/samvad-hq/trends-proxy/internal/domain"
	"github.com/samvad-hq/trends-proxy/pkg/serpapi"
)

const (
	// MaxResults caps the number of topics returned per request.
	MaxResults = 20

	DefaultQuery  = "business technology trends"
	defaultTitle  = "Trending Story"
	defaultPosts  = "Trending"
	unknownSource = "Unknown"
	querySuffix   = " trends"
)

var difficultyCycle = [...]domain.Difficulty{
	domain.DifficultyHigh,
	domain.DifficultyMed,
	domain.DifficultyLow,
}

// BuildQuery turns the optional niche into the upstream search phrase.
func BuildQuery(niche string) string {
	if niche == "" {
		return DefaultQuery
	}
	return niche + querySuffix
}

// DifficultyAt returns the label for the zero-based position i.
func DifficultyAt(i int) domain.Difficulty {
	if i < 0 {
		i = -i
	}
	return difficultyCycle[i%len(difficultyCycle)]
}

// MapResults converts at most MaxResults upstream entries, preserving order.
// The result is never nil.
func MapResults(results []serpapi.NewsResult) []domain.TrendingTopic {
	n := len(results)
	if n > MaxResults {
		n = MaxResults
	}

	topics := make([]domain.TrendingTopic, 0, n)
	for i, item := range results[:n] {
		topics = append(topics, domain.TrendingTopic{
			ID:         strconv.Itoa(i + 1),
			Title:      item.TitleOr(defaultTitle),
			Posts:      postsLabel(item),
			Difficulty: DifficultyAt(i),
			Link:       item.LinkOr(""),
		})
	}
	return topics
}

func postsLabel(item serpapi.NewsResult) string {
	if !item.HasSource() {
		return defaultPosts
	}
	return "via " + item.SourceName(unknownSource)
}
