package domain

// Domain contains core models shared by the service, handler and publishers.

// Difficulty is a positional label attached to each trending topic.
type Difficulty string

const (
	DifficultyHigh Difficulty = "High"
	DifficultyMed  Difficulty = "Med"
	DifficultyLow  Difficulty = "Low"
)

// TrendingTopic is the simplified record returned to clients.
type TrendingTopic struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Posts      string     `json:"posts"`
	Difficulty Difficulty `json:"difficulty"`
	Link       string     `json:"link"`
}
