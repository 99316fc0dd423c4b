package serpapi

// NewsResponse is the subset of a Google News search payload the proxy reads.
type NewsResponse struct {
	NewsResults []NewsResult `json:"news_results"`
}

// NewsResult is one entry of news_results. Title and Link are pointers so a
// missing or null field can be told apart from an empty string.
type NewsResult struct {
	Title  *string        `json:"title"`
	Link   *string        `json:"link"`
	Source map[string]any `json:"source"`
}

// TitleOr returns the title, or fallback when it is absent.
func (r NewsResult) TitleOr(fallback string) string {
	if r.Title == nil {
		return fallback
	}
	return *r.Title
}

// LinkOr returns the link, or fallback when it is absent.
func (r NewsResult) LinkOr(fallback string) string {
	if r.Link == nil {
		return fallback
	}
	return *r.Link
}

// HasSource reports whether the entry carries a non-empty source object.
func (r NewsResult) HasSource() bool {
	return len(r.Source) > 0
}

// SourceName returns source.name when it is a string, or fallback.
func (r NewsResult) SourceName(fallback string) string {
	raw, ok := r.Source["name"]
	if !ok {
		return fallback
	}
	name, ok := raw.(string)
	if !ok {
		return fallback
	}
	return name
}
