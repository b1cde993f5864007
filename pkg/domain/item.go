package domain

import "time"

// NewsItem represents a single headline returned by a news source
type NewsItem struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Source      NewsSource `json:"source"`
	URL         string     `json:"url"`
	PublishedAt string     `json:"publishedAt"`
}

// NewsSource is the publisher of a news item
type NewsSource struct {
	Name string `json:"name"`
}

// Text returns lowercased title and description joined by a space, used for keyword matching
func (n NewsItem) Text() string {
	return lower(n.Title + " " + n.Description)
}

// Published returns parsed publish time, zero time if not parsable
func (n NewsItem) Published() time.Time {
	t, err := time.Parse(time.RFC3339, n.PublishedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
