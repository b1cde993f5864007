// Package roots links current headlines to archive articles about their historical roots.
package roots

import (
	"strings"
)

// KnownArticle is an archive article with the keywords that connect news to it
type KnownArticle struct {
	Slug     string   `yaml:"slug" json:"slug"`
	Category string   `yaml:"category" json:"category"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// DefaultArticles are the archive articles matched by default, in priority order
var DefaultArticles = []KnownArticle{
	{Slug: "chatgpt-neural-network-history", Category: "ai", Keywords: []string{"ai", "chatgpt", "openai", "gpt", "llm",
		"neural", "machine learning", "artificial intelligence", "gemini", "claude", "anthropic"}},
	{Slug: "wifi-hidden-inventor", Category: "internet", Keywords: []string{"wifi", "wi-fi", "6ghz", "wireless", "csiro",
		"broadband", "5g", "6g"}},
	{Slug: "first-touchscreen-1965", Category: "devices", Keywords: []string{"touchscreen", "touch", "ipad", "iphone",
		"apple", "samsung display", "haptic"}},
	{Slug: "first-hard-drive-ibm", Category: "devices", Keywords: []string{"hard drive", "ssd", "storage", "data center",
		"nvme", "cloud storage", "dna storage", "flash memory"}},
}

// Matcher finds the archive article for a headline
type Matcher struct {
	articles []KnownArticle
}

// NewMatcher makes matcher for the articles, empty list means DefaultArticles
func NewMatcher(articles []KnownArticle) *Matcher {
	if len(articles) == 0 {
		articles = DefaultArticles
	}
	return &Matcher{articles: articles}
}

// Match returns the first article, in declared order, having any keyword contained in the
// lowercased title and description. Keywords are plain substrings, "ai" matches "said".
func (m *Matcher) Match(title, description string) (KnownArticle, bool) {
	text := strings.ToLower(title + " " + description)
	for _, a := range m.articles {
		for _, kw := range a.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				return a, true
			}
		}
	}
	return KnownArticle{}, false
}
