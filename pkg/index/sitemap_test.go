package index

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rootbyte/pkg/domain"
)

func TestSitemap_Generate(t *testing.T) {
	sm := NewSitemap("https://rootbyte.com/", nil)
	articles := []domain.Article{
		{Slug: "first-touchscreen-1965", Meta: domain.Meta{"date": "2025-02-01"}},
		{Slug: "draft-article", Meta: domain.Meta{"status": "draft"}},
		{Slug: "no-date", Meta: domain.Meta{"date": "sometime"}},
	}

	xmlText, count, err := sm.Generate(articles)
	require.NoError(t, err)
	assert.Equal(t, 11+6+2, count)

	assert.True(t, strings.HasPrefix(xmlText, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"))
	assert.Contains(t, xmlText, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, xmlText, "<url>\n    <loc>https://rootbyte.com/</loc>\n    <changefreq>daily</changefreq>\n    <priority>1.0</priority>\n  </url>")
	assert.Contains(t, xmlText, "<loc>https://rootbyte.com/breaking.html</loc>\n    <changefreq>hourly</changefreq>\n    <priority>0.9</priority>")
	assert.Contains(t, xmlText, "<loc>https://rootbyte.com/category.html?cat=gaming</loc>")
	assert.Contains(t, xmlText, "<loc>https://rootbyte.com/article.html?slug=first-touchscreen-1965</loc>\n    <lastmod>2025-02-01</lastmod>\n    <changefreq>monthly</changefreq>\n    <priority>0.8</priority>")
	assert.Contains(t, xmlText, "<loc>https://rootbyte.com/article.html?slug=no-date</loc>\n    <changefreq>monthly</changefreq>")
	assert.NotContains(t, xmlText, "draft-article")
	assert.Equal(t, count, strings.Count(xmlText, "<url>"))
}

func TestSitemap_URLsOrder(t *testing.T) {
	sm := NewSitemap("https://example.com", []string{"ai", "space"})
	urls := sm.URLs([]domain.Article{{Slug: "a", Meta: domain.Meta{}}})
	require.Len(t, urls, len(StaticPages)+3)
	assert.Equal(t, "https://example.com/", urls[0].Loc)
	assert.Equal(t, "https://example.com/ad-policy.html", urls[len(StaticPages)-1].Loc)
	assert.Equal(t, "https://example.com/category.html?cat=ai", urls[len(StaticPages)].Loc)
	assert.Equal(t, "https://example.com/category.html?cat=space", urls[len(StaticPages)+1].Loc)
	assert.Equal(t, "https://example.com/article.html?slug=a", urls[len(StaticPages)+2].Loc)
}

func TestSitemap_EscapesXML(t *testing.T) {
	sm := NewSitemap("https://example.com", []string{"a&b"})
	xmlText, _, err := sm.Generate(nil)
	require.NoError(t, err)
	assert.Contains(t, xmlText, "<loc>https://example.com/category.html?cat=a&amp;b</loc>")
}
