package index

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/umputun/rootbyte/pkg/domain"
)

// feed defaults
const (
	DefaultFeedSize = 20
	feedTitle       = "ROOT•BYTE"
	feedDescription = "The forgotten history behind today's tech news"
)

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Atom    string      `xml:"xmlns:atom,attr"`
	Channel *RSSChannel `xml:"channel"`
}

// RSSChannel represents an RSS channel
type RSSChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	AtomLink      *AtomLink  `xml:"http://www.w3.org/2005/Atom link"`
	LastBuildDate string     `xml:"lastBuildDate"`
	Items         []*RSSItem `xml:"item"`
}

// AtomLink represents an Atom link element within RSS
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem represents an article in the feed
type RSSItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Categories  []string `xml:"category"`
}

// Feed creates the RSS feed of the newest published articles
type Feed struct {
	baseURL string
	size    int
}

// NewFeed makes a feed generator, size limits the number of items, DefaultFeedSize if not positive
func NewFeed(baseURL string, size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{baseURL: strings.TrimRight(baseURL, "/"), size: size}
}

// Generate renders RSS 2.0 xml of published articles, newest date first. Articles without a
// parsable date go last, in their original order. Returns the xml and the number of items.
func (f *Feed) Generate(articles []domain.Article, now time.Time) (string, int, error) {
	published := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublished() {
			published = append(published, a)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return articleDate(published[i]).After(articleDate(published[j]))
	})
	if len(published) > f.size {
		published = published[:f.size]
	}

	items := make([]*RSSItem, 0, len(published))
	for _, a := range published {
		items = append(items, f.item(a))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         feedTitle,
			Link:          f.baseURL + "/",
			Description:   feedDescription,
			AtomLink:      &AtomLink{Href: f.baseURL + "/feed.xml", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: now.Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output) + "\n", len(items), nil
}

func (f *Feed) item(a domain.Article) *RSSItem {
	link := f.baseURL + "/article.html?slug=" + a.Slug
	desc := a.Meta.String("excerpt")
	if year := a.Meta.String("root_year"); year != "" {
		desc = strings.TrimSpace(fmt.Sprintf("%s (root: %s)", desc, year))
	}

	res := &RSSItem{
		Title:       a.Meta.StringOr("title", "Untitled"),
		Link:        link,
		GUID:        link,
		Description: desc,
		Categories:  []string{a.Category()},
	}
	if d := articleDate(a); !d.IsZero() {
		res.PubDate = d.Format(time.RFC1123Z)
	}
	return res
}

func articleDate(a domain.Article) time.Time {
	return parseDate(a.Meta.String("date"))
}
