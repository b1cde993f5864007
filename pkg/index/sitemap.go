package index

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/rootbyte/pkg/domain"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// DefaultBaseURL is the public site address
const DefaultBaseURL = "https://rootbyte.com"

// Page is a sitemap entry without the base url
type Page struct {
	Path       string
	Priority   string
	ChangeFreq string
}

// StaticPages listed in every sitemap, in this order
var StaticPages = []Page{
	{Path: "/", Priority: "1.0", ChangeFreq: "daily"},
	{Path: "/roots-archive.html", Priority: "0.7", ChangeFreq: "weekly"},
	{Path: "/did-you-know.html", Priority: "0.7", ChangeFreq: "weekly"},
	{Path: "/on-this-day.html", Priority: "0.8", ChangeFreq: "daily"},
	{Path: "/breaking.html", Priority: "0.9", ChangeFreq: "hourly"},
	{Path: "/about.html", Priority: "0.5", ChangeFreq: "monthly"},
	{Path: "/advertise.html", Priority: "0.5", ChangeFreq: "monthly"},
	{Path: "/contact.html", Priority: "0.5", ChangeFreq: "monthly"},
	{Path: "/privacy.html", Priority: "0.3", ChangeFreq: "yearly"},
	{Path: "/terms.html", Priority: "0.3", ChangeFreq: "yearly"},
	{Path: "/ad-policy.html", Priority: "0.3", ChangeFreq: "monthly"},
}

// DefaultCategories have a category page in the sitemap
var DefaultCategories = []string{"ai", "devices", "internet", "crypto", "gaming", "space"}

// URLSet is the sitemap xml root
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is a single sitemap url
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap generates sitemap.xml for the site
type Sitemap struct {
	baseURL    string
	categories []string
}

// NewSitemap makes a sitemap generator. Empty categories list means DefaultCategories.
func NewSitemap(baseURL string, categories []string) *Sitemap {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Sitemap{baseURL: strings.TrimRight(baseURL, "/"), categories: categories}
}

// URLs returns all sitemap urls: static pages, category pages and published articles
func (s *Sitemap) URLs(articles []domain.Article) []URL {
	res := make([]URL, 0, len(StaticPages)+len(s.categories)+len(articles))
	for _, p := range StaticPages {
		res = append(res, URL{Loc: s.baseURL + p.Path, ChangeFreq: p.ChangeFreq, Priority: p.Priority})
	}
	for _, cat := range s.categories {
		res = append(res, URL{Loc: s.baseURL + "/category.html?cat=" + cat, ChangeFreq: "daily", Priority: "0.8"})
	}
	for _, a := range articles {
		if !a.IsPublished() {
			continue
		}
		res = append(res, URL{
			Loc:        s.baseURL + "/article.html?slug=" + a.Slug,
			LastMod:    lastMod(a.Meta.String("date")),
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}
	return res
}

// Generate renders sitemap xml and returns it with the number of urls
func (s *Sitemap) Generate(articles []domain.Article) (string, int, error) {
	set := URLSet{XMLNS: sitemapNS, URLs: s.URLs(articles)}
	output, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("marshal sitemap: %w", err)
	}
	return xml.Header + string(output) + "\n", len(set.URLs), nil
}

// lastMod returns article date in W3C date format, empty if the date can't be parsed
func lastMod(date string) string {
	t := parseDate(date)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// parseDate accepts YYYY-MM-DD and RFC3339 dates, zero time for anything else
func parseDate(date string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}
