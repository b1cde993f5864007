package index

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rootbyte/pkg/content"
	"github.com/umputun/rootbyte/pkg/domain"
	"github.com/umputun/rootbyte/pkg/store"
)

// generated file names inside the content directory
const (
	CategoriesFile = "categories.json"
	FactsFile      = "did-you-know.json"
)

// Builder regenerates all site indices from the articles directory
type Builder struct {
	Articles    *content.Store
	ContentDir  string // categories.json and did-you-know.json go here
	SitemapPath string
	Sitemap     *Sitemap
	FeedPath    string // rss feed is skipped if empty
	Feed        *Feed
}

// Report summarizes a build run
type Report struct {
	Articles    int // published articles
	Facts       int // total facts after the run
	NewFacts    int
	SitemapURLs int
	FeedItems   int
	Duration    time.Duration
}

// Run loads articles and writes categories.json, did-you-know.json, sitemap.xml and the rss feed.
// Missing articles directory is an error, missing or corrupt facts file starts an empty list.
// Facts file is written only when new facts were added.
func (b *Builder) Run(ctx context.Context) (Report, error) {
	st := time.Now()
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	articles, err := b.Articles.Load()
	if err != nil {
		return Report{}, fmt.Errorf("load articles: %w", err)
	}
	published := content.Published(articles)
	lgr.Printf("[INFO] found %d article files, %d published", len(articles), len(published))

	catPath := filepath.Join(b.ContentDir, CategoriesFile)
	if err := store.Save(catPath, BuildCategoryIndex(published)); err != nil {
		return Report{}, fmt.Errorf("write categories: %w", err)
	}
	lgr.Printf("[DEBUG] written %s", catPath)

	factsPath := filepath.Join(b.ContentDir, FactsFile)
	existing, state, err := store.Load[[]domain.Fact](factsPath)
	if err != nil {
		return Report{}, fmt.Errorf("load facts: %w", err)
	}
	if state != store.Found {
		lgr.Printf("[DEBUG] facts file %s is %s, starting empty", factsPath, state)
	}
	facts := BuildFacts(published, existing)
	newFacts := len(facts) - len(existing)
	if newFacts > 0 {
		if err := store.Save(factsPath, facts); err != nil {
			return Report{}, fmt.Errorf("write facts: %w", err)
		}
		lgr.Printf("[INFO] added %d new facts", newFacts)
	}

	sm := b.Sitemap
	if sm == nil {
		sm = NewSitemap(DefaultBaseURL, nil)
	}
	sitemap, urls, err := sm.Generate(published)
	if err != nil {
		return Report{}, err
	}
	if err := store.WriteFile(b.SitemapPath, []byte(sitemap)); err != nil {
		return Report{}, fmt.Errorf("write sitemap: %w", err)
	}
	lgr.Printf("[DEBUG] written %s with %d urls", b.SitemapPath, urls)

	feedItems := 0
	if b.FeedPath != "" {
		fd := b.Feed
		if fd == nil {
			fd = NewFeed(DefaultBaseURL, DefaultFeedSize)
		}
		var rss string
		if rss, feedItems, err = fd.Generate(published, st); err != nil {
			return Report{}, err
		}
		if err := store.WriteFile(b.FeedPath, []byte(rss)); err != nil {
			return Report{}, fmt.Errorf("write feed: %w", err)
		}
		lgr.Printf("[DEBUG] written %s with %d items", b.FeedPath, feedItems)
	}

	return Report{
		Articles:    len(published),
		Facts:       len(facts),
		NewFacts:    newFacts,
		SitemapURLs: urls,
		FeedItems:   feedItems,
		Duration:    time.Since(st),
	}, nil
}
