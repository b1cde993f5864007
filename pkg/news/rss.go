package news

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/rootbyte/pkg/domain"
)

// Feed is a single RSS/Atom headline feed
type Feed struct {
	Name string
	URL  string
}

// RSS collects headlines from RSS/Atom feeds, an alternative to NewsAPI
type RSS struct {
	feeds   []Feed
	client  *http.Client
	timeout time.Duration
}

// NewRSS makes RSS source for the feeds
func NewRSS(feeds []Feed, timeout time.Duration, client *http.Client) *RSS {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{}
	}
	return &RSS{feeds: feeds, client: client, timeout: timeout}
}

// Fetch reads all feeds one by one and returns the newest pageSize items. A failing feed is
// skipped, the error is returned only if every feed failed.
func (r *RSS) Fetch(ctx context.Context, pageSize int) ([]domain.NewsItem, error) {
	if len(r.feeds) == 0 {
		return nil, fmt.Errorf("%w: no feeds", ErrNotConfigured)
	}

	var items []domain.NewsItem
	var lastErr error
	failed := 0
	for _, f := range r.feeds {
		feedItems, err := r.fetchFeed(ctx, f)
		if err != nil {
			lgr.Printf("[WARN] failed to fetch feed %s: %v", f.Name, err)
			lastErr = err
			failed++
			continue
		}
		items = append(items, feedItems...)
	}
	if failed == len(r.feeds) {
		return nil, fmt.Errorf("all feeds failed: %w", lastErr)
	}

	items = clean(items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published().After(items[j].Published())
	})
	if pageSize > 0 && len(items) > pageSize {
		items = items[:pageSize]
	}
	return items, nil
}

func (r *RSS) fetchFeed(ctx context.Context, f Feed) ([]domain.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addFeedHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	source := f.Name
	if source == "" {
		source = feed.Title
	}
	res := make([]domain.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		ni := domain.NewsItem{
			Title:       strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
			Source:      domain.NewsSource{Name: source},
			URL:         item.Link,
		}
		if item.PublishedParsed != nil {
			ni.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		} else if item.UpdatedParsed != nil {
			ni.PublishedAt = item.UpdatedParsed.UTC().Format(time.RFC3339)
		}
		res = append(res, ni)
	}
	return res, nil
}
