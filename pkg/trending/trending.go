// Package trending builds the daily snapshot of current headlines linked to archive articles.
package trending

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rootbyte/pkg/domain"
	"github.com/umputun/rootbyte/pkg/llm"
	"github.com/umputun/rootbyte/pkg/news"
	"github.com/umputun/rootbyte/pkg/roots"
	"github.com/umputun/rootbyte/pkg/store"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports ../news Source
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// snapshot limits
const (
	DefaultPageSize = 20
	MaxStories      = 4
	MaxTicker       = 8
	timeLayout      = "2006-01-02T15:04:05.000Z07:00"
)

// DefaultTicker is shown when no headlines are available
var DefaultTicker = []string{
	"ChatGPT turns 3 — what 80 years of AI history built it",
	"Samsung foldable traces to 1994 IBM patent nobody used",
	"The WiFi inventor Australia doesn't know it has — CSIRO 1992",
	"XRP history: RipplePay 2004 Vancouver roots",
	"First hard drive weighed a ton — IBM RAMAC 1956",
	"QWERTY was designed to slow typists down — 1873",
	"The first computer bug was a real moth — Harvard 1947",
	"Apollo 11's computer had less power than your calculator",
}

// FallbackStories are used when no headline matches an archive article
var FallbackStories = []domain.Story{
	{Slug: "chatgpt-neural-network-history", Headline: "ChatGPT Is 3 Years Old. The Math Behind It Is 83.", Category: "ai", IsHero: true},
	{Slug: "first-touchscreen-1965", Headline: "The First Touchscreen Wasn't Apple — It Was Made in 1965", Category: "devices"},
	{Slug: "wifi-hidden-inventor", Headline: "The WiFi Inventor Australia Doesn't Know It Has", Category: "internet"},
	{Slug: "first-hard-drive-ibm", Headline: "IBM's First Hard Drive Weighed a Ton. Its Inventor Was Almost Erased.", Category: "devices"},
}

// DefaultTeaser announces the next article
var DefaultTeaser = domain.Teaser{
	Headline: "The Forgotten Inventor of the First Hard Drive — Erased From History",
	Preview:  "IBM's RAMAC 350 weighed a full ton and stored 5 megabytes. We dig up Reynold Johnson.",
	Topics:   []string{"Storage History", "IBM RAMAC 1956", "Reynold Johnson", "DNA Storage Future"},
}

// Summarizer writes the sentence connecting a headline to its archive article
type Summarizer interface {
	RootConnection(ctx context.Context, headline, slug string) llm.Result
}

// Builder makes the snapshot. News and summary failures are logged and replaced by
// defaults, building itself never fails.
type Builder struct {
	Source     news.Source      // headlines, nil means not configured
	Summarizer Summarizer       // root connection writer, optional
	Matcher    *roots.Matcher   // default archive articles if nil
	PageSize   int              // headlines to request
	Now        func() time.Time // clock, time.Now if nil
}

// Build fetches headlines and assembles the snapshot. The ticker comes from the first
// headlines even if none of them matched an archive article.
func (b *Builder) Build(ctx context.Context) domain.Snapshot {
	snap := domain.Snapshot{
		Generated:      b.now().Format(timeLayout),
		Ticker:         append([]string(nil), DefaultTicker...),
		TomorrowTeaser: DefaultTeaser,
	}

	res := news.Fetch(ctx, b.Source, b.pageSize())
	switch {
	case res.NotConfigured():
		lgr.Printf("[WARN] news source not configured, using default stories")
	case !res.OK():
		lgr.Printf("[WARN] can't fetch headlines, using default stories: %v", res.Err)
	default:
		lgr.Printf("[INFO] fetched %d headlines", len(res.Items))
		if ticker := Ticker(res.Items); len(ticker) > 0 {
			snap.Ticker = ticker
		}
		snap.TopStories = b.stories(ctx, res.Items)
		lgr.Printf("[INFO] found %d root matches", len(snap.TopStories))
	}

	if len(snap.TopStories) == 0 {
		snap.TopStories = append([]domain.Story(nil), FallbackStories...)
	}
	return snap
}

// Ticker returns up to MaxTicker headlines of the first items, without the source suffix
func Ticker(items []domain.NewsItem) []string {
	if len(items) > MaxTicker {
		items = items[:MaxTicker]
	}
	res := make([]string, 0, len(items))
	for _, it := range items {
		if title := domain.StripSourceSuffix(it.Title); title != "" {
			res = append(res, title)
		}
	}
	return res
}

// stories matches items to archive articles in order and stops after MaxStories matches
func (b *Builder) stories(ctx context.Context, items []domain.NewsItem) []domain.Story {
	matcher := b.Matcher
	if matcher == nil {
		matcher = roots.NewMatcher(nil)
	}

	var res []domain.Story
	for _, it := range items {
		if len(res) >= MaxStories {
			break
		}
		match, ok := matcher.Match(it.Title, it.Description)
		if !ok {
			continue
		}
		lgr.Printf("[DEBUG] matched %q to %s", domain.Truncate(it.Title, 60), match.Slug)
		story := domain.Story{
			Slug:           match.Slug,
			Headline:       it.Title,
			Category:       match.Category,
			IsHero:         len(res) == 0,
			RootConnection: b.rootConnection(ctx, it.Title, match.Slug),
			PublishedAt:    it.PublishedAt,
		}
		if name := strings.TrimSpace(it.Source.Name); name != "" {
			story.NewsSource = &name
		}
		res = append(res, story)
	}
	return res
}

func (b *Builder) rootConnection(ctx context.Context, headline, slug string) *string {
	if b.Summarizer == nil {
		return nil
	}
	res := b.Summarizer.RootConnection(ctx, headline, slug)
	if res.Text == "" {
		return nil
	}
	return &res.Text
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now().UTC()
	}
	return time.Now().UTC()
}

func (b *Builder) pageSize() int {
	if b.PageSize > 0 {
		return b.PageSize
	}
	return DefaultPageSize
}

// Write saves the snapshot to path, or prints it to dryRun if set
func Write(path string, snap domain.Snapshot, dryRun io.Writer) error {
	if dryRun == nil {
		if err := store.Save(path, snap); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		return nil
	}
	data, err := store.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := fmt.Fprintf(dryRun, "[DRY RUN] would write %s:\n%s", path, data); err != nil {
		return fmt.Errorf("write dry run output: %w", err)
	}
	return nil
}
