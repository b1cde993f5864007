// Package breaking maintains the breaking news record. It watches current headlines for a
// keyword spike and keeps breaking.json active while the spike lasts.
package breaking

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rootbyte/pkg/config"
	"github.com/umputun/rootbyte/pkg/domain"
	"github.com/umputun/rootbyte/pkg/llm"
	"github.com/umputun/rootbyte/pkg/news"
	"github.com/umputun/rootbyte/pkg/spike"
	"github.com/umputun/rootbyte/pkg/store"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports ../news Source
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// defaults of the manager
const (
	DefaultExpires  = 12 * time.Hour
	DefaultPageSize = 30
)

// record limits and templates
const (
	headlinePrefix = "BREAKING: "
	shortLen       = 120
	manualShortLen = 100
	manualBody     = "<p>%s</p><p>This story is being monitored. Check back for updates.</p>"
	timeLayout     = "2006-01-02T15:04:05.000Z07:00"
)

// Summarizer writes the html body of a breaking record
type Summarizer interface {
	BreakingBody(ctx context.Context, headline string, items []domain.NewsItem) llm.Result
}

// Action tells what Check did
type Action int

// check actions
const (
	NoChange    Action = iota // nothing written
	Expired                   // active record expired and was deactivated
	Deactivated               // no spike, active record deactivated
	Activated                 // spike found, record written
	Kept                      // spike found, but the current record is stronger
	Skipped                   // news source not configured
)

func (a Action) String() string {
	switch a {
	case NoChange:
		return "no change"
	case Expired:
		return "expired"
	case Deactivated:
		return "deactivated"
	case Activated:
		return "activated"
	case Kept:
		return "kept"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Manager reads, checks and writes the breaking record
type Manager struct {
	Path       string           // breaking.json location
	Source     news.Source      // headlines, nil means not configured
	Summarizer Summarizer       // body writer
	Detector   *spike.Detector  // spike detection, default detector if nil
	Expires    time.Duration    // record lifetime
	PageSize   int              // headlines to check
	Replace    string           // policy for a new spike while a record is active
	DryRun     io.Writer        // if set, records printed here instead of written
	Now        func() time.Time // clock, time.Now if nil
}

// Current returns the stored record. Missing and corrupt files are the inactive record.
func (m *Manager) Current() (domain.Breaking, error) {
	rec, state, err := store.Load[domain.Breaking](m.Path)
	if err != nil {
		return domain.Breaking{}, fmt.Errorf("load breaking record: %w", err)
	}
	if state != store.Found {
		return domain.InactiveBreaking(), nil
	}
	return rec, nil
}

// Clear writes the inactive record unconditionally
func (m *Manager) Clear() error {
	if err := m.write(domain.InactiveBreaking()); err != nil {
		return err
	}
	lgr.Printf("[INFO] breaking news cleared")
	return nil
}

// Set writes an active record for the manually given headline
func (m *Manager) Set(headline string) (domain.Breaking, error) {
	headline = strings.TrimSpace(headline)
	if headline == "" {
		return domain.Breaking{}, errors.New("empty headline")
	}
	now := m.now()
	rec := domain.Breaking{
		Active:    true,
		Headline:  headline,
		Short:     domain.Truncate(headline, manualShortLen),
		Category:  domain.BreakingCategory,
		Timestamp: now.Format(timeLayout),
		Link:      domain.BreakingLink,
		Expires:   now.Add(m.expires()).Format(timeLayout),
		Body:      fmt.Sprintf(manualBody, html.EscapeString(headline)),
	}
	if err := m.write(rec); err != nil {
		return domain.Breaking{}, err
	}
	lgr.Printf("[INFO] manual breaking news set, expires %s", rec.Expires)
	return rec, nil
}

// Check runs one detection cycle. Expired record is deactivated first and nothing else is done.
// Fetch errors are returned, missing news configuration is not an error.
func (m *Manager) Check(ctx context.Context) (Action, error) {
	current, err := m.Current()
	if err != nil {
		return NoChange, err
	}
	now := m.now()

	if current.ExpiredAt(now) {
		lgr.Printf("[INFO] breaking news expired at %s, deactivating", current.Expires)
		if err := m.write(domain.InactiveBreaking()); err != nil {
			return NoChange, err
		}
		return Expired, nil
	}
	if current.Active {
		lgr.Printf("[INFO] breaking news %q is active, checking for a stronger story", current.Headline)
	}

	res := news.Fetch(ctx, m.Source, m.pageSize())
	if res.NotConfigured() {
		lgr.Printf("[WARN] news source not configured, skipping breaking check")
		return Skipped, nil
	}
	if !res.OK() {
		return NoChange, fmt.Errorf("fetch headlines: %w", res.Err)
	}
	lgr.Printf("[DEBUG] fetched %d headlines", len(res.Items))

	detector := m.Detector
	if detector == nil {
		detector = spike.NewDetector()
	}
	sp, ok := detector.Detect(res.Items)
	if !ok {
		if !current.Active {
			lgr.Printf("[INFO] no spike detected, breaking news already inactive")
			return NoChange, nil
		}
		lgr.Printf("[INFO] no spike detected, deactivating breaking news")
		if err := m.write(domain.InactiveBreaking()); err != nil {
			return NoChange, err
		}
		return Deactivated, nil
	}
	lgr.Printf("[INFO] spike detected, %q in %d headlines", sp.Keyword, sp.Count())

	if m.Replace == config.ReplaceStronger && current.Active && current.SpikeCount > sp.Count() {
		lgr.Printf("[INFO] keeping current breaking news, %q in %d headlines is stronger",
			current.SpikeKeyword, current.SpikeCount)
		return Kept, nil
	}

	rec := m.record(ctx, sp, now)
	if err := m.write(rec); err != nil {
		return NoChange, err
	}
	lgr.Printf("[INFO] breaking news set to %q, expires %s", rec.Headline, rec.Expires)
	return Activated, nil
}

// record makes the active record for the spike, headline and short text come from the first item
func (m *Manager) record(ctx context.Context, sp spike.Spike, now time.Time) domain.Breaking {
	first := sp.Items[0]
	headline := headlinePrefix + domain.StripSourceSuffix(first.Title)
	short := domain.Truncate(first.Description, shortLen)
	if strings.TrimSpace(short) == "" {
		short = headline
	}

	body := m.Summarizer.BreakingBody(ctx, headline, sp.Items)
	return domain.Breaking{
		Active:       true,
		Headline:     headline,
		Short:        short,
		Category:     domain.BreakingCategory,
		Timestamp:    now.Format(timeLayout),
		Link:         domain.BreakingLink,
		Expires:      now.Add(m.expires()).Format(timeLayout),
		Body:         body.Text,
		SpikeKeyword: sp.Keyword,
		SpikeCount:   sp.Count(),
	}
}

func (m *Manager) write(rec domain.Breaking) error {
	if m.DryRun != nil {
		data, err := store.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal breaking record: %w", err)
		}
		if _, err := fmt.Fprintf(m.DryRun, "[DRY RUN] would write %s:\n%s", m.Path, data); err != nil {
			return fmt.Errorf("write dry run output: %w", err)
		}
		return nil
	}
	if err := store.Save(m.Path, rec); err != nil {
		return fmt.Errorf("save breaking record: %w", err)
	}
	return nil
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *Manager) expires() time.Duration {
	if m.Expires > 0 {
		return m.Expires
	}
	return DefaultExpires
}

func (m *Manager) pageSize() int {
	if m.PageSize > 0 {
		return m.PageSize
	}
	return DefaultPageSize
}
