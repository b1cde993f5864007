package content

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rootbyte/pkg/domain"
)

// scaffold defaults
const (
	DefaultTitle      = "Article Title Here"
	defaultSlugPrefix = "new-article-"
)

// Draft describes a new article to scaffold. Empty fields get defaults.
type Draft struct {
	Slug     string
	Title    string
	Category string
}

// Scaffold writes a draft article from the standard template and returns its path.
// An existing file with the same slug is overwritten.
func (s *Store) Scaffold(d Draft, now time.Time) (string, error) {
	d = d.withDefaults(now)
	if strings.ContainsAny(d.Slug, `/\`) {
		return "", fmt.Errorf("invalid slug %q", d.Slug)
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("make articles dir %s: %w", s.dir, err)
	}

	path := s.Path(d.Slug)
	if _, err := os.Stat(path); err == nil {
		lgr.Printf("[WARN] article %s already exists, overwriting", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("check article %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(Template(d, now)), 0o644); err != nil { //nolint:gosec // content files are public
		return "", fmt.Errorf("write article %s: %w", path, err)
	}
	lgr.Printf("[INFO] created article %s", path)
	return path, nil
}

// Template renders markdown of a new draft article
func Template(d Draft, now time.Time) string {
	d = d.withDefaults(now)
	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: \"%s\"\n", d.Title)
	fmt.Fprintf(&sb, "date: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&sb, "category: %s\n", d.Category)
	sb.WriteString("tags: []\n")
	sb.WriteString("root_year: 1900\n")
	sb.WriteString("root_who: \"\"\n")
	sb.WriteString("root_where: \"\"\n")
	sb.WriteString("root_connection: \"\"\n")
	sb.WriteString("dyk_fact: \"\"\n")
	sb.WriteString("tomorrow_teaser: false\n")
	fmt.Fprintf(&sb, "hero_image: /images/articles/%s.webp\n", d.Slug)
	sb.WriteString("reading_time: 6\n")
	fmt.Fprintf(&sb, "status: %s\n", domain.StatusDraft)
	sb.WriteString("---\n\n")
	sb.WriteString("## The Modern Story\n\n")
	sb.WriteString("## ROOT: Going Back to [YEAR]\n\n")
	sb.WriteString("## Did You Know\n\n")
	sb.WriteString("## Why It Matters Today\n")
	return sb.String()
}

func (d Draft) withDefaults(now time.Time) Draft {
	if d.Slug == "" {
		d.Slug = defaultSlugPrefix + strconv.FormatInt(now.UnixMilli(), 10)
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.Category == "" {
		d.Category = domain.DefaultCategory
	}
	return d
}
