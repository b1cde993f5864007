package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rootbyte/pkg/domain"
	"github.com/umputun/rootbyte/pkg/frontmatter"
)

const ext = ".md"

// ErrNoArticlesDir returned when the articles directory doesn't exist
var ErrNoArticlesDir = errors.New("articles directory not found")

// ErrArticleNotFound returned when there is no file for the requested slug
var ErrArticleNotFound = errors.New("article not found")

// Store gives access to markdown articles in a directory, one file per article
type Store struct {
	dir string
}

// NewStore makes a store for the given articles directory
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns articles directory
func (s *Store) Dir() string {
	return s.dir
}

// Path returns file path for the slug
func (s *Store) Path(slug string) string {
	return filepath.Join(s.dir, slug+ext)
}

// Files returns names of all markdown files in the directory, in directory order
func (s *Store) Files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoArticlesDir, s.dir)
		}
		return nil, fmt.Errorf("read articles dir %s: %w", s.dir, err)
	}

	res := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		res = append(res, e.Name())
	}
	return res, nil
}

// Load reads and parses all articles, drafts included. Missing directory or unreadable file
// is an error.
func (s *Store) Load() ([]domain.Article, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(s.dir, name)) //nolint:gosec // path built from directory listing
		if err != nil {
			return nil, fmt.Errorf("read article %s: %w", name, err)
		}
		doc := frontmatter.Parse(string(data))
		articles = append(articles, domain.Article{
			Slug: strings.TrimSuffix(name, ext),
			Meta: doc.Meta,
			Keys: doc.Keys,
			Body: doc.Body,
		})
	}
	lgr.Printf("[DEBUG] loaded %d articles from %s", len(articles), s.dir)
	return articles, nil
}

// Published returns only articles with published status
func Published(articles []domain.Article) []domain.Article {
	res := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublished() {
			res = append(res, a)
		}
	}
	return res
}

// SetStatus patches status key of the article frontmatter in place
func (s *Store) SetStatus(slug, status string) error {
	if status != domain.StatusDraft && status != domain.StatusPublished {
		return fmt.Errorf("invalid status %q", status)
	}

	path := s.Path(slug)
	data, err := os.ReadFile(path) //nolint:gosec // path built from slug
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrArticleNotFound, slug)
		}
		return fmt.Errorf("read article %s: %w", slug, err)
	}

	patched := frontmatter.SetField(string(data), "status", status)
	if err := os.WriteFile(path, []byte(patched), 0o644); err != nil { //nolint:gosec // content files are public
		return fmt.Errorf("write article %s: %w", slug, err)
	}
	lgr.Printf("[INFO] %s marked as %s", slug, status)
	return nil
}
