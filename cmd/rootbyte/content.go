package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/umputun/rootbyte/pkg/carousel"
	"github.com/umputun/rootbyte/pkg/content"
	"github.com/umputun/rootbyte/pkg/domain"
	"github.com/umputun/rootbyte/pkg/index"
	"github.com/umputun/rootbyte/pkg/store"
)

// NewCmd scaffolds a draft article
type NewCmd struct {
	Args struct {
		Slug     string `positional-arg-name:"slug"`
		Title    string `positional-arg-name:"title"`
		Category string `positional-arg-name:"category"`
	} `positional-args:"yes"`
	env *cmdEnv
}

// Execute runs the command
func (c *NewCmd) Execute([]string) error {
	d := content.Draft{Slug: c.Args.Slug, Title: c.Args.Title, Category: c.Args.Category}
	path, err := c.env.articles().Scaffold(d, c.env.timeNow())
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	_, err = fmt.Fprintf(c.env.out, "created %s\n", path)
	return err
}

// ValidateCmd checks every article and fails if any has errors
type ValidateCmd struct {
	env *cmdEnv
}

// Execute runs the command
func (c *ValidateCmd) Execute([]string) error {
	rep, err := c.env.articles().Validate(c.env.timeNow())
	if err != nil {
		return fmt.Errorf("failed to validate: %w", err)
	}

	ok, bad := color.New(color.FgGreen).SprintFunc(), color.New(color.FgRed).SprintFunc()
	var sb strings.Builder
	for _, r := range rep.Results {
		if r.Valid() {
			fmt.Fprintf(&sb, "%s %s, %d words\n", ok("✓"), r.File, r.Words)
			continue
		}
		fmt.Fprintf(&sb, "%s %s\n", bad("✗"), r.File)
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "    %s\n", e)
		}
	}
	fmt.Fprintf(&sb, "%d of %d files valid, %d errors\n", rep.ValidCount(), len(rep.Results), rep.ErrorCount())
	if _, err := fmt.Fprint(c.env.out, sb.String()); err != nil {
		return err
	}

	if n := rep.ErrorCount(); n > 0 {
		return fmt.Errorf("validation failed with %d errors", n)
	}
	return nil
}

// ListCmd prints articles
type ListCmd struct {
	Status string `long:"status" choice:"draft" choice:"published" description:"show only articles with this status"`
	env    *cmdEnv
}

// Execute runs the command
func (c *ListCmd) Execute([]string) error {
	articles, err := c.env.articles().Load()
	if err != nil {
		return fmt.Errorf("failed to load articles: %w", err)
	}

	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		if c.Status != "" && a.Status() != c.Status {
			continue
		}
		rows = append(rows, []string{a.Slug, a.Meta.StringOr("title", "Untitled"), a.Category(), a.Status(),
			a.Meta.String("date")})
	}
	if len(rows) == 0 {
		_, err = fmt.Fprintln(c.env.out, "no articles")
		return err
	}
	return renderTable(c.env.out, []string{"SLUG", "TITLE", "CATEGORY", "STATUS", "DATE"}, rows)
}

// StatsCmd prints article counts
type StatsCmd struct {
	env *cmdEnv
}

// Execute runs the command
func (c *StatsCmd) Execute([]string) error {
	articles, err := c.env.articles().Load()
	if err != nil {
		return fmt.Errorf("failed to load articles: %w", err)
	}
	st := content.MakeStats(articles)

	out := c.env.out
	if _, err := fmt.Fprintf(out, "total: %s, published: %s, drafts: %s\n\n",
		humanize.Comma(int64(st.Total)), humanize.Comma(int64(st.Published)), humanize.Comma(int64(st.Drafts))); err != nil {
		return err
	}
	if err := renderTable(out, []string{"CATEGORY", "ARTICLES"}, countRows(st.ByCategory)); err != nil {
		return err
	}
	if len(st.ByEra) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	return renderTable(out, []string{"ERA", "ARTICLES"}, countRows(st.ByEra))
}

func countRows(counts []content.Count) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Name, humanize.Comma(int64(c.Count))})
	}
	return rows
}

// PublishCmd marks an article as published
type PublishCmd struct {
	Args struct {
		Slug string `positional-arg-name:"slug" required:"yes"`
	} `positional-args:"yes"`
	env *cmdEnv
}

// Execute runs the command
func (c *PublishCmd) Execute([]string) error {
	return setStatus(c.env, c.Args.Slug, domain.StatusPublished)
}

// DraftCmd marks an article as draft
type DraftCmd struct {
	Args struct {
		Slug string `positional-arg-name:"slug" required:"yes"`
	} `positional-args:"yes"`
	env *cmdEnv
}

// Execute runs the command
func (c *DraftCmd) Execute([]string) error {
	return setStatus(c.env, c.Args.Slug, domain.StatusDraft)
}

func setStatus(env *cmdEnv, slug, status string) error {
	if err := env.articles().SetStatus(slug, status); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	_, err := fmt.Fprintf(env.out, "%s is %s\n", slug, status)
	return err
}

// FactsCmd prints did-you-know facts, or the one shown on a given day
type FactsCmd struct {
	Day int `long:"day" default:"-1" description:"show the fact of day N, facts rotate in order"`
	env *cmdEnv
}

// Execute runs the command
func (c *FactsCmd) Execute([]string) error {
	path := c.env.cfg.ContentPath(index.FactsFile)
	facts, _, err := store.Load[[]domain.Fact](path)
	if err != nil {
		return fmt.Errorf("failed to load facts: %w", err)
	}
	if len(facts) == 0 {
		_, err = fmt.Fprintln(c.env.out, "no facts")
		return err
	}

	if c.Day >= 0 {
		f := facts[carousel.New(len(facts)).Select(c.Day).Index]
		_, err = fmt.Fprintf(c.env.out, "%s [%s] %s\n", f.ID, f.Category, f.Fact)
		return err
	}

	rows := make([][]string, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, []string{f.ID, f.Category, domain.FormatValue(f.RootYear), f.SourceArticle, f.Fact})
	}
	return renderTable(c.env.out, []string{"ID", "CATEGORY", "YEAR", "ARTICLE", "FACT"}, rows)
}
