package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/umputun/rootbyte/pkg/breaking"
	"github.com/umputun/rootbyte/pkg/roots"
	"github.com/umputun/rootbyte/pkg/spike"
	"github.com/umputun/rootbyte/pkg/trending"
)

// BreakingCmd checks headlines for a spike and updates the breaking record
type BreakingCmd struct {
	DryRun bool   `long:"dry-run" description:"print the record instead of writing it"`
	Clear  bool   `long:"clear" description:"deactivate breaking news"`
	Set    string `long:"set" value-name:"headline" description:"set breaking news manually"`
	env    *cmdEnv
}

// Execute runs the command
func (c *BreakingCmd) Execute([]string) error {
	if c.Clear && c.Set != "" {
		return errors.New("--clear and --set can't be used together")
	}
	m := c.manager()

	switch {
	case c.Clear:
		if err := m.Clear(); err != nil {
			return fmt.Errorf("failed to clear breaking news: %w", err)
		}
		_, err := fmt.Fprintln(c.env.out, "breaking news cleared")
		return err
	case c.Set != "":
		rec, err := m.Set(c.Set)
		if err != nil {
			return fmt.Errorf("failed to set breaking news: %w", err)
		}
		_, err = fmt.Fprintf(c.env.out, "breaking news set, expires %s\n", rec.Expires)
		return err
	}

	action, err := m.Check(c.env.ctx)
	if err != nil {
		return fmt.Errorf("breaking check failed: %w", err)
	}
	_, err = fmt.Fprintf(c.env.out, "breaking news %s\n", action)
	return err
}

func (c *BreakingCmd) manager() *breaking.Manager {
	cfg := c.env.cfg
	keywords := cfg.Breaking.Keywords
	if len(keywords) == 0 {
		keywords = spike.DefaultKeywords
	}
	var dry io.Writer
	if c.DryRun {
		dry = c.env.out
	}
	return &breaking.Manager{
		Path:       cfg.ContentPath(cfg.Breaking.Output),
		Source:     c.env.newsSource(),
		Summarizer: c.env.summarizer(),
		Detector:   &spike.Detector{Keywords: keywords, Threshold: cfg.Breaking.Threshold},
		Expires:    cfg.Breaking.Expires,
		PageSize:   cfg.Breaking.PageSize,
		Replace:    cfg.Breaking.Replace,
		DryRun:     dry,
		Now:        c.env.now,
	}
}

// TrendingCmd builds the daily snapshot
type TrendingCmd struct {
	DryRun bool `long:"dry-run" description:"print the snapshot instead of writing it"`
	env    *cmdEnv
}

// Execute runs the command
func (c *TrendingCmd) Execute([]string) error {
	cfg := c.env.cfg
	b := &trending.Builder{
		Source:     c.env.newsSource(),
		Summarizer: c.env.summarizer(),
		Matcher:    roots.NewMatcher(c.env.rootArticles()),
		PageSize:   cfg.Trending.PageSize,
		Now:        c.env.now,
	}
	snap := b.Build(c.env.ctx)

	var dry io.Writer
	if c.DryRun {
		dry = c.env.out
	}
	path := cfg.ContentPath(cfg.Trending.Output)
	if err := trending.Write(path, snap, dry); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if c.DryRun {
		return nil
	}
	_, err := fmt.Fprintf(c.env.out, "written %s, %d stories, %d ticker items\n", path, len(snap.TopStories), len(snap.Ticker))
	return err
}
