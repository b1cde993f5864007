package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/rootbyte/pkg/backup"
	"github.com/umputun/rootbyte/pkg/index"
)

// BuildCmd regenerates categories.json, did-you-know.json, sitemap.xml and feed.xml
type BuildCmd struct {
	Watch bool `short:"w" long:"watch" description:"rebuild on article changes"`
	env   *cmdEnv
}

// Execute runs the command
func (c *BuildCmd) Execute([]string) error {
	cfg := c.env.cfg
	b := &index.Builder{
		Articles:    c.env.articles(),
		ContentDir:  cfg.Site.ContentDir,
		SitemapPath: cfg.Site.Sitemap,
		Sitemap:     index.NewSitemap(cfg.Site.BaseURL, cfg.Site.Categories),
		FeedPath:    cfg.Site.Feed,
		Feed:        index.NewFeed(cfg.Site.BaseURL, index.DefaultFeedSize),
	}

	build := func(ctx context.Context) error {
		rep, err := b.Run(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.env.out, "built in %v: %d articles, %d facts (%d new), %d sitemap urls, %d feed items\n",
			rep.Duration.Round(time.Millisecond), rep.Articles, rep.Facts, rep.NewFacts, rep.SitemapURLs, rep.FeedItems)
		return err
	}

	if err := build(c.env.ctx); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if !c.Watch {
		return nil
	}

	lgr.Printf("[INFO] watching %s for changes", cfg.Site.ArticlesDir)
	w := &index.Watcher{Dir: cfg.Site.ArticlesDir, Build: build}
	if err := w.Run(c.env.ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

// BackupCmd copies the content directory into a timestamped backup
type BackupCmd struct {
	env *cmdEnv
}

// Execute runs the command
func (c *BackupCmd) Execute([]string) error {
	cfg := c.env.cfg
	b := &backup.Backup{Source: cfg.Site.ContentDir, Dir: cfg.Backup.Dir, Keep: cfg.Backup.Keep, Now: c.env.now}
	rep, err := b.Run(c.env.ctx)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "backup %s, %d files, %s\n", rep.Path, rep.Files, rep.Size())
	if len(rep.Removed) > 0 {
		fmt.Fprintf(&sb, "removed old backups: %s\n", strings.Join(rep.Removed, ", "))
	}
	_, err = fmt.Fprint(c.env.out, sb.String())
	return err
}
