package main

import (
	"context"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/umputun/rootbyte/pkg/config"
	"github.com/umputun/rootbyte/pkg/content"
	"github.com/umputun/rootbyte/pkg/llm"
	"github.com/umputun/rootbyte/pkg/news"
	"github.com/umputun/rootbyte/pkg/roots"
)

// cmdEnv is shared by all commands, cfg is set after options are parsed
type cmdEnv struct {
	ctx context.Context
	out io.Writer
	cfg *config.Config
	now func() time.Time
}

func (e *cmdEnv) timeNow() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

func (e *cmdEnv) articles() *content.Store {
	return content.NewStore(e.cfg.Site.ArticlesDir)
}

// newsSource makes the configured headline provider
func (e *cmdEnv) newsSource() news.Source {
	if e.cfg.News.Provider == config.ProviderRSS {
		feeds := make([]news.Feed, 0, len(e.cfg.News.Feeds))
		for _, f := range e.cfg.News.Feeds {
			feeds = append(feeds, news.Feed{Name: f.Name, URL: f.URL})
		}
		return news.NewRSS(feeds, e.cfg.News.Timeout, nil)
	}
	return news.NewNewsAPI(news.NewsAPIParams{
		Endpoint: e.cfg.News.Endpoint,
		APIKey:   e.cfg.News.APIKey,
		Category: e.cfg.News.Category,
		Language: e.cfg.News.Language,
		Timeout:  e.cfg.News.Timeout,
		Attempts: e.cfg.News.Attempts,
	})
}

func (e *cmdEnv) summarizer() *llm.Summarizer {
	return llm.NewSummarizer(e.cfg.LLM)
}

// rootArticles returns configured archive articles, nil means defaults
func (e *cmdEnv) rootArticles() []roots.KnownArticle {
	if len(e.cfg.Trending.Roots) == 0 {
		return nil
	}
	res := make([]roots.KnownArticle, 0, len(e.cfg.Trending.Roots))
	for _, r := range e.cfg.Trending.Roots {
		res = append(res, roots.KnownArticle{Slug: r.Slug, Category: r.Category, Keywords: r.Keywords})
	}
	return res
}

// renderTable writes rows as a borderless left aligned table
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders:  tw.BorderNone,
			Settings: tw.Settings{Separators: tw.Separators{ShowHeader: tw.Off}},
		}),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
