package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
site:
  base_url: https://example.com
  articles_dir: content/articles
  content_dir: content
  categories: [ai, space]

news:
  provider: rss
  timeout: 5s
  attempts: 3
  feeds:
    - name: Verge
      url: https://www.theverge.com/rss/index.xml

llm:
  api_key: ${TEST_LLM_KEY}
  model: gemini-1.5-pro
  temperature: 0.2
  timeout: 20s

breaking:
  threshold: 5
  expires: 6h
  replace: stronger
  keywords: [openai, nvidia]

trending:
  page_size: 10
  roots:
    - slug: apollo-11
      category: space
      keywords: [moon, nasa]

backup:
  keep: 3
`
		t.Setenv("TEST_LLM_KEY", "llm-secret")
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
		assert.Equal(t, "content/articles", cfg.Site.ArticlesDir)
		assert.Equal(t, []string{"ai", "space"}, cfg.Site.Categories)
		assert.Equal(t, filepath.Join("src", "sitemap.xml"), cfg.Site.Sitemap, "default kept")

		assert.Equal(t, ProviderRSS, cfg.News.Provider)
		assert.Equal(t, 5*time.Second, cfg.News.Timeout)
		assert.Equal(t, 3, cfg.News.Attempts)
		require.Len(t, cfg.News.Feeds, 1)
		assert.Equal(t, "Verge", cfg.News.Feeds[0].Name)

		assert.Equal(t, "llm-secret", cfg.LLM.APIKey, "env expanded")
		assert.Equal(t, "gemini-1.5-pro", cfg.LLM.Model)
		assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.0001)
		assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)

		assert.Equal(t, 5, cfg.Breaking.Threshold)
		assert.Equal(t, 6*time.Hour, cfg.Breaking.Expires)
		assert.Equal(t, ReplaceStronger, cfg.Breaking.Replace)
		assert.Equal(t, []string{"openai", "nvidia"}, cfg.Breaking.Keywords)

		assert.Equal(t, 10, cfg.Trending.PageSize)
		require.Len(t, cfg.Trending.Roots, 1)
		assert.Equal(t, RootArticle{Slug: "apollo-11", Category: "space", Keywords: []string{"moon", "nasa"}}, cfg.Trending.Roots[0])

		assert.Equal(t, 3, cfg.Backup.Keep)
		assert.Equal(t, "backups", cfg.Backup.Dir)
	})

	t.Run("defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte("site:\n  base_url: https://rootbyte.com\n"), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte("site: [unclosed"), 0o644)
		require.NoError(t, err)

		_, err = Load(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("validation error", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte("breaking:\n  replace: sometimes\n"), 0o644)
		require.NoError(t, err)

		_, err = Load(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "breaking.replace")
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://rootbyte.com", cfg.Site.BaseURL)
	assert.Equal(t, filepath.Join("src", "content", "articles"), cfg.Site.ArticlesDir)
	assert.Equal(t, filepath.Join("src", "feed.xml"), cfg.Site.Feed)
	assert.Equal(t, ProviderNewsAPI, cfg.News.Provider)
	assert.Equal(t, "https://newsapi.org/v2/top-headlines", cfg.News.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.News.Timeout)
	assert.Equal(t, 1, cfg.News.Attempts)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, time.Duration(0), cfg.LLM.Timeout, "no llm timeout by default")
	assert.Equal(t, 4, cfg.Breaking.Threshold)
	assert.Equal(t, 12*time.Hour, cfg.Breaking.Expires)
	assert.Equal(t, 30, cfg.Breaking.PageSize)
	assert.Equal(t, ReplaceAlways, cfg.Breaking.Replace)
	assert.Equal(t, 20, cfg.Trending.PageSize)
	assert.Equal(t, 10, cfg.Backup.Keep)
	require.NoError(t, validate(cfg))
}

func TestValidate(t *testing.T) {
	tbl := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"bad provider", func(c *Config) { c.News.Provider = "twitter" }, "news.provider"},
		{"zero attempts", func(c *Config) { c.News.Attempts = 0 }, "news.attempts"},
		{"feed without url", func(c *Config) { c.News.Feeds = []FeedConfig{{Name: "x"}} }, "news.feeds[0].url"},
		{"temperature", func(c *Config) { c.LLM.Temperature = 3 }, "llm.temperature"},
		{"threshold", func(c *Config) { c.Breaking.Threshold = -1 }, "breaking.threshold"},
		{"expires", func(c *Config) { c.Breaking.Expires = time.Second }, "breaking.expires"},
		{"page size", func(c *Config) { c.Breaking.PageSize = 500 }, "breaking.page_size"},
		{"trending page size", func(c *Config) { c.Trending.PageSize = 0 }, "trending.page_size"},
		{"root without slug", func(c *Config) { c.Trending.Roots = []RootArticle{{Category: "ai"}} }, "trending.roots[0].slug"},
		{"keep", func(c *Config) { c.Backup.Keep = 0 }, "backup.keep"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_ContentPath(t *testing.T) {
	cfg := Default()
	cfg.Site.ContentDir = "site/content"
	assert.Equal(t, filepath.Join("site", "content", "breaking.json"), cfg.ContentPath("breaking.json"))
	assert.Equal(t, "/tmp/out.json", cfg.ContentPath("/tmp/out.json"))
}
