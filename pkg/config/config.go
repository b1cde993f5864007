package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// news providers
const (
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// breaking replace policies
const (
	ReplaceAlways   = "always"
	ReplaceStronger = "stronger"
)

// Config holds the application configuration
type Config struct {
	Site     SiteConfig     `yaml:"site" json:"site" jsonschema:"description=Site layout and public address"`
	News     NewsConfig     `yaml:"news" json:"news" jsonschema:"description=Headline provider configuration"`
	LLM      LLMConfig      `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for generated copy"`
	Breaking BreakingConfig `yaml:"breaking" json:"breaking" jsonschema:"description=Breaking news spike detection"`
	Trending TrendingConfig `yaml:"trending" json:"trending" jsonschema:"description=Trending snapshot configuration"`
	Backup   BackupConfig   `yaml:"backup" json:"backup" jsonschema:"description=Content backup configuration"`
}

// SiteConfig holds paths of the content tree and the public base url
type SiteConfig struct {
	BaseURL     string   `yaml:"base_url" json:"base_url" jsonschema:"default=https://rootbyte.com,description=Public site address used in sitemap"`
	ArticlesDir string   `yaml:"articles_dir" json:"articles_dir" jsonschema:"default=src/content/articles,description=Directory with markdown articles"`
	ContentDir  string   `yaml:"content_dir" json:"content_dir" jsonschema:"default=src/content,description=Directory for generated json files"`
	Sitemap     string   `yaml:"sitemap" json:"sitemap" jsonschema:"default=src/sitemap.xml,description=Sitemap output path"`
	Feed        string   `yaml:"feed" json:"feed" jsonschema:"default=src/feed.xml,description=RSS feed of published articles"`
	Categories  []string `yaml:"categories" json:"categories" jsonschema:"description=Categories with a page in sitemap"`
}

// NewsConfig holds headline provider settings
type NewsConfig struct {
	Provider string        `yaml:"provider" json:"provider" jsonschema:"default=newsapi,enum=newsapi,enum=rss,description=Headline provider"`
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://newsapi.org/v2/top-headlines,description=NewsAPI top headlines endpoint"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"description=NewsAPI key (can use environment variable)"`
	Category string        `yaml:"category" json:"category" jsonschema:"default=technology,description=NewsAPI category"`
	Language string        `yaml:"language" json:"language" jsonschema:"default=en,description=NewsAPI language"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout"`
	Attempts int           `yaml:"attempts" json:"attempts" jsonschema:"default=1,minimum=1,description=Total request attempts"`
	Feeds    []FeedConfig  `yaml:"feeds" json:"feeds" jsonschema:"description=RSS feeds for the rss provider"`
}

// FeedConfig is a single RSS/Atom feed
type FeedConfig struct {
	Name string `yaml:"name" json:"name" jsonschema:"description=Source name shown in stories"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// LLMConfig holds LLM configuration for generated copy
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://generativelanguage.googleapis.com/v1beta/openai/,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"default=gemini-2.0-flash,description=Model name"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=400,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"description=Request timeout (none if not set)"`
}

// BreakingConfig holds spike detection and breaking record settings
type BreakingConfig struct {
	Threshold int           `yaml:"threshold" json:"threshold" jsonschema:"default=4,minimum=1,description=Items sharing a keyword to call it a spike"`
	Expires   time.Duration `yaml:"expires" json:"expires" jsonschema:"default=12h,description=Lifetime of a breaking record"`
	PageSize  int           `yaml:"page_size" json:"page_size" jsonschema:"default=30,minimum=1,maximum=100,description=Headlines to check"`
	Replace   string        `yaml:"replace" json:"replace" jsonschema:"default=always,enum=always,enum=stronger,description=What to do with a new spike while a record is active"`
	Keywords  []string      `yaml:"keywords" json:"keywords" jsonschema:"description=Tracked keywords in priority order"`
	Output    string        `yaml:"output" json:"output" jsonschema:"default=breaking.json,description=Breaking record file relative to content dir"`
}

// TrendingConfig holds trending snapshot settings
type TrendingConfig struct {
	PageSize int           `yaml:"page_size" json:"page_size" jsonschema:"default=20,minimum=1,maximum=100,description=Headlines to check"`
	Output   string        `yaml:"output" json:"output" jsonschema:"default=daily-update.json,description=Snapshot file relative to content dir"`
	Roots    []RootArticle `yaml:"roots" json:"roots" jsonschema:"description=Archive articles matched to headlines"`
}

// RootArticle is an archive article and keywords linking headlines to it
type RootArticle struct {
	Slug     string   `yaml:"slug" json:"slug" jsonschema:"required"`
	Category string   `yaml:"category" json:"category"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// BackupConfig holds content backup settings
type BackupConfig struct {
	Dir  string `yaml:"dir" json:"dir" jsonschema:"default=backups,description=Directory for backups"`
	Keep int    `yaml:"keep" json:"keep" jsonschema:"default=10,minimum=1,description=Number of backups to keep"`
}

// Default returns configuration with all defaults, used when no config file is given
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema check is supplementary, report and go on
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// ContentPath returns path of a generated file, relative names are placed into the content dir
func (c *Config) ContentPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Site.ContentDir, name)
}

func setDefaults(cfg *Config) {
	// site
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = "https://rootbyte.com"
	}
	if cfg.Site.ArticlesDir == "" {
		cfg.Site.ArticlesDir = filepath.Join("src", "content", "articles")
	}
	if cfg.Site.ContentDir == "" {
		cfg.Site.ContentDir = filepath.Join("src", "content")
	}
	if cfg.Site.Sitemap == "" {
		cfg.Site.Sitemap = filepath.Join("src", "sitemap.xml")
	}
	if cfg.Site.Feed == "" {
		cfg.Site.Feed = filepath.Join("src", "feed.xml")
	}
	if len(cfg.Site.Categories) == 0 {
		cfg.Site.Categories = []string{"ai", "devices", "internet", "crypto", "gaming", "space"}
	}

	// news
	if cfg.News.Provider == "" {
		cfg.News.Provider = ProviderNewsAPI
	}
	if cfg.News.Endpoint == "" {
		cfg.News.Endpoint = "https://newsapi.org/v2/top-headlines"
	}
	if cfg.News.Category == "" {
		cfg.News.Category = "technology"
	}
	if cfg.News.Language == "" {
		cfg.News.Language = "en"
	}
	if cfg.News.Timeout == 0 {
		cfg.News.Timeout = 10 * time.Second
	}
	if cfg.News.Attempts == 0 {
		cfg.News.Attempts = 1
	}

	// llm
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://generativelanguage.googleapis.com/v1beta/openai/"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.0-flash"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 400
	}

	// breaking
	if cfg.Breaking.Threshold == 0 {
		cfg.Breaking.Threshold = 4
	}
	if cfg.Breaking.Expires == 0 {
		cfg.Breaking.Expires = 12 * time.Hour
	}
	if cfg.Breaking.PageSize == 0 {
		cfg.Breaking.PageSize = 30
	}
	if cfg.Breaking.Replace == "" {
		cfg.Breaking.Replace = ReplaceAlways
	}
	if cfg.Breaking.Output == "" {
		cfg.Breaking.Output = "breaking.json"
	}

	// trending
	if cfg.Trending.PageSize == 0 {
		cfg.Trending.PageSize = 20
	}
	if cfg.Trending.Output == "" {
		cfg.Trending.Output = "daily-update.json"
	}

	// backup
	if cfg.Backup.Dir == "" {
		cfg.Backup.Dir = "backups"
	}
	if cfg.Backup.Keep == 0 {
		cfg.Backup.Keep = 10
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate news config
	switch cfg.News.Provider {
	case ProviderNewsAPI, ProviderRSS:
	default:
		return fmt.Errorf("news.provider must be %q or %q, got %q", ProviderNewsAPI, ProviderRSS, cfg.News.Provider)
	}
	if cfg.News.Attempts < 1 {
		return fmt.Errorf("news.attempts must be at least 1")
	}
	if cfg.News.Timeout < 0 {
		return fmt.Errorf("news.timeout must be non-negative")
	}
	for i, f := range cfg.News.Feeds {
		if f.URL == "" {
			return fmt.Errorf("news.feeds[%d].url is required", i)
		}
	}

	// validate LLM config
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	// validate breaking config
	if cfg.Breaking.Threshold < 1 {
		return fmt.Errorf("breaking.threshold must be at least 1")
	}
	if cfg.Breaking.Expires < time.Minute {
		return fmt.Errorf("breaking.expires must be at least 1 minute")
	}
	if cfg.Breaking.PageSize < 1 || cfg.Breaking.PageSize > 100 {
		return fmt.Errorf("breaking.page_size must be between 1 and 100")
	}
	if cfg.Breaking.Replace != ReplaceAlways && cfg.Breaking.Replace != ReplaceStronger {
		return fmt.Errorf("breaking.replace must be %q or %q, got %q", ReplaceAlways, ReplaceStronger, cfg.Breaking.Replace)
	}

	// validate trending config
	if cfg.Trending.PageSize < 1 || cfg.Trending.PageSize > 100 {
		return fmt.Errorf("trending.page_size must be between 1 and 100")
	}
	for i, r := range cfg.Trending.Roots {
		if r.Slug == "" {
			return fmt.Errorf("trending.roots[%d].slug is required", i)
		}
	}

	// validate backup config
	if cfg.Backup.Keep < 1 {
		return fmt.Errorf("backup.keep must be at least 1")
	}

	return nil
}
