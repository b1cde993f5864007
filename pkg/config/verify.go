package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Every config section must be described in the schema and required fields must be set.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema struct {
		Defs map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root, ok := schema.Defs["Config"]
	if !ok {
		return fmt.Errorf("schema has no Config definition")
	}
	keys := make([]string, 0, len(configMap))
	for k := range configMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, found := root.Properties[k]; !found {
			return fmt.Errorf("config section %q is not in schema", k)
		}
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check site config
	if cfg.Site.ArticlesDir == "" {
		return fmt.Errorf("site.articles_dir is required")
	}
	if cfg.Site.ContentDir == "" {
		return fmt.Errorf("site.content_dir is required")
	}

	// check provider specific settings
	if cfg.News.Provider == ProviderRSS && len(cfg.News.Feeds) == 0 {
		return fmt.Errorf("news.feeds is required for the rss provider")
	}
	if cfg.News.Provider == ProviderNewsAPI && cfg.News.Endpoint == "" {
		return fmt.Errorf("news.endpoint is required for the newsapi provider")
	}

	// check llm config if enabled
	if cfg.LLM.APIKey != "" && cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required when llm.api_key is set")
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
