package llm

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/rootbyte/pkg/config"
	"github.com/umputun/rootbyte/pkg/domain"
)

// maxSourcesLen limits the sources list sent in the breaking brief prompt
const maxSourcesLen = 600

// Summarizer writes short copy for breaking and trending stories with an OpenAI-compatible
// chat completion API. Without api key it returns templated text and makes no calls.
type Summarizer struct {
	client *openai.Client
	config config.LLMConfig
	html   *bluemonday.Policy // for generated html bodies
	text   *bluemonday.Policy // strips all tags from plain text answers
}

// Result is the generated text. Fallback is set when the text is a template, Err tells why
// generation failed, if it was attempted.
type Result struct {
	Text     string
	Fallback bool
	Err      error
}

// NewSummarizer creates a new summarizer
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		html:   bluemonday.UGCPolicy(),
		text:   bluemonday.StrictPolicy(),
	}
}

// Enabled returns true if api key is set
func (s *Summarizer) Enabled() bool {
	return s.config.APIKey != ""
}

// BreakingBody writes a two-paragraph html brief for the spike headline. Falls back to the
// first item description, or the headline, in a paragraph.
func (s *Summarizer) BreakingBody(ctx context.Context, headline string, items []domain.NewsItem) Result {
	fallback := headline
	if len(items) > 0 && strings.TrimSpace(items[0].Description) != "" {
		fallback = items[0].Description
	}
	fallback = s.html.Sanitize("<p>" + fallback + "</p>")

	if !s.Enabled() {
		return Result{Text: fallback, Fallback: true}
	}

	text, err := s.complete(ctx, breakingPrompt(headline, items))
	if err != nil {
		lgr.Printf("[WARN] can't generate breaking body: %v", err)
		return Result{Text: fallback, Fallback: true, Err: err}
	}
	return Result{Text: s.html.Sanitize(text)}
}

// RootConnection writes one plain-text sentence connecting the headline to the archive article.
// Falls back to empty text.
func (s *Summarizer) RootConnection(ctx context.Context, headline, slug string) Result {
	if !s.Enabled() {
		return Result{Fallback: true}
	}

	text, err := s.complete(ctx, rootPrompt(headline, slug))
	if err != nil {
		lgr.Printf("[WARN] can't generate root connection for %s: %v", slug, err)
		return Result{Fallback: true, Err: err}
	}
	return Result{Text: strings.TrimSpace(html.UnescapeString(s.text.Sanitize(text)))}
}

func (s *Summarizer) complete(ctx context.Context, prompt string) (string, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	st := time.Now()
	req := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		MaxTokens:   s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from llm")
	}

	text := stripFences(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty response from llm")
	}
	lgr.Printf("[DEBUG] llm response in %v, %d chars", time.Since(st).Truncate(time.Millisecond), len(text))
	return text, nil
}

func breakingPrompt(headline string, items []domain.NewsItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %s (%s)", it.Title, it.Source.Name))
	}
	sources := domain.Truncate(strings.Join(lines, "\n"), maxSourcesLen)

	var sb strings.Builder
	sb.WriteString("You are a tech journalist. Write a 2-paragraph breaking news brief (under 150 words total) ")
	sb.WriteString("for this trending story.\n")
	fmt.Fprintf(&sb, "Headline: %q\n", headline)
	sb.WriteString("Sources covering it:\n")
	sb.WriteString(sources)
	sb.WriteString("\nWrite in present tense. Be factual. No clickbait. Format as plain HTML <p> tags.")
	return sb.String()
}

func rootPrompt(headline, slug string) string {
	var sb strings.Builder
	sb.WriteString("You are writing a 1-sentence \"root connection\" for a tech history website.\n")
	fmt.Fprintf(&sb, "The breaking news headline is: %q\n", headline)
	fmt.Fprintf(&sb, "The historical root article slug is: %q\n", slug)
	sb.WriteString("Write one sentence (under 50 words) explaining the historical connection between this news ")
	sb.WriteString("and the root article. Be specific and factual.")
	return sb.String()
}

// stripFences removes markdown code fences models like to wrap html into
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:] // language tag line
	} else {
		s = ""
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
