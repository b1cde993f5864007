package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/rootbyte/pkg/domain"
)

// NewsAPI defaults
const (
	DefaultEndpoint = "https://newsapi.org/v2/top-headlines"
	DefaultCategory = "technology"
	DefaultLanguage = "en"
	DefaultTimeout  = 10 * time.Second
)

// NewsAPIParams configures NewsAPI client
type NewsAPIParams struct {
	Endpoint string
	APIKey   string
	Category string
	Language string
	Timeout  time.Duration
	Attempts int           // total attempts, 1 means no retry
	Delay    time.Duration // initial delay between attempts
	Client   *http.Client
}

// NewsAPI fetches top headlines from newsapi.org compatible endpoint
type NewsAPI struct {
	params NewsAPIParams
	client *http.Client
}

// apiResponse is the top-headlines response body
type apiResponse struct {
	Status   string            `json:"status"`
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Articles []domain.NewsItem `json:"articles"`
}

// NewNewsAPI makes a client, empty params get defaults
func NewNewsAPI(params NewsAPIParams) *NewsAPI {
	if params.Endpoint == "" {
		params.Endpoint = DefaultEndpoint
	}
	if params.Category == "" {
		params.Category = DefaultCategory
	}
	if params.Language == "" {
		params.Language = DefaultLanguage
	}
	if params.Timeout <= 0 {
		params.Timeout = DefaultTimeout
	}
	if params.Attempts <= 0 {
		params.Attempts = 1
	}
	if params.Delay <= 0 {
		params.Delay = time.Second
	}
	client := params.Client
	if client == nil {
		client = &http.Client{}
	}
	return &NewsAPI{params: params, client: client}
}

// Fetch requests top headlines. Fails with ErrNotConfigured without api key, and with the
// provider message if the response status is not ok. Removed and untitled items are dropped.
func (n *NewsAPI) Fetch(ctx context.Context, pageSize int) ([]domain.NewsItem, error) {
	if n.params.APIKey == "" {
		return nil, fmt.Errorf("%w: no api key", ErrNotConfigured)
	}

	var items []domain.NewsItem
	retrier := repeater.NewBackoff(n.params.Attempts, n.params.Delay, repeater.WithMaxDelay(10*time.Second))
	err := retrier.Do(ctx, func() error {
		res, err := n.fetchOnce(ctx, pageSize)
		if err != nil {
			lgr.Printf("[DEBUG] headlines request failed: %v", err)
			return err
		}
		items = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	items = clean(items)
	lgr.Printf("[DEBUG] fetched %d headlines from %s", len(items), n.params.Endpoint)
	return items, nil
}

func (n *NewsAPI) fetchOnce(ctx context.Context, pageSize int) ([]domain.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, n.params.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.requestURL(pageSize), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read headlines response: %w", err)
	}

	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode headlines response, status %d: %w", resp.StatusCode, err)
	}
	if r.Status != "ok" {
		msg := r.Message
		if msg == "" {
			msg = "status " + strconv.Itoa(resp.StatusCode)
		}
		return nil, fmt.Errorf("news api error: %s", msg)
	}
	return r.Articles, nil
}

func (n *NewsAPI) requestURL(pageSize int) string {
	q := url.Values{}
	q.Set("category", n.params.Category)
	q.Set("language", n.params.Language)
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("apiKey", n.params.APIKey)
	return n.params.Endpoint + "?" + q.Encode()
}
