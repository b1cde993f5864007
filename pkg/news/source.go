// Package news fetches current tech headlines from a news provider.
package news

import (
	"context"
	"errors"
	"strings"

	"github.com/umputun/rootbyte/pkg/domain"
)

// ErrNotConfigured returned by sources missing credentials or feeds
var ErrNotConfigured = errors.New("news source not configured")

// removedTitle marks items taken down by the provider
const removedTitle = "[Removed]"

// Source returns current headlines, at most pageSize of them
type Source interface {
	Fetch(ctx context.Context, pageSize int) ([]domain.NewsItem, error)
}

// Result is the outcome of a fetch. Callers check OK and fall back on failure.
type Result struct {
	Items []domain.NewsItem
	Err   error
}

// OK returns true if fetch succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// NotConfigured returns true if fetch was skipped for missing configuration
func (r Result) NotConfigured() bool {
	return errors.Is(r.Err, ErrNotConfigured)
}

// Fetch calls the source and wraps the outcome into Result. Nil source is not configured.
func Fetch(ctx context.Context, src Source, pageSize int) Result {
	if src == nil {
		return Result{Err: ErrNotConfigured}
	}
	items, err := src.Fetch(ctx, pageSize)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Items: items}
}

// clean drops items without a usable title
func clean(items []domain.NewsItem) []domain.NewsItem {
	res := make([]domain.NewsItem, 0, len(items))
	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		if title == "" || title == removedTitle {
			continue
		}
		res = append(res, it)
	}
	return res
}
