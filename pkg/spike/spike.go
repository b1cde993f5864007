// Package spike finds a keyword many current headlines talk about at once.
package spike

import (
	"strings"

	"github.com/umputun/rootbyte/pkg/domain"
)

// DefaultThreshold is the minimal number of items sharing a keyword to call it a spike
const DefaultThreshold = 4

// DefaultKeywords are the tracked tech topics, in priority order
var DefaultKeywords = []string{
	"chatgpt", "openai", "google", "apple", "microsoft", "nvidia", "tesla", "meta",
	"x twitter", "spacex", "elon musk", "sam altman", "anthropic", "samsung", "qualcomm",
	"arm", "tiktok", "bytedance", "security breach", "hack", "data leak", "cyberattack",
	"ai model", "regulation", "ban", "acquisition", "bankruptcy", "layoff", "shutdown",
}

// Spike is a keyword with all items mentioning it
type Spike struct {
	Keyword string
	Items   []domain.NewsItem
}

// Count returns number of items in the spike
func (s Spike) Count() int {
	return len(s.Items)
}

// Detector groups items by keywords. Keywords are matched as lowercase substrings of
// title and description, so "arm" matches "alarm" too.
type Detector struct {
	Keywords  []string
	Threshold int
}

// NewDetector makes detector with default keywords and threshold
func NewDetector() *Detector {
	return &Detector{Keywords: DefaultKeywords, Threshold: DefaultThreshold}
}

// Detect returns the biggest keyword bucket with at least Threshold items. Buckets are
// compared in the order they were first filled and a later bucket wins only if strictly
// bigger, so ties go to the keyword seen first.
func (d *Detector) Detect(items []domain.NewsItem) (Spike, bool) {
	threshold := d.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	buckets := map[string][]domain.NewsItem{}
	var order []string
	for _, item := range items {
		text := item.Text()
		for _, kw := range d.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" || !strings.Contains(text, kw) {
				continue
			}
			if _, ok := buckets[kw]; !ok {
				order = append(order, kw)
			}
			buckets[kw] = append(buckets[kw], item)
		}
	}

	var best Spike
	for _, kw := range order {
		if n := len(buckets[kw]); n >= threshold && n > best.Count() {
			best = Spike{Keyword: kw, Items: buckets[kw]}
		}
	}
	return best, best.Keyword != ""
}
