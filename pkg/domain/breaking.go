package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// default values of the breaking record
const (
	BreakingCategory = "tech"
	BreakingLink     = "breaking.html"
)

// Breaking is the singleton breaking-news record stored in breaking.json.
// Inactive record always has empty headline, short, timestamp and expires.
type Breaking struct {
	Active         bool    `json:"active"`
	Headline       string  `json:"headline"`
	Short          string  `json:"short"`
	Category       string  `json:"category"`
	Timestamp      string  `json:"timestamp"`
	Link           string  `json:"link"`
	Expires        string  `json:"expires"`
	Body           string  `json:"body,omitempty"`
	RootConnection *string `json:"root_connection"`
	SpikeKeyword   string  `json:"spike_keyword,omitempty"`
	SpikeCount     int     `json:"spike_count,omitempty"`
}

// InactiveBreaking returns the canonical inactive record
func InactiveBreaking() Breaking {
	return Breaking{Category: BreakingCategory, Link: BreakingLink}
}

// MarshalJSON writes inactive records in the canonical short form, without body,
// root connection and spike details
func (b Breaking) MarshalJSON() ([]byte, error) {
	type record Breaking // drops methods
	if b.Active {
		return marshal(record(b))
	}
	return marshal(struct {
		Active    bool   `json:"active"`
		Headline  string `json:"headline"`
		Short     string `json:"short"`
		Category  string `json:"category"`
		Timestamp string `json:"timestamp"`
		Link      string `json:"link"`
		Expires   string `json:"expires"`
	}{Category: BreakingCategory, Link: BreakingLink})
}

// ExpiredAt reports whether an active record has an expiry time before now.
// Records with missing or unparsable expiry never expire.
func (b Breaking) ExpiredAt(now time.Time) bool {
	if !b.Active || b.Expires == "" {
		return false
	}
	exp, err := time.Parse(time.RFC3339, b.Expires)
	if err != nil {
		return false
	}
	return now.After(exp)
}

// marshal encodes v without escaping html, bodies hold markup
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
