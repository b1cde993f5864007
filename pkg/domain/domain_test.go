package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeta(t *testing.T) {
	m := Meta{"title": "Moth", "root_year": 1947.0, "zero": 0.0, "empty": "", "flag": false, "on": true,
		"ratio": 6.5, "year_str": " 1956 "}

	assert.True(t, m.Has("empty"))
	assert.False(t, m.Has("missing"))

	assert.Equal(t, "Moth", m.String("title"))
	assert.Equal(t, "1947", m.String("root_year"))
	assert.Equal(t, "6.5", m.String("ratio"))
	assert.Equal(t, "false", m.String("flag"))
	assert.Equal(t, "", m.String("missing"))

	assert.Equal(t, "def", m.StringOr("empty", "def"))
	assert.Equal(t, "def", m.StringOr("flag", "def"))
	assert.Equal(t, "true", m.StringOr("on", "def"))

	assert.Nil(t, m.Or("zero", nil), "zero is falsy")
	assert.Equal(t, 1947.0, m.Or("root_year", nil))
	assert.Equal(t, 6, m.Or("missing", 6))

	n, ok := m.Int("root_year")
	assert.True(t, ok)
	assert.Equal(t, 1947, n)
	n, ok = m.Int("year_str")
	assert.True(t, ok)
	assert.Equal(t, 1956, n)
	_, ok = m.Int("ratio")
	assert.False(t, ok)
	_, ok = m.Int("title")
	assert.False(t, ok)
	_, ok = m.Int("missing")
	assert.False(t, ok)
}

func TestArticle(t *testing.T) {
	a := Article{Slug: "x", Meta: Meta{}}
	assert.Equal(t, StatusPublished, a.Status())
	assert.True(t, a.IsPublished())
	assert.Equal(t, DefaultCategory, a.Category())

	a.Meta["status"] = "draft"
	a.Meta["category"] = "space"
	assert.False(t, a.IsPublished())
	assert.Equal(t, "space", a.Category())
}

func TestBreaking_ExpiredAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tbl := []struct {
		name string
		rec  Breaking
		want bool
	}{
		{"expired long ago", Breaking{Active: true, Expires: "2020-01-01T00:00:00Z"}, true},
		{"not yet", Breaking{Active: true, Expires: "2025-06-01T13:00:00Z"}, false},
		{"inactive", Breaking{Expires: "2020-01-01T00:00:00Z"}, false},
		{"no expiry", Breaking{Active: true}, false},
		{"garbage expiry", Breaking{Active: true, Expires: "tomorrow"}, false},
		{"millis format", Breaking{Active: true, Expires: "2025-06-01T11:59:59.123Z"}, true},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.ExpiredAt(now))
		})
	}
}

func TestBreaking_JSON(t *testing.T) {
	t.Run("inactive", func(t *testing.T) {
		rec := InactiveBreaking()
		rec.Body = "left over"
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.JSONEq(t, `{"active":false,"headline":"","short":"","category":"tech","timestamp":"",`+
			`"link":"breaking.html","expires":""}`, string(data))
	})

	t.Run("active", func(t *testing.T) {
		rec := Breaking{Active: true, Headline: "BREAKING: x", Short: "x", Category: BreakingCategory,
			Timestamp: "2025-06-01T12:00:00Z", Link: BreakingLink, Expires: "2025-06-02T00:00:00Z", Body: "<p>x</p>"}
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.JSONEq(t, `{"active":true,"headline":"BREAKING: x","short":"x","category":"tech",`+
			`"timestamp":"2025-06-01T12:00:00Z","link":"breaking.html","expires":"2025-06-02T00:00:00Z",`+
			`"body":"<p>x</p>","root_connection":null}`, string(data))

		var back Breaking
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, rec, back)
	})
}

func TestStripSourceSuffix(t *testing.T) {
	tbl := []struct{ in, want string }{
		{"OpenAI ships GPT-5 - The Verge", "OpenAI ships GPT-5"},
		{"Wi-Fi 7 explained - a guide - Ars Technica", "Wi-Fi 7 explained - a guide"},
		{"No suffix here", "No suffix here"},
		{" - Leading dash", "- Leading dash"},
		{"  spaced  ", "spaced"},
		{"", ""},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, StripSourceSuffix(tt.in), tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "приве", Truncate("привет", 5), "counts runes")
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestNewsItem(t *testing.T) {
	it := NewsItem{Title: "OpenAI News", Description: "GPT", PublishedAt: "2025-01-02T03:04:05Z"}
	assert.Equal(t, "openai news gpt", it.Text())
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), it.Published())
	assert.True(t, NewsItem{PublishedAt: "bad"}.Published().IsZero())
}
