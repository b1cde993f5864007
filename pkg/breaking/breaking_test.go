package breaking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/rootbyte/pkg/breaking/mocks"
	"github.com/umputun/rootbyte/pkg/config"
	"github.com/umputun/rootbyte/pkg/domain"
	"github.com/umputun/rootbyte/pkg/llm"
	"github.com/umputun/rootbyte/pkg/news"
	"github.com/umputun/rootbyte/pkg/spike"
)

var testNow = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

func openAIItems() []domain.NewsItem {
	return []domain.NewsItem{
		{Title: "OpenAI raises funds - Reuters", Description: "Money talk", Source: domain.NewsSource{Name: "Reuters"}},
		{Title: "OpenAI hires new chief", Source: domain.NewsSource{Name: "Wired"}},
		{Title: "OpenAI opens office", Source: domain.NewsSource{Name: "CNBC"}},
		{Title: "OpenAI ships update", Source: domain.NewsSource{Name: "The Verge"}},
	}
}

func sourceWith(items []domain.NewsItem, err error) *mocks.SourceMock {
	return &mocks.SourceMock{FetchFunc: func(context.Context, int) ([]domain.NewsItem, error) {
		return items, err
	}}
}

func testSummarizer() *mocks.SummarizerMock {
	return &mocks.SummarizerMock{BreakingBodyFunc: func(_ context.Context, headline string, _ []domain.NewsItem) llm.Result {
		return llm.Result{Text: "<p>" + headline + " brief</p>"}
	}}
}

func newManager(t *testing.T, src news.Source) *Manager {
	t.Helper()
	return &Manager{
		Path:       filepath.Join(t.TempDir(), "breaking.json"),
		Source:     src,
		Summarizer: testSummarizer(),
		Detector:   spike.NewDetector(),
		Expires:    12 * time.Hour,
		PageSize:   30,
		Replace:    config.ReplaceAlways,
		Now:        func() time.Time { return testNow },
	}
}

func writeRecord(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func readRecord(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal(data, &res))
	return res
}

const activeRecord = `{"active":true,"headline":"BREAKING: old","short":"old","category":"tech",
"timestamp":"2020-01-01T00:00:00.000Z","link":"breaking.html","expires":"2020-01-01T12:00:00.000Z",
"body":"<p>old</p>","root_connection":null,"spike_keyword":"apple","spike_count":6}`

func TestManager_Check_Spike(t *testing.T) {
	src := sourceWith(openAIItems(), nil)
	m := newManager(t, src)

	action, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Activated, action)

	require.Len(t, src.FetchCalls(), 1)
	assert.Equal(t, 30, src.FetchCalls()[0].PageSize)

	sum := m.Summarizer.(*mocks.SummarizerMock)
	require.Len(t, sum.BreakingBodyCalls(), 1)
	assert.Equal(t, "BREAKING: OpenAI raises funds", sum.BreakingBodyCalls()[0].Headline)
	assert.Len(t, sum.BreakingBodyCalls()[0].Items, 4)

	rec := readRecord(t, m.Path)
	assert.Equal(t, map[string]any{
		"active":          true,
		"headline":        "BREAKING: OpenAI raises funds",
		"short":           "Money talk",
		"category":        "tech",
		"timestamp":       "2025-01-02T10:00:00.000Z",
		"link":            "breaking.html",
		"expires":         "2025-01-02T22:00:00.000Z",
		"body":            "<p>BREAKING: OpenAI raises funds brief</p>",
		"root_connection": nil,
		"spike_keyword":   "openai",
		"spike_count":     4.0,
	}, rec)

	data, err := os.ReadFile(m.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"body": "<p>BREAKING: OpenAI raises funds brief</p>"`, "html not escaped")
}

func TestManager_Check_ShortFallsBackToHeadline(t *testing.T) {
	items := openAIItems()
	items[0].Description = "  "
	m := newManager(t, sourceWith(items, nil))

	_, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BREAKING: OpenAI raises funds", readRecord(t, m.Path)["short"])
}

func TestManager_Check_ShortTruncated(t *testing.T) {
	items := openAIItems()
	items[0].Description = strings.Repeat("ж", 200)
	m := newManager(t, sourceWith(items, nil))

	_, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ж", 120), readRecord(t, m.Path)["short"])
}

func TestManager_Check_Expired(t *testing.T) {
	src := sourceWith(openAIItems(), nil)
	m := newManager(t, src)
	writeRecord(t, m.Path, activeRecord)

	action, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Expired, action)
	assert.Empty(t, src.FetchCalls(), "expired record stops the check")

	rec := readRecord(t, m.Path)
	assert.Equal(t, map[string]any{"active": false, "headline": "", "short": "", "category": "tech",
		"timestamp": "", "link": "breaking.html", "expires": ""}, rec)
}

func TestManager_Check_NotConfigured(t *testing.T) {
	for name, src := range map[string]news.Source{
		"nil source":  nil,
		"missing key": news.NewNewsAPI(news.NewsAPIParams{}),
	} {
		t.Run(name, func(t *testing.T) {
			m := newManager(t, src)
			action, err := m.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Skipped, action)
			_, err = os.Stat(m.Path)
			assert.True(t, os.IsNotExist(err), "nothing written")
		})
	}
}

func TestManager_Check_FetchError(t *testing.T) {
	m := newManager(t, sourceWith(nil, errors.New("apiKeyInvalid")))
	writeRecord(t, m.Path, `{"active":false,"headline":"","short":"","category":"tech","timestamp":"","link":"breaking.html","expires":""}`)

	action, err := m.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
	assert.Equal(t, NoChange, action)
}

func TestManager_Check_NoSpike(t *testing.T) {
	quiet := []domain.NewsItem{{Title: "Local bakery wins award"}, {Title: "Rain expected"}}

	t.Run("already inactive is not rewritten", func(t *testing.T) {
		m := newManager(t, sourceWith(quiet, nil))
		const inactive = `{"active":false}`
		writeRecord(t, m.Path, inactive)

		action, err := m.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, NoChange, action)
		data, err := os.ReadFile(m.Path)
		require.NoError(t, err)
		assert.Equal(t, inactive, string(data))
	})

	t.Run("missing file is not created", func(t *testing.T) {
		m := newManager(t, sourceWith(quiet, nil))
		action, err := m.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, NoChange, action)
		_, err = os.Stat(m.Path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("active record deactivated", func(t *testing.T) {
		m := newManager(t, sourceWith(quiet, nil))
		writeRecord(t, m.Path, strings.Replace(activeRecord, "2020-01-01T12:00:00.000Z", "2025-01-02T12:00:00.000Z", 1))

		action, err := m.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Deactivated, action)
		assert.Equal(t, false, readRecord(t, m.Path)["active"])
		assert.Len(t, readRecord(t, m.Path), 7)
	})

	t.Run("three mentions are below threshold", func(t *testing.T) {
		m := newManager(t, sourceWith(openAIItems()[:3], nil))
		action, err := m.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, NoChange, action)
	})
}

func TestManager_Check_ReplacePolicy(t *testing.T) {
	current := strings.Replace(activeRecord, "2020-01-01T12:00:00.000Z", "2025-01-02T12:00:00.000Z", 1)

	t.Run("always replaces", func(t *testing.T) {
		m := newManager(t, sourceWith(openAIItems(), nil))
		writeRecord(t, m.Path, current)

		action, err := m.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Activated, action)
		assert.Equal(t, "openai", readRecord(t, m.Path)["spike_keyword"])
	})

	t.Run("stronger keeps bigger spike", func(t *testing.T) {
		m := newManager(t, sourceWith(openAIItems(), nil))
		m.Replace = config.ReplaceStronger
		writeRecord(t, m.Path, current)

		action, err := m.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Kept, action)
		assert.Equal(t, "apple", readRecord(t, m.Path)["spike_keyword"])
		assert.Empty(t, m.Summarizer.(*mocks.SummarizerMock).BreakingBodyCalls())
	})

	t.Run("stronger replaces weaker spike", func(t *testing.T) {
		m := newManager(t, sourceWith(openAIItems(), nil))
		m.Replace = config.ReplaceStronger
		writeRecord(t, m.Path, strings.Replace(current, `"spike_count":6`, `"spike_count":3`, 1))

		action, err := m.Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Activated, action)
		assert.Equal(t, "openai", readRecord(t, m.Path)["spike_keyword"])
	})
}

func TestManager_Check_CorruptRecord(t *testing.T) {
	m := newManager(t, sourceWith(openAIItems(), nil))
	writeRecord(t, m.Path, "{not json")

	action, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Activated, action)
	assert.Equal(t, true, readRecord(t, m.Path)["active"])
}

func TestManager_Clear(t *testing.T) {
	m := newManager(t, nil)
	writeRecord(t, m.Path, `{"active":false,"headline":"x"}`)

	require.NoError(t, m.Clear())
	data, err := os.ReadFile(m.Path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"active":false,"headline":"","short":"","category":"tech","timestamp":"","link":"breaking.html","expires":""}`,
		string(data))
}

func TestManager_Set(t *testing.T) {
	m := newManager(t, nil)
	headline := "BREAKING: " + strings.Repeat("a", 120)

	rec, err := m.Set("  " + headline + " ")
	require.NoError(t, err)
	assert.Equal(t, headline, rec.Headline)

	res := readRecord(t, m.Path)
	assert.Equal(t, map[string]any{
		"active":          true,
		"headline":        headline,
		"short":           headline[:100],
		"category":        "tech",
		"timestamp":       "2025-01-02T10:00:00.000Z",
		"link":            "breaking.html",
		"expires":         "2025-01-02T22:00:00.000Z",
		"body":            "<p>" + headline + "</p><p>This story is being monitored. Check back for updates.</p>",
		"root_connection": nil,
	}, res)

	rec, err = m.Set("Bugs & <moths>")
	require.NoError(t, err)
	assert.Equal(t, "<p>Bugs &amp; &lt;moths&gt;</p><p>This story is being monitored. Check back for updates.</p>", rec.Body)

	_, err = m.Set(" ")
	require.Error(t, err)
}

func TestManager_DryRun(t *testing.T) {
	var buf bytes.Buffer
	m := newManager(t, sourceWith(openAIItems(), nil))
	m.DryRun = &buf

	action, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Activated, action)
	assert.Contains(t, buf.String(), "[DRY RUN] would write "+m.Path)
	assert.Contains(t, buf.String(), `"spike_keyword": "openai"`)
	_, err = os.Stat(m.Path)
	assert.True(t, os.IsNotExist(err), "dry run writes nothing")

	buf.Reset()
	require.NoError(t, m.Clear())
	assert.Contains(t, buf.String(), `"active": false`)
}

func TestManager_Defaults(t *testing.T) {
	src := sourceWith(openAIItems(), nil)
	m := &Manager{Path: filepath.Join(t.TempDir(), "breaking.json"), Source: src, Summarizer: testSummarizer()}

	action, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Activated, action)
	assert.Equal(t, DefaultPageSize, src.FetchCalls()[0].PageSize)

	rec, err := m.Current()
	require.NoError(t, err)
	ts, err := time.Parse(time.RFC3339, rec.Timestamp)
	require.NoError(t, err)
	exp, err := time.Parse(time.RFC3339, rec.Expires)
	require.NoError(t, err)
	assert.Equal(t, DefaultExpires, exp.Sub(ts))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "activated", Activated.String())
	assert.Equal(t, "kept", Kept.String())
	assert.Equal(t, "action(42)", Action(42).String())
}
