package evidence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>Incident 4812: Checkout outage</title>
	<style>body { color: red; }</style>
</head>
<body>
	<h1>Postmortem</h1>
	<p>The checkout service crashed after a bad deploy.</p>
	<script>console.log("tracking")</script>
	<p>Rollback restored service within two hours.</p>
</body>
</html>`

func TestFromHTML(t *testing.T) {
	src, err := FromHTML(strings.NewReader(samplePage), "https://wiki.internal/incident-4812")
	require.NoError(t, err)

	assert.Equal(t, "Incident 4812: Checkout outage", src.Title)
	assert.Equal(t, "https://wiki.internal/incident-4812", src.URL)
	assert.Contains(t, src.Content, "crashed after a bad deploy")
	assert.Contains(t, src.Content, "Rollback restored service")
	assert.NotContains(t, src.Content, "console.log")
	assert.NotContains(t, src.Content, "color: red")
	assert.True(t, strings.HasPrefix(src.ID, "src_"))
}

func TestFromHTMLTitleFallbacks(t *testing.T) {
	src, err := FromHTML(strings.NewReader("<html><body><h1>Postmortem</h1><p>text</p></body></html>"), "https://example.com/doc")
	require.NoError(t, err)
	assert.Equal(t, "Postmortem", src.Title)

	src, err = FromHTML(strings.NewReader("<html><body><p>text</p></body></html>"), "https://example.com/doc")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/doc", src.Title)
}

func TestFromText(t *testing.T) {
	src := FromText("deploy log", "  14:02 deploy started\n14:05 errors spiked  ")
	assert.Equal(t, "deploy log", src.Title)
	assert.Equal(t, "14:02 deploy started\n14:05 errors spiked", src.Content)
	assert.Empty(t, src.URL)
}

func TestSummary(t *testing.T) {
	src := FromText("log", "The checkout service crashed after a bad deploy. Rollback fixed it.")
	assert.Equal(t, "The checkout service crashed after a bad deploy", src.Summary(80))

	long := FromText("log", strings.Repeat("x", 100))
	assert.Len(t, []rune(long.Summary(50)), 50)
}

func TestSearchRanksByOverlap(t *testing.T) {
	sources := []*Source{
		FromText("deploy log", "deploy started and errors spiked after rollout"),
		FromText("database report", "database latency was normal all day"),
		FromText("deploy postmortem", "the deploy caused checkout errors and a crash"),
	}

	results := Search(sources, "deploy errors crash", 2)
	require.Len(t, results, 2)
	assert.Equal(t, "deploy postmortem", results[0].Title)
	assert.Equal(t, "deploy log", results[1].Title)
}

func TestSearchExcludesNonMatching(t *testing.T) {
	sources := []*Source{
		FromText("unrelated", "nothing useful here"),
	}

	assert.Empty(t, Search(sources, "deploy crash", 5))
	assert.Empty(t, Search(sources, "", 5))
}
