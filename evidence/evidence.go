package evidence

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Source is one piece of supporting material an analyst can attach to the
// graph: a pasted note, an incident page, a log excerpt.
type Source struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content"`
}

// FromText creates a source from plain text.
func FromText(title, content string) *Source {
	return &Source{
		ID:      newSourceID(),
		Title:   title,
		Content: strings.TrimSpace(content),
	}
}

// FromHTML extracts a source from an HTML document. Script and style
// content is dropped; the title comes from <title>, falling back to the
// first <h1>, falling back to the URL.
func FromHTML(r io.Reader, url string) (*Source, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = url
	}

	body := doc.Find("body")
	text := body.Text()
	if body.Length() == 0 {
		text = doc.Text()
	}

	return &Source{
		ID:      newSourceID(),
		Title:   title,
		URL:     url,
		Content: normalizeWhitespace(text),
	}, nil
}

// Summary returns the first sentence of the content, truncated for use as
// an evidence node label.
func (s *Source) Summary(maxLen int) string {
	text, _, _ := strings.Cut(s.Content, ".")
	if text == "" {
		text = s.Title
	}
	runes := []rune(text)
	if maxLen > 3 && len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return text
}

// Search ranks sources by term overlap with the query and returns up to
// limit results, best first. Sources with no overlapping terms are
// excluded.
func Search(sources []*Source, query string, limit int) []*Source {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	type scored struct {
		source *Source
		score  int
	}

	var results []scored
	for _, s := range sources {
		haystack := tokenSet(s.Title + " " + s.Content)
		score := 0
		for term := range terms {
			if haystack[term] {
				score++
			}
		}
		if score > 0 {
			results = append(results, scored{source: s, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	out := make([]*Source, 0, len(results))
	for _, r := range results {
		out = append(out, r.source)
	}
	return out
}

func newSourceID() string {
	return "src_" + uuid.NewString()
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tokenize(s string) map[string]bool {
	return tokenSet(s)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(s)) {
		f = strings.Trim(f, ".,;:!?\"'()[]")
		if len(f) > 2 {
			set[f] = true
		}
	}
	return set
}
