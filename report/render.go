package report

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy allows the formatting a generated report uses (headers,
// lists, tables, links) and strips everything else, since the Markdown
// comes back from an LLM and may echo user-controlled text.
var htmlPolicy = bluemonday.UGCPolicy()

// RenderHTML converts report or slide Markdown into sanitized HTML
// suitable for embedding in a viewer.
func RenderHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags,
	})
	rendered := markdown.Render(doc, renderer)

	return string(htmlPolicy.SanitizeBytes(rendered))
}

// SplitSlides splits a slide deck on lines containing only "---" and
// returns the non-empty slides.
func SplitSlides(md string) []string {
	var slides []string
	var current []string

	flush := func() {
		if s := strings.TrimSpace(strings.Join(current, "\n")); s != "" {
			slides = append(slides, s)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(md, "\n") {
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return slides
}

// RenderSlidesHTML splits a slide deck on "---" separators and renders
// each slide to sanitized HTML.
func RenderSlidesHTML(md string) []string {
	var out []string
	for _, slide := range SplitSlides(md) {
		out = append(out, RenderHTML(slide))
	}
	return out
}
