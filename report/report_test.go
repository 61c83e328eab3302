package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/wba"
)

// MockModel for testing
type MockModel struct {
	response     string
	err          error
	lastMessages []llms.MessageContent
}

func (m *MockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.lastMessages = messages
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: m.response},
		},
	}, nil
}

func (m *MockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func testGraph() *wba.Graph {
	g := wba.New()
	problem, _ := g.CreateNode(wba.NodeProblem, "Checkout crashed", "")
	cause, _ := g.CreateNode(wba.NodeCause, "Bad deploy", "")
	g.CreateEdge(cause.ID, problem.ID, wba.LinkNecessary)
	return g
}

func TestReportIncludesDiagramAndContext(t *testing.T) {
	model := &MockModel{response: "# RCA Report\n\nFindings."}
	gen := NewGenerator(model)

	out, err := gen.Report(context.Background(), testGraph(), "late-night deploy window", nil)
	require.NoError(t, err)
	assert.Equal(t, "# RCA Report\n\nFindings.", out)

	require.NotEmpty(t, model.lastMessages)
	last := model.lastMessages[len(model.lastMessages)-1]
	prompt := textOf(last)
	assert.Contains(t, prompt, "Executive Summary")
	assert.Contains(t, prompt, `Label="Checkout crashed"`)
	assert.Contains(t, prompt, "Additional problem context: late-night deploy window")
}

func TestReportWithoutDiagram(t *testing.T) {
	model := &MockModel{response: "should not be called"}
	gen := NewGenerator(model)

	out, err := gen.Report(context.Background(), wba.New(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, MsgNoDiagram, out)
	assert.Empty(t, model.lastMessages)
}

func TestReportIncludesHistory(t *testing.T) {
	model := &MockModel{response: "ok"}
	gen := NewGenerator(model)

	history := []phase.Message{
		{Role: phase.RoleUser, Content: "it started after the deploy"},
		{Role: phase.RoleAssistant, Content: "noted"},
	}
	_, err := gen.Report(context.Background(), testGraph(), "", history)
	require.NoError(t, err)

	// system + 2 history + prompt
	require.Len(t, model.lastMessages, 4)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.lastMessages[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, model.lastMessages[2].Role)
}

func TestReportBackendError(t *testing.T) {
	model := &MockModel{err: errors.New("backend down")}
	gen := NewGenerator(model)

	_, err := gen.Report(context.Background(), testGraph(), "", nil)
	assert.Error(t, err)
}

func TestSlides(t *testing.T) {
	model := &MockModel{response: "# Title\n\n---\n\n# Causes"}
	gen := NewGenerator(model)

	out, err := gen.Slides(context.Background(), "# RCA Report\n\nFindings.", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "---")

	prompt := textOf(model.lastMessages[len(model.lastMessages)-1])
	assert.Contains(t, prompt, "RCA Report")
	assert.Contains(t, prompt, "Title slide")
}

func TestSlidesWithoutReport(t *testing.T) {
	model := &MockModel{response: "should not be called"}
	gen := NewGenerator(model)

	out, err := gen.Slides(context.Background(), "   ", nil)
	require.NoError(t, err)
	assert.Equal(t, MsgNoReport, out)
	assert.Empty(t, model.lastMessages)
}

func TestSuggestCausesStripsListMarkers(t *testing.T) {
	model := &MockModel{response: "1. Expired TLS certificate\n- Connection pool exhaustion\n\n* Misconfigured retry policy\n"}
	gen := NewGenerator(model)

	causes, err := gen.SuggestCauses(context.Background(), "Checkout crashed", []string{"Bad deploy"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Expired TLS certificate",
		"Connection pool exhaustion",
		"Misconfigured retry policy",
	}, causes)

	prompt := textOf(model.lastMessages[len(model.lastMessages)-1])
	assert.Contains(t, prompt, "Existing causes identified: Bad deploy.")
	assert.Contains(t, prompt, `"Checkout crashed"`)
}

func TestRenderHTML(t *testing.T) {
	out := RenderHTML("# Findings\n\nThe *deploy* broke checkout.\n\n<script>alert(1)</script>")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<em>deploy</em>")
	assert.NotContains(t, out, "<script>")
}

func TestSplitSlides(t *testing.T) {
	deck := "# Title\n\n---\n\n# Causes\n\n---\n\n"
	slides := SplitSlides(deck)
	require.Len(t, slides, 2)
	assert.Equal(t, "# Title", slides[0])
	assert.Equal(t, "# Causes", slides[1])
}

func TestRenderSlidesHTML(t *testing.T) {
	out := RenderSlidesHTML("# One\n\n---\n\n# Two")
	require.Len(t, out, 2)
	assert.Contains(t, out[0], "One")
	assert.Contains(t, out[1], "Two")
}

func textOf(msg llms.MessageContent) string {
	var b strings.Builder
	for _, part := range msg.Parts {
		if text, ok := part.(llms.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}
