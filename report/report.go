package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/wba"
)

// Canned answers for the guard conditions. These are returned as the
// artifact text rather than as errors so the caller can show them in the
// conversation, matching the assistant's voice.
const (
	MsgNoDiagram = "Cannot generate a report without a diagram. Please create a diagram first."
	MsgNoReport  = "Cannot generate slides without a report. Please create a report first."
)

const reportSystemPrompt = `You are an AI assistant generating a comprehensive Root Cause Analysis report.
Format your response using Markdown with appropriate headers, bullet points, etc.`

const slidesSystemPrompt = `You are an AI assistant creating executive presentation slides based on an RCA report.
Your slides should be concise, clear, and focused on key findings and recommendations.
Format your response as a Markdown document with "---" separating each slide.`

// Generator produces analysis artifacts (reports, slide decks, cause
// suggestions) from a causal graph using an LLM backend.
type Generator struct {
	model llms.Model
}

// NewGenerator creates a Generator on top of the given model.
func NewGenerator(model llms.Model) *Generator {
	return &Generator{model: model}
}

// Report generates a full RCA report in Markdown from the graph. The chat
// history is included so the report reflects context the conversation
// established but the diagram doesn't carry.
func (g *Generator) Report(ctx context.Context, graph *wba.Graph, problem string, history []phase.Message) (string, error) {
	if graph == nil || graph.NodeCount() == 0 {
		return MsgNoDiagram, nil
	}

	var prompt strings.Builder
	prompt.WriteString(`Based on this diagram, generate a full RCA report with the following sections:
1. Executive Summary
2. Problem Statement
3. Analysis of Causes
4. Supporting Evidence
5. Recommendations
6. Conclusion

Diagram description:
`)
	prompt.WriteString(graph.Describe())
	if problem != "" {
		prompt.WriteString("\n\nAdditional problem context: " + problem)
	}
	prompt.WriteString("\n\nMake the report detailed, professional, and actionable.")

	return g.generate(ctx, reportSystemPrompt, history, prompt.String())
}

// Slides converts an existing report into an executive slide deck, one
// Markdown document with "---" separating slides.
func (g *Generator) Slides(ctx context.Context, reportContent string, history []phase.Message) (string, error) {
	if strings.TrimSpace(reportContent) == "" {
		return MsgNoReport, nil
	}

	prompt := fmt.Sprintf(`Convert this RCA report into presentation slides (max 7-8 slides):

%s

Include the following slides:
- Title slide
- Problem overview
- Key causes identified
- Evidence summary
- Recommendations
- Next steps

Format using Markdown with "---" to separate slides.`, reportContent)

	return g.generate(ctx, slidesSystemPrompt, history, prompt)
}

// listMarkerPattern strips leading numbering and bullet markers from
// suggestion lines.
var listMarkerPattern = regexp.MustCompile(`^[0-9\-\*\.\s]+`)

// SuggestCauses asks the model for additional root cause candidates and
// returns them one per line, with list markers stripped.
func (g *Generator) SuggestCauses(ctx context.Context, problem string, existing []string) ([]string, error) {
	var prompt strings.Builder
	if len(existing) > 0 {
		prompt.WriteString("Existing causes identified: " + strings.Join(existing, ", ") + ". ")
	}
	fmt.Fprintf(&prompt, `Based on the problem description: %q,
suggest potential root causes that could have contributed to this problem.
Focus on identifying actionable and specific causes. List one cause per line.`, problem)

	raw, err := g.generate(ctx, reportSystemPrompt, nil, prompt.String())
	if err != nil {
		return nil, err
	}

	var causes []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(listMarkerPattern.ReplaceAllString(line, ""))
		if line != "" {
			causes = append(causes, line)
		}
	}
	return causes, nil
}

func (g *Generator) generate(ctx context.Context, system string, history []phase.Message, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
	}
	for _, m := range history {
		role := llms.ChatMessageTypeHuman
		if m.Role == phase.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	resp, err := g.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generation returned no choices")
	}
	return resp.Choices[0].Content, nil
}
