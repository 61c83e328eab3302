package extract

import (
	"regexp"
	"strings"

	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/wba"
)

// Bootstrap thresholds: the problem node is seeded from the first
// sufficiently long user message, but only early in the conversation.
const (
	bootstrapMaxMessages = 6
	bootstrapMinLength   = 30
	maxLabelLength       = 50
)

// bootstrapProblemRule creates the initial problem node when none exists
// yet. The label is the text before the first period, truncated with an
// ellipsis when over the label limit; the full message becomes the
// description.
func bootstrapProblemRule() Rule {
	return Rule{
		Name: "bootstrap_problem",
		Apply: func(g *wba.Graph, in Input) []*wba.Node {
			if g.HasType(wba.NodeProblem) || len(in.Messages) > bootstrapMaxMessages {
				return nil
			}

			var source string
			for _, m := range in.Messages {
				if m.Role == phase.RoleUser && len(m.Content) > bootstrapMinLength {
					source = m.Content
					break
				}
			}
			if source == "" {
				return nil
			}

			label, _, _ := strings.Cut(source, ".")
			label = truncateLabel(label)

			node, created := g.CreateNode(wba.NodeProblem, label, source)
			if !created {
				return nil
			}
			return []*wba.Node{node}
		},
	}
}

// userCausePatterns match explicit cause language in the user's message.
// Only the first match of each pattern is taken.
var userCausePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cause.*?is\s+(.*?)(?:\.|,|$)`),
	regexp.MustCompile(`(?i)because\s+(.*?)(?:\.|,|$)`),
	regexp.MustCompile(`(?i)due to\s+(.*?)(?:\.|,|$)`),
	regexp.MustCompile(`(?i)reason.*?is\s+(.*?)(?:\.|,|$)`),
}

func userCausePhrasesRule() Rule {
	return Rule{
		Name: "user_cause_phrases",
		Apply: func(g *wba.Graph, in Input) []*wba.Node {
			var created []*wba.Node
			for _, pattern := range userCausePatterns {
				match := pattern.FindStringSubmatch(in.UserMessage)
				if match == nil {
					continue
				}
				label := cleanMatch(match[1])
				if label == "" {
					continue
				}
				if node := createCause(g, label); node != nil {
					created = append(created, node)
				}
			}
			return created
		},
	}
}

// assistantCreationPatterns match the assistant's explicit node-creation
// sentences, one pattern per announcement form. The node type is captured
// and parsed; every match in the reply is taken.
var assistantCreationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)I will create an? (problem|cause|condition|action|omission|evidence) node for:?\s*["']?(.*?)["']?(?:\.|$)`),
	regexp.MustCompile(`(?i)Creating an? (problem|cause|condition|action|omission|evidence) node:?\s*["']?(.*?)["']?(?:\.|$)`),
}

func assistantCreationRule() Rule {
	return Rule{
		Name: "assistant_creation_phrases",
		Apply: func(g *wba.Graph, in Input) []*wba.Node {
			var created []*wba.Node
			for _, pattern := range assistantCreationPatterns {
				for _, match := range pattern.FindAllStringSubmatch(in.AssistantReply, -1) {
					nodeType, err := wba.ParseNodeType(strings.ToLower(match[1]))
					if err != nil {
						continue
					}
					label := cleanMatch(match[2])
					if label == "" {
						continue
					}

					if nodeType == wba.NodeCause {
						if node := createCause(g, label); node != nil {
							created = append(created, node)
						}
						continue
					}

					node, isNew := g.CreateNode(nodeType, label, "")
					if isNew {
						created = append(created, node)
					}
				}
			}
			return created
		},
	}
}

// assistantCausalPatterns match causal connective phrases in the assistant
// reply. All matches produce cause nodes.
var assistantCausalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)important cause is ["']?(.*?)["']?(?:\.|,|$)`),
	regexp.MustCompile(`(?i)contributing factor is ["']?(.*?)["']?(?:\.|,|$)`),
	regexp.MustCompile(`(?i)another cause is ["']?(.*?)["']?(?:\.|,|$)`),
	regexp.MustCompile(`(?i)identified cause is ["']?(.*?)["']?(?:\.|,|$)`),
	regexp.MustCompile(`(?i)because of ["']?(.*?)["']?(?:\.|,|$)`),
}

func assistantCausalRule() Rule {
	return Rule{
		Name: "assistant_causal_phrases",
		Apply: func(g *wba.Graph, in Input) []*wba.Node {
			var created []*wba.Node
			for _, pattern := range assistantCausalPatterns {
				for _, match := range pattern.FindAllStringSubmatch(in.AssistantReply, -1) {
					label := cleanMatch(match[1])
					if label == "" {
						continue
					}
					if node := createCause(g, label); node != nil {
						created = append(created, node)
					}
				}
			}
			return created
		},
	}
}

// competitorPattern is the domain-specific mention ("competitor's X" /
// "competitor X"), scanned in both the user message and the assistant reply.
var competitorPattern = regexp.MustCompile(`(?i)competitor['s]*\s+(.*?)(?:\.|,|$)`)

func competitorMentionRule() Rule {
	return Rule{
		Name: "competitor_mentions",
		Apply: func(g *wba.Graph, in Input) []*wba.Node {
			var created []*wba.Node
			for _, text := range []string{in.UserMessage, in.AssistantReply} {
				for _, match := range competitorPattern.FindAllStringSubmatch(text, -1) {
					action := cleanMatch(match[1])
					if action == "" {
						continue
					}
					// Suppressed when any node label already mentions it.
					if g.FindBySubstring(action) != nil {
						continue
					}
					node, isNew := g.CreateNode(wba.NodeCause, "Competitor "+action, "")
					if isNew {
						created = append(created, node)
					}
				}
			}
			return created
		},
	}
}

func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= maxLabelLength {
		return label
	}
	return string(runes[:maxLabelLength-3]) + "..."
}
