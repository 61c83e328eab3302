package extract

import (
	"strings"

	"github.com/drillhq/drilldown/log"
	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/wba"
)

// Input is everything one extraction pass can see: the raw user message,
// the fully assembled assistant reply, and a snapshot of the conversation
// history for the bootstrap rule.
type Input struct {
	UserMessage    string
	AssistantReply string
	Messages       []phase.Message
}

// Rule is one independent pattern family. Apply inspects the input, mutates
// the graph through its normal primitives, and returns the nodes it actually
// created (deduplicated creations return nothing).
type Rule struct {
	Name  string
	Apply func(g *wba.Graph, in Input) []*wba.Node
}

// Extractor runs an ordered battery of rules over each conversation turn.
// Rules are independent and all are evaluated; there is no short-circuit,
// no precedence and no rollback — when several rules match in one turn,
// all of their mutations are applied.
type Extractor struct {
	rules  []Rule
	logger log.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used to trace rule hits.
func WithLogger(logger log.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithRules replaces the default rule battery.
func WithRules(rules []Rule) Option {
	return func(e *Extractor) {
		e.rules = rules
	}
}

// New creates an Extractor with the default rule battery:
// problem bootstrap, user cause phrases, assistant creation phrases,
// assistant causal connectives, and competitor mentions — in that order.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		rules: []Rule{
			bootstrapProblemRule(),
			userCausePhrasesRule(),
			assistantCreationRule(),
			assistantCausalRule(),
			competitorMentionRule(),
		},
		logger: log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddRule appends a custom rule to the battery.
func (e *Extractor) AddRule(r Rule) {
	e.rules = append(e.rules, r)
}

// Extract runs every rule against the input and returns the ordered list of
// nodes created this turn. The list is empty when nothing matched or every
// match deduplicated against existing nodes.
func (e *Extractor) Extract(g *wba.Graph, in Input) []*wba.Node {
	var created []*wba.Node
	for _, rule := range e.rules {
		nodes := rule.Apply(g, in)
		for _, n := range nodes {
			e.logger.Debug("extract: rule %s created %s node %q", rule.Name, n.Type, n.Label)
		}
		created = append(created, nodes...)
	}
	return created
}

// createCause adds a cause node and, when a problem node already exists,
// links the new cause to the first problem with a necessary edge. An
// existing cause with the same label is left alone and gains no new link.
func createCause(g *wba.Graph, label string) *wba.Node {
	node, created := g.CreateNode(wba.NodeCause, label, "")
	if !created {
		return nil
	}
	if problem := g.FirstOfType(wba.NodeProblem); problem != nil {
		g.CreateEdge(node.ID, problem.ID, wba.LinkNecessary)
	}
	return node
}

func cleanMatch(s string) string {
	return strings.TrimSpace(s)
}
