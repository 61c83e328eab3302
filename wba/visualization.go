package wba

import (
	"fmt"
	"strings"
)

// MermaidOptions defines configuration for Mermaid diagram generation
type MermaidOptions struct {
	// Direction of the flowchart (e.g., "TD", "LR")
	Direction string
}

// DrawMermaid generates a Mermaid flowchart of the causal graph, suitable
// for a graph-canvas collaborator or documentation. Node shape and color
// follow the node type; edge labels carry the link type.
func (g *Graph) DrawMermaid() string {
	return g.DrawMermaidWithOptions(MermaidOptions{Direction: "TD"})
}

// DrawMermaidWithOptions generates a Mermaid flowchart with custom options
func (g *Graph) DrawMermaidWithOptions(opts MermaidOptions) string {
	var sb strings.Builder

	direction := opts.Direction
	if direction == "" {
		direction = "TD"
	}
	sb.WriteString(fmt.Sprintf("flowchart %s\n", direction))

	for _, n := range g.nodes {
		label := strings.ReplaceAll(n.Label, "\"", "'")
		switch n.Type {
		case NodeProblem:
			sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", n.ID, label))
		case NodeEvidence:
			sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", n.ID, label))
		default:
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", n.ID, label))
		}
		if fill := nodeFill(n.Type); fill != "" {
			sb.WriteString(fmt.Sprintf("    style %s fill:%s\n", n.ID, fill))
		}
	}

	for _, e := range g.edges {
		if e.Type == LinkNecessary {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", e.Source, e.Target))
		} else {
			sb.WriteString(fmt.Sprintf("    %s -.->|%s| %s\n", e.Source, e.Type, e.Target))
		}
	}

	return sb.String()
}

func nodeFill(t NodeType) string {
	switch t {
	case NodeProblem:
		return "#FFB6C1"
	case NodeCause:
		return "#FFE4B5"
	case NodeEvidence:
		return "#90EE90"
	default:
		return ""
	}
}
