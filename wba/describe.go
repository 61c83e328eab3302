package wba

import (
	"fmt"
	"strings"
)

// Describe renders a stable, deterministic textual summary of the graph:
// all nodes then all edges, in creation order. This text is the only view
// of the graph the language-model backend ever receives, so its format is
// part of the contract.
func (g *Graph) Describe() string {
	var sb strings.Builder
	sb.WriteString("Current diagram contains:\n\n")

	sb.WriteString("Nodes:\n")
	for _, n := range g.nodes {
		fmt.Fprintf(&sb, "- %s: Type=%s, Label=%q\n", n.ID, n.Type, n.Label)
	}

	sb.WriteString("\nConnections:\n")
	for _, e := range g.edges {
		fmt.Fprintf(&sb, "- %s -> %s (%s causes %s)\n", e.Source, e.Target, e.Source, e.Target)
	}

	return sb.String()
}
