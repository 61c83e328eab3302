package wba

import "fmt"

// NodeType classifies a node in the Why-Because graph.
type NodeType string

const (
	NodeProblem   NodeType = "problem"
	NodeCause     NodeType = "cause"
	NodeCondition NodeType = "condition"
	NodeAction    NodeType = "action"
	NodeOmission  NodeType = "omission"
	NodeEvidence  NodeType = "evidence"
)

// NodeTypes lists all valid node types in display order.
var NodeTypes = []NodeType{
	NodeProblem, NodeCause, NodeCondition, NodeAction, NodeOmission, NodeEvidence,
}

// ParseNodeType converts a raw string into a NodeType.
// Returns ErrInvalidNodeType for anything outside the closed set.
func ParseNodeType(s string) (NodeType, error) {
	switch NodeType(s) {
	case NodeProblem, NodeCause, NodeCondition, NodeAction, NodeOmission, NodeEvidence:
		return NodeType(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidNodeType, s)
}

// LinkType classifies the causal strength of an edge.
// Ranking (strongest first): necessary > contributing > possible > correlation.
// The ranking affects only how the edge is described, not graph algorithms.
type LinkType string

const (
	LinkNecessary    LinkType = "necessary"
	LinkContributing LinkType = "contributing"
	LinkPossible     LinkType = "possible"
	LinkCorrelation  LinkType = "correlation"
)

// LinkTypes lists all valid link types, strongest first.
var LinkTypes = []LinkType{LinkNecessary, LinkContributing, LinkPossible, LinkCorrelation}

// ParseLinkType converts a raw string into a LinkType.
// Returns ErrInvalidLinkType for anything outside the closed set.
func ParseLinkType(s string) (LinkType, error) {
	switch LinkType(s) {
	case LinkNecessary, LinkContributing, LinkPossible, LinkCorrelation:
		return LinkType(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidLinkType, s)
}

// Confidence is a bounded scale shared by nodes and edges.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence converts a raw string into a Confidence.
// The empty string maps to the default, ConfidenceMedium.
func ParseConfidence(s string) (Confidence, error) {
	switch Confidence(s) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return Confidence(s), nil
	case "":
		return ConfidenceMedium, nil
	}
	return "", fmt.Errorf("invalid confidence: %s", s)
}

// Node is a typed node in the causal graph.
type Node struct {
	ID          string     `json:"id"`
	Type        NodeType   `json:"type"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Confidence  Confidence `json:"confidence"`
}

// Edge is a typed, directed causal link between two nodes.
type Edge struct {
	ID         string     `json:"id"`
	Source     string     `json:"source"`
	Target     string     `json:"target"`
	Type       LinkType   `json:"linkType"`
	Confidence Confidence `json:"confidence"`
}
