// Package command parses explicit structured canvas commands into causal
// graph mutations.
//
// A command is a single colon-delimited string, action first:
//
//	create_node:<type>:<label>[:<description>]
//	create_connection:<source>:<target>[:<linkType>]
//
// Only the final argument may contain colons. Source and target of a
// connection may be node ids or node labels; labels are resolved against the
// graph. The parser is pure: given the same command and graph state it
// produces the same mutation, modulo id generation.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drillhq/drilldown/wba"
)

// Prefix is the reserved chat prefix that routes a message to the command
// parser instead of the language-model backend.
const Prefix = "/canvas"

// ErrUnknownCommand is returned for any action outside the grammar.
var ErrUnknownCommand = errors.New("unknown command")

// Actions understood by the grammar.
const (
	ActionCreateNode       = "create_node"
	ActionCreateConnection = "create_connection"
)

// Result is the outcome of running one command. Failures are values, not
// panics: Message always carries human-readable text for the chat reply, and
// Err carries the underlying sentinel for programmatic checks.
type Result struct {
	Success bool
	Message string
	NodeID  string
	EdgeID  string
	Err     error
}

// Run parses cmd and applies it to g.
func Run(g *wba.Graph, cmd string) Result {
	cmd = strings.TrimSpace(cmd)

	action, rest, _ := strings.Cut(cmd, ":")
	switch action {
	case ActionCreateNode:
		return runCreateNode(g, rest)
	case ActionCreateConnection:
		return runCreateConnection(g, rest)
	}

	return failure(fmt.Errorf("%w: %q", ErrUnknownCommand, cmd),
		fmt.Sprintf("Invalid command format: %s", cmd))
}

// IsCommand reports whether a chat message is a canvas command, and returns
// the bare command with the prefix stripped.
func IsCommand(message string) (string, bool) {
	if !strings.HasPrefix(message, Prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(message, Prefix)), true
}

func runCreateNode(g *wba.Graph, args string) Result {
	typeStr, rest, ok := strings.Cut(args, ":")
	if !ok {
		return failure(fmt.Errorf("%w: create_node needs a type and a label", ErrUnknownCommand),
			"Invalid command format: create_node:<type>:<label>[:<description>]")
	}

	nodeType, err := wba.ParseNodeType(typeStr)
	if err != nil {
		return failure(err, fmt.Sprintf("Invalid node type: %s", typeStr))
	}

	// Description is the final argument and may contain colons.
	label, description, _ := strings.Cut(rest, ":")
	if label == "" {
		return failure(fmt.Errorf("%w: create_node needs a label", ErrUnknownCommand),
			"Invalid command format: create_node:<type>:<label>[:<description>]")
	}

	node, _ := g.CreateNode(nodeType, label, description)
	return Result{
		Success: true,
		Message: fmt.Sprintf("Created new %s node: %q", nodeType, label),
		NodeID:  node.ID,
	}
}

func runCreateConnection(g *wba.Graph, args string) Result {
	parts := strings.SplitN(args, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return failure(fmt.Errorf("%w: create_connection needs a source and a target", ErrUnknownCommand),
			"Invalid command format: create_connection:<source>:<target>[:<linkType>]")
	}

	source, err := resolveNode(g, parts[0])
	if err != nil {
		return failure(err, fmt.Sprintf("Could not find node with label: %s", parts[0]))
	}
	target, err := resolveNode(g, parts[1])
	if err != nil {
		return failure(err, fmt.Sprintf("Could not find node with label: %s", parts[1]))
	}

	linkType := wba.LinkNecessary
	if len(parts) == 3 && parts[2] != "" {
		linkType, err = wba.ParseLinkType(parts[2])
		if err != nil {
			return failure(err, fmt.Sprintf("Invalid link type: %s", parts[2]))
		}
	}

	edge, err := g.CreateEdge(source, target, linkType)
	if err != nil {
		return failure(err, fmt.Sprintf("Cannot create connection: %v", err))
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Created new %s connection", linkType),
		EdgeID:  edge.ID,
	}
}

// resolveNode maps an argument to a node id. Arguments carrying the node id
// prefix are used as-is; anything else is treated as a label.
func resolveNode(g *wba.Graph, arg string) (string, error) {
	if wba.IsNodeID(arg) {
		return arg, nil
	}
	if n := g.FindByLabel(arg); n != nil {
		return n.ID, nil
	}
	return "", fmt.Errorf("%w: %s", wba.ErrNodeNotFound, arg)
}

func failure(err error, message string) Result {
	return Result{Success: false, Message: message, Err: err}
}
