package wba

import "errors"

var (
	// ErrInvalidNodeType is returned when a node type string is outside the closed set.
	ErrInvalidNodeType = errors.New("invalid node type")

	// ErrInvalidLinkType is returned when a link type string is outside the closed set.
	ErrInvalidLinkType = errors.New("invalid link type")

	// ErrNodeNotFound is returned when a node id or label resolves to nothing.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidEndpoint is returned when an edge references a missing node.
	ErrInvalidEndpoint = errors.New("edge endpoint does not exist")
)
