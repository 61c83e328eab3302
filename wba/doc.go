// Package wba implements the causal graph store for Why-Because Analysis.
//
// The graph holds typed nodes (problem, cause, condition, action, omission,
// evidence) and typed directed edges ranked by causal strength (necessary >
// contributing > possible > correlation). Node creation deduplicates on the
// case-insensitive (type, label) pair; edge creation validates that both
// endpoints exist; node deletion cascades to incident edges.
//
// Describe renders the deterministic textual view of the graph that is sent
// to the language-model backend, and DrawMermaid exports a flowchart for a
// graph canvas.
//
// A Graph is not safe for concurrent mutation. Each project owns exactly one
// graph, and all mutation paths (structured commands, heuristic extraction,
// canvas edits) share these primitives.
package wba
