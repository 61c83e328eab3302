// Package evidence handles supporting material for an analysis: loading
// sources from pasted text or HTML pages, summarizing them into node
// labels, and ranking them against a query by term overlap.
package evidence
